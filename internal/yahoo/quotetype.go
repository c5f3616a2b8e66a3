package yahoo

import "strings"

// Asset types recognised by the portfolio.
const (
	AssetTypeStock      = "Stock"
	AssetTypeETF        = "ETF"
	AssetTypeCrypto     = "Crypto"
	AssetTypeMutualFund = "Mutual Fund"
	AssetTypeBond       = "Bond"
	AssetTypeIndex      = "Index"
	AssetTypeOther      = "Other"
)

var quoteTypes = map[string]string{
	"EQUITY":         AssetTypeStock,
	"ETF":            AssetTypeETF,
	"CRYPTOCURRENCY": AssetTypeCrypto,
	"MUTUALFUND":     AssetTypeMutualFund,
	"BOND":           AssetTypeBond,
	"INDEX":          AssetTypeIndex,
}

// MapQuoteType translates a Yahoo quote or instrument type into an asset type.
func MapQuoteType(quoteType string) string {
	if t, ok := quoteTypes[strings.ToUpper(strings.TrimSpace(quoteType))]; ok {
		return t
	}
	return AssetTypeOther
}

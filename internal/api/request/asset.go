package request

import "github.com/shopspring/decimal"

type CreateAssetRequest struct {
	Ticker      string              `json:"ticker"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	BoughtPrice decimal.NullDecimal `json:"boughtPrice"`
	Shares      decimal.NullDecimal `json:"shares"`
	Value       decimal.NullDecimal `json:"value"`
	Broker      string              `json:"broker"`
	Sector      string              `json:"sector"`
	Industry    string              `json:"industry"`
	Countries   string              `json:"countries"`
	Currency    string              `json:"currency"`
}

type UpdateAssetRequest struct {
	Ticker      *string          `json:"ticker,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Type        *string          `json:"type,omitempty"`
	BoughtPrice *decimal.Decimal `json:"boughtPrice,omitempty"`
	Shares      *decimal.Decimal `json:"shares,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Broker      *string          `json:"broker,omitempty"`
	Sector      *string          `json:"sector,omitempty"`
	Industry    *string          `json:"industry,omitempty"`
	Countries   *string          `json:"countries,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateAssetRequest) IsEmpty() bool {
	return r.Ticker == nil && r.Name == nil && r.Type == nil && r.BoughtPrice == nil &&
		r.Shares == nil && r.Value == nil && r.Broker == nil && r.Sector == nil &&
		r.Industry == nil && r.Countries == nil && r.Currency == nil
}

package analytics

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// UnspecifiedLabel groups holdings whose field is blank.
const UnspecifiedLabel = "Unspecified"

// OtherAssetsLabel collects the holdings outside the top-N. It is also the
// key of that group.
const OtherAssetsLabel = "Other"

// shareScale is the number of decimal places kept on a split country share.
const shareScale = 12

// DefaultTopAssets is the number of positions TopAssets keeps when no limit is given.
const DefaultTopAssets = 5

// Holding is one portfolio position.
type Holding struct {
	ID          string `json:"id"`
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	BoughtPrice Number `json:"boughtPrice"`
	Shares      Number `json:"shares"`
	Value       Number `json:"value"`
	Broker      string `json:"broker"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Countries   string `json:"countries"`
	Currency    string `json:"currency"`
}

// MarketValue is the stored value, or bought price times shares when no
// value is stored. Negative results count as zero.
func (h Holding) MarketValue() decimal.Decimal {
	v := h.Value.Decimal
	if v.IsZero() {
		v = h.BoughtPrice.Mul(h.Shares.Decimal)
	}
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// Dimension selects how holdings are grouped.
type Dimension string

// Supported dimensions.
const (
	DimensionAssetType Dimension = "assetType"
	DimensionBroker    Dimension = "broker"
	DimensionSector    Dimension = "sector"
	DimensionCurrency  Dimension = "currency"
	DimensionCountry   Dimension = "country"
	DimensionTopAssets Dimension = "topAssets"
)

// Dimensions lists every dimension in tab order.
var Dimensions = []Dimension{
	DimensionAssetType,
	DimensionBroker,
	DimensionSector,
	DimensionCurrency,
	DimensionCountry,
	DimensionTopAssets,
}

var dimensionText = map[Dimension][2]string{
	DimensionAssetType: {"Asset Type", "Allocation grouped by security type."},
	DimensionBroker:    {"Broker", "Holdings split by brokerage accounts."},
	DimensionSector:    {"Sector", "Sector exposure across your holdings."},
	DimensionCurrency:  {"Currencies", "Currency mix across portfolio assets."},
	DimensionCountry:   {"Countries", "Geographic distribution of holdings."},
	DimensionTopAssets: {"Top Assets", "Largest positions by market value."},
}

// ErrUnknownDimension is returned for dimensions outside Dimensions.
var ErrUnknownDimension = errors.New("unknown breakdown dimension")

// ParseDimension validates s. An empty string selects DimensionAssetType.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.TrimSpace(s))
	if d == "" {
		return DimensionAssetType, nil
	}
	if _, ok := dimensionText[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
	}
	return d, nil
}

// Label is the tab title of d.
func (d Dimension) Label() string { return dimensionText[d][0] }

// Description is the tab subtitle of d.
func (d Dimension) Description() string { return dimensionText[d][1] }

// Group is an unsorted, uncoloured bucket of value.
type Group struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Slice is a finished breakdown entry ready for charting.
type Slice struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Value   decimal.Decimal `json:"value"`
	Percent decimal.Decimal `json:"percent"`
	Color   string          `json:"color"`
}

// Breakdown is the allocation of a set of holdings along one dimension.
type Breakdown struct {
	Dimension   Dimension       `json:"dimension"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	Slices      []Slice         `json:"slices"`
}

func simpleField(d Dimension) (func(Holding) string, bool) {
	switch d {
	case DimensionAssetType:
		return func(h Holding) string { return h.Type }, true
	case DimensionBroker:
		return func(h Holding) string { return h.Broker }, true
	case DimensionSector:
		return func(h Holding) string { return h.Sector }, true
	case DimensionCurrency:
		return func(h Holding) string { return h.Currency }, true
	default:
		return nil, false
	}
}

func normalizeLabel(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return UnspecifiedLabel
	}
	return s
}

// groups accumulates values by label in first-seen order.
type groups struct {
	list  []Group
	index map[string]int
}

func newGroups() *groups {
	return &groups{list: []Group{}, index: make(map[string]int)}
}

func (g *groups) add(label string, v decimal.Decimal) {
	i, ok := g.index[label]
	if !ok {
		i = len(g.list)
		g.index[label] = i
		g.list = append(g.list, Group{Key: label, Label: label, Value: decimal.Zero})
	}
	g.list[i].Value = g.list[i].Value.Add(v)
}

// GroupBySimpleField buckets holdings by the asset type, broker, sector or
// currency field. Blank values land in Unspecified.
func GroupBySimpleField(holdings []Holding, d Dimension) ([]Group, error) {
	field, ok := simpleField(d)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a single-field dimension", ErrUnknownDimension, d)
	}

	g := newGroups()
	for _, h := range holdings {
		g.add(normalizeLabel(field(h)), h.MarketValue())
	}
	return g.list, nil
}

// SplitCountries returns the distinct, trimmed country names of a
// comma-separated list.
func SplitCountries(countries string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(countries, ",") {
		c := strings.TrimSpace(part)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// GroupByCountry spreads each holding's value evenly over its countries.
// Shares are truncated to shareScale places and the first country absorbs
// the remainder, so a holding always contributes exactly its value and
// equal shares keep their first-seen order. Holdings without countries go
// to Unspecified in full.
func GroupByCountry(holdings []Holding) []Group {
	g := newGroups()
	for _, h := range holdings {
		value := h.MarketValue()
		countries := SplitCountries(h.Countries)
		if len(countries) == 0 {
			g.add(UnspecifiedLabel, value)
			continue
		}

		n := decimal.NewFromInt(int64(len(countries)))
		share := value.Div(n).Truncate(shareScale)
		first := value.Sub(share.Mul(n.Sub(decimal.NewFromInt(1))))
		for i, c := range countries {
			if i == 0 {
				g.add(c, first)
				continue
			}
			g.add(c, share)
		}
	}
	return g.list
}

// TopAssets returns the limit largest holdings, keyed by holding ID (or
// ticker, then label, when the ID is blank), plus a
// single Other group with the rest when the rest is positive. A limit of
// zero or less means DefaultTopAssets.
func TopAssets(holdings []Holding, limit int) []Group {
	if limit <= 0 {
		limit = DefaultTopAssets
	}

	sorted := slices.Clone(holdings)
	slices.SortStableFunc(sorted, func(a, b Holding) int {
		return b.MarketValue().Cmp(a.MarketValue())
	})

	n := min(limit, len(sorted))
	result := make([]Group, 0, n+1)
	for _, h := range sorted[:n] {
		label := assetLabel(h)
		result = append(result, Group{
			Key:   assetKey(h, label),
			Label: label,
			Value: h.MarketValue(),
		})
	}

	rest := decimal.Zero
	for _, h := range sorted[n:] {
		rest = rest.Add(h.MarketValue())
	}
	if rest.IsPositive() {
		result = append(result, Group{Key: OtherAssetsLabel, Label: OtherAssetsLabel, Value: rest})
	}

	return result
}

func assetKey(h Holding, label string) string {
	if id := strings.TrimSpace(h.ID); id != "" {
		return id
	}
	if ticker := strings.ToUpper(strings.TrimSpace(h.Ticker)); ticker != "" {
		return ticker
	}
	return label
}

func assetLabel(h Holding) string {
	ticker := strings.ToUpper(strings.TrimSpace(h.Ticker))
	name := strings.TrimSpace(h.Name)
	switch {
	case ticker == "":
		return normalizeLabel(name)
	case name == "":
		return ticker
	default:
		return ticker + " · " + name
	}
}

// Finalize orders groups by value, largest first, and attaches the share of
// total and a palette colour to each. Equal values keep their input order.
// A non-positive total yields zero percentages.
func Finalize(groups []Group, total decimal.Decimal) []Slice {
	sorted := slices.Clone(groups)
	slices.SortStableFunc(sorted, func(a, b Group) int {
		return b.Value.Cmp(a.Value)
	})

	out := make([]Slice, len(sorted))
	for i, g := range sorted {
		percent := decimal.Zero
		if total.IsPositive() {
			percent = g.Value.Div(total).Mul(hundred).Round(2)
		}
		out[i] = Slice{
			Key:     g.Key,
			Label:   g.Label,
			Value:   g.Value,
			Percent: percent,
			Color:   PaletteColor(i),
		}
	}
	return out
}

// TotalValue sums the market value of holdings.
func TotalValue(holdings []Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}

// BuildBreakdown groups holdings along d and finalizes the result.
// limit only applies to DimensionTopAssets; zero or less means DefaultTopAssets.
func BuildBreakdown(holdings []Holding, d Dimension, limit int) (Breakdown, error) {
	var (
		grouped []Group
		err     error
	)

	switch d {
	case DimensionCountry:
		grouped = GroupByCountry(holdings)
	case DimensionTopAssets:
		grouped = TopAssets(holdings, limit)
	default:
		grouped, err = GroupBySimpleField(holdings, d)
		if err != nil {
			return Breakdown{}, err
		}
	}

	total := TotalValue(holdings)
	return Breakdown{
		Dimension:   d,
		Label:       d.Label(),
		Description: d.Description(),
		Total:       total,
		Slices:      Finalize(grouped, total),
	}, nil
}

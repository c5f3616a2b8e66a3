package analytics

// OtherCategory is the catch-all spending category.
const OtherCategory = "Other"

// CategoryColors maps known spending categories to their chart colour.
var CategoryColors = map[string]string{
	"Groceries":     "#10b981",
	"Transport":     "#3b82f6",
	"Entertainment": "#f59e0b",
	"Dining":        "#ef4444",
	"Shopping":      "#8b5cf6",
	"Utilities":     "#06b6d4",
	"Healthcare":    "#ec4899",
	OtherCategory:   "#6b7280",
}

// Palette is the ordered colour cycle for breakdown slices.
var Palette = []string{
	"#6366f1",
	"#22c55e",
	"#f59e0b",
	"#38bdf8",
	"#a855f7",
	"#f97316",
	"#14b8a6",
	"#ef4444",
}

// ColorFor returns the colour of a spending category. Unknown categories get
// the Other colour. Matching is exact and case-sensitive.
func ColorFor(category string) string {
	if c, ok := CategoryColors[category]; ok {
		return c
	}
	return CategoryColors[OtherCategory]
}

// PaletteColor returns the palette entry for the slice at position i.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

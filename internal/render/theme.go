package render

// Kanagawa palette used throughout the card.
const (
	bgPrimary     = "#1f1f28"
	fgPrimary     = "#dcd7ba"
	fgSecondary   = "#727169"
	borderColor   = "#2a2a37"
	statBoxFill   = "#2a2a37"
	statBoxStroke = "#3a3a47"
)

// FallbackColor is assigned to any language missing from the table. Lookup
// never fails; unmapped names simply render in this neutral grey.
const FallbackColor = "#727169"

// languageColors is the static, hand-maintained name-to-color table.
// Colors are muted to sit on the Kanagawa background.
var languageColors = map[string]string{
	"Python":      "#ffa066",
	"JavaScript":  "#c0a36e",
	"TypeScript":  "#7e9cd8",
	"Java":        "#d27e99",
	"C":           "#938aa9",
	"C++":         "#938aa9",
	"C#":          "#957fb8",
	"Go":          "#7fb4ca",
	"Rust":        "#c8826b",
	"Ruby":        "#c34043",
	"PHP":         "#938aa9",
	"Swift":       "#d27e99",
	"Kotlin":      "#957fb8",
	"Shell":       "#98bb6c",
	"Dart":        "#7fb4ca",
	"Scala":       "#c8826b",
	"R":           "#7e9cd8",
	"Perl":        "#938aa9",
	"Haskell":     "#957fb8",
	"Lua":         "#7e9cd8",
	"Elixir":      "#957fb8",
	"Clojure":     "#98bb6c",
	"OCaml":       "#c8826b",
	"Vim script":  "#98bb6c",
	"Makefile":    "#c8826b",
	"HTML":        "#d27e99",
	"CSS":         "#7e9cd8",
	"SCSS":        "#d27e99",
	"Vue":         "#98bb6c",
	"Svelte":      "#d27e99",
	"Objective-C": "#7fb4ca",
	"Assembly":    "#727169",
	"Dockerfile":  "#7fb4ca",
	"YAML":        "#c0a36e",
	"JSON":        "#c0a36e",
	"Markdown":    "#727169",
	"TeX":         "#98bb6c",
	"SQL":         "#7e9cd8",
}

// ColorFor returns the display color for a language name.
func ColorFor(name string) string {
	if c, ok := languageColors[name]; ok {
		return c
	}
	return FallbackColor
}

// Package render lays out the language statistics card and serializes it to
// SVG. Rendering is a pure function of its inputs: identical entries and
// config always produce byte-identical output, and the document embeds no
// timestamps or generated identifiers.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mavantgarderc/langcard/internal/domain"
)

// Config holds the fixed layout constants for one render. It is read-only
// for the duration of a run.
type Config struct {
	Width        int
	HeaderHeight int
	RowHeight    int
	LabelX       int
	BarX         int
	BarMaxWidth  int
	BottomPad    int
	StatsHeight  int

	Title    string
	Subtitle string
	Login    string
}

// DefaultConfig returns the standard card layout for the given account.
func DefaultConfig(login string) Config {
	return Config{
		Width:        600,
		HeaderHeight: 80,
		RowHeight:    32,
		LabelX:       30,
		BarX:         170,
		BarMaxWidth:  260,
		BottomPad:    60,
		StatsHeight:  95,
		Title:        "Most Used Languages",
		Subtitle:     "(Public and Private Repositories)",
		Login:        login,
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Card renders the ranked entries (and optional contribution stats) as a
// self-contained SVG document.
func Card(entries []domain.RankedEntry, contrib *domain.ContributionStats, cfg Config) ([]byte, error) {
	if err := validate(entries); err != nil {
		return nil, err
	}

	rowsBottom := cfg.HeaderHeight + cfg.RowHeight*len(entries)
	height := rowsBottom + cfg.BottomPad
	if contrib != nil {
		height += cfg.StatsHeight
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<svg width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		cfg.Width, height, cfg.Width, height)

	b.WriteString("<style>\n")
	b.WriteString(".font-title { font-family: 'Courier New', monospace; font-size: 18px; font-weight: bold; }\n")
	b.WriteString(".font-lang { font-family: 'Courier New', monospace; font-size: 13px; }\n")
	b.WriteString(".font-percent { font-family: 'Courier New', monospace; font-size: 12px; }\n")
	b.WriteString(".font-footer { font-family: 'Courier New', monospace; font-size: 10px; }\n")
	b.WriteString(".stat-value { font-family: 'Courier New', monospace; font-size: 16px; font-weight: bold; }\n")
	b.WriteString(".stat-label { font-family: 'Courier New', monospace; font-size: 10px; }\n")
	b.WriteString("</style>\n")

	fmt.Fprintf(&b, "<rect width=\"%d\" height=\"%d\" fill=\"%s\" rx=\"12\"/>\n", cfg.Width, height, bgPrimary)
	fmt.Fprintf(&b, "<rect x=\"8\" y=\"8\" width=\"%d\" height=\"%d\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" rx=\"8\"/>\n",
		cfg.Width-16, height-16, borderColor)

	centerX := cfg.Width / 2
	fmt.Fprintf(&b, "<text x=\"%d\" y=\"35\" text-anchor=\"middle\" fill=\"%s\" class=\"font-title\">\n", centerX, fgPrimary)
	fmt.Fprintf(&b, "<tspan x=\"%d\" dy=\"0\">%s</tspan>\n", centerX, xmlEscaper.Replace(cfg.Title))
	fmt.Fprintf(&b, "<tspan x=\"%d\" dy=\"1.2em\">%s</tspan>\n", centerX, xmlEscaper.Replace(cfg.Subtitle))
	b.WriteString("</text>\n")

	for i, entry := range entries {
		rowY := cfg.HeaderHeight + i*cfg.RowHeight
		barWidth := float64(cfg.BarMaxWidth) * entry.Percent / 100
		if entry.Percent > 0 && barWidth < 1 {
			barWidth = 1
		}
		fmt.Fprintf(&b, "<text x=\"%d\" y=\"%d\" fill=\"%s\" class=\"font-lang\">%s</text>\n",
			cfg.LabelX, rowY+16, fgPrimary, xmlEscaper.Replace(entry.Name))
		fmt.Fprintf(&b, "<rect x=\"%d\" y=\"%d\" width=\"%s\" height=\"16\" rx=\"4\" fill=\"%s\"/>\n",
			cfg.BarX, rowY+4, formatWidth(barWidth), ColorFor(entry.Name))
		fmt.Fprintf(&b, "<text x=\"%d\" y=\"%d\" text-anchor=\"end\" fill=\"%s\" class=\"font-percent\">%.1f%%</text>\n",
			cfg.Width-30, rowY+16, fgSecondary, entry.Percent)
	}

	if contrib != nil {
		writeStatBoxes(&b, contrib, cfg, rowsBottom+12)
	}

	footerY := height - 38
	fmt.Fprintf(&b, "<line x1=\"60\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"1\"/>\n",
		footerY, cfg.Width-60, footerY, borderColor)
	fmt.Fprintf(&b, "<text x=\"%d\" y=\"%d\" text-anchor=\"middle\" fill=\"%s\" class=\"font-footer\">Based on repository analysis &#8226; github.com/%s</text>\n",
		centerX, footerY+18, fgSecondary, xmlEscaper.Replace(cfg.Login))
	b.WriteString("</svg>\n")

	return []byte(b.String()), nil
}

// writeStatBoxes renders the three contribution stat boxes below the rows.
func writeStatBoxes(b *strings.Builder, contrib *domain.ContributionStats, cfg Config, y int) {
	const boxWidth, boxHeight = 150, 65
	spacing := (cfg.Width - 3*boxWidth) / 4

	boxes := []struct {
		value string
		label string
	}{
		{withCommas(contrib.Total), "TOTAL CONTRIBUTIONS"},
		{fmt.Sprintf("%d DAYS", contrib.CurrentStreak), "CURRENT STREAK"},
		{fmt.Sprintf("%d DAYS", contrib.LongestStreak), "LONGEST STREAK"},
	}

	x := spacing
	for _, box := range boxes {
		fmt.Fprintf(b, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" rx=\"6\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			x, y, boxWidth, boxHeight, statBoxFill, statBoxStroke)
		fmt.Fprintf(b, "<text x=\"%d\" y=\"%d\" text-anchor=\"middle\" fill=\"%s\" class=\"stat-value\">%s</text>\n",
			x+boxWidth/2, y+30, fgPrimary, box.value)
		fmt.Fprintf(b, "<text x=\"%d\" y=\"%d\" text-anchor=\"middle\" fill=\"%s\" class=\"stat-label\">%s</text>\n",
			x+boxWidth/2, y+50, fgSecondary, box.label)
		x += boxWidth + spacing
	}
}

// validate enforces the renderer's input contract. Violations indicate a bug
// upstream, not a user-facing condition.
func validate(entries []domain.RankedEntry) error {
	if len(entries) == 0 {
		return &domain.RenderError{Reason: "no ranked entries"}
	}
	for _, entry := range entries {
		if entry.Name == "" {
			return &domain.RenderError{Reason: "entry with empty language name"}
		}
		if math.IsNaN(entry.Percent) || entry.Percent < 0 || entry.Percent > 100.05 {
			return &domain.RenderError{Reason: fmt.Sprintf("percentage %v for %s out of range", entry.Percent, entry.Name)}
		}
	}
	return nil
}

// formatWidth keeps bar widths stable across runs: two decimals, no
// locale-dependent formatting.
func formatWidth(w float64) string {
	return strconv.FormatFloat(math.Round(w*100)/100, 'f', 2, 64)
}

// withCommas formats n with thousands separators.
func withCommas(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + withCommas(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

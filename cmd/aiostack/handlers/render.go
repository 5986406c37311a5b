package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/stack"
	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/naming"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)
)

// synthSummary is what the synth command reports after writing a template.
type synthSummary struct {
	Name     string
	Output   string
	Counts   []stack.TypeCount
	Handle   *synthesis.ServerHandle
	Records  []string
	Existing bool
}

// renderSynthSummary produces a lipgloss-styled summary.
func renderSynthSummary(s synthSummary) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  aiostack synth: %s", s.Name)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Resources"))
	b.WriteString("\n")
	total := 0
	for _, c := range s.Counts {
		total += c.Count
		b.WriteString(fmt.Sprintf("    %-40s %s\n", c.Type, okStyle.Render(fmt.Sprintf("%d", c.Count))))
	}
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 45)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("    %-40s %d\n", "Total", total))

	if len(s.Records) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Records"))
		b.WriteString("\n")
		for _, r := range s.Records {
			b.WriteString("    " + r + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", okStyle.Render("✓"), "Template written to "+s.Output))
	if s.Existing {
		b.WriteString(dimStyle.Render("  Network: existing VPC"))
	} else {
		b.WriteString(dimStyle.Render("  Network: new VPC"))
	}
	b.WriteString("\n")

	return b.String()
}

// plainSynthSummary produces the non-TTY summary.
func plainSynthSummary(s synthSummary) string {
	var b strings.Builder

	total := 0
	for _, c := range s.Counts {
		total += c.Count
	}
	fmt.Fprintf(&b, "Template for %s written to %s (%d resources", s.Name, s.Output, total)
	if len(s.Records) > 0 {
		fmt.Fprintf(&b, ", %d records", len(s.Records))
	}
	b.WriteString(")\n")
	if s.Handle != nil {
		fmt.Fprintf(&b, "Elastic IP resource: %s (exported as %s)\n", s.Handle.ElasticIPID, naming.ExportElasticIP)
	}
	return b.String()
}

// recordNames returns the record names declared in tpl, sorted by logical ID.
func recordNames(tpl *cfn.Template) []string {
	var names []string
	for _, id := range tpl.ResourcesOfType(cfn.TypeRecordSet) {
		if name, ok := tpl.Property(id, "Name"); ok {
			names = append(names, fmt.Sprint(name))
		}
	}
	return names
}

package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Gerhatlevi/project-factory/internal/document"
)

var (
	showColorGreen = lipgloss.Color("#22c55e")
	showColorRed   = lipgloss.Color("#ef4444")
	showColorBlue  = lipgloss.Color("#3b82f6")
	showColorDim   = lipgloss.Color("#6b7280")
	showColorWhite = lipgloss.Color("#f9fafb")
)

var (
	showTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(showColorWhite)

	showSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(showColorBlue)

	showDimStyle = lipgloss.NewStyle().
			Foreground(showColorDim)

	showGreenStyle = lipgloss.NewStyle().
			Foreground(showColorGreen)

	showRedStyle = lipgloss.NewStyle().
			Foreground(showColorRed)
)

// renderSummary produces a lipgloss-styled overview of the document.
func renderSummary(configPath string, doc *document.Document) string {
	var b strings.Builder

	name := doc.Name()
	if name == "" {
		name = "(unnamed)"
	}

	b.WriteString("\n")
	b.WriteString(showTitleStyle.Render(fmt.Sprintf("  project-factory: %s", name)))
	b.WriteString("\n")
	b.WriteString(showDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(showSectionStyle.Render("  Identity"))
	b.WriteString("\n")
	writeField(&b, "File", configPath)
	writeField(&b, "Parent", doc.Parent())
	writeField(&b, "Prefix", doc.Prefix())
	writeField(&b, "Billing Account", doc.BillingAccount())

	b.WriteString("\n")
	b.WriteString(showSectionStyle.Render("  Resources"))
	b.WriteString("\n")
	writeCount(&b, "Services", doc.Services().Len())
	writeCount(&b, "Labels", doc.Labels().Len())
	writeCount(&b, "IAM Roles", doc.IAM().Len())
	writeCount(&b, "Bindings", doc.Bindings().Len()+doc.AdditiveBindings().Len())
	writeCount(&b, "Principal Grants", doc.ByPrincipals().Len())
	writeCount(&b, "Buckets", doc.Buckets().Len())
	writeCount(&b, "Service Accounts", doc.ServiceAccounts().Len())
	writeCount(&b, "Org Policies", doc.OrgPolicies().Len())

	b.WriteString("\n")
	b.WriteString(showSectionStyle.Render("  Features"))
	b.WriteString("\n")
	writeFlag(&b, "Automation", doc.Automation().Enabled(), doc.Automation().Project())
	writeFlag(&b, "Shared VPC Host", doc.SharedVPCHost().Enabled(),
		fmt.Sprintf("%d service project(s)", len(doc.SharedVPCHost().ServiceProjects())))
	writeFlag(&b, "VPC Service Controls", doc.VPCSC().Enabled(), doc.VPCSC().Name())

	b.WriteString("\n")
	verdict := doc.CheckSave()
	if verdict.Savable() {
		b.WriteString(showGreenStyle.Render("  ✓ Passes all save rules"))
	} else {
		b.WriteString(showRedStyle.Render(fmt.Sprintf("  ✗ %d save problem(s):", len(verdict.Reasons))))
		b.WriteString("\n")
		for _, reason := range verdict.Reasons {
			b.WriteString(showRedStyle.Render("    - " + reason))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = showDimStyle.Render("(unset)")
	}
	fmt.Fprintf(b, "    %-17s %s\n", label+":", value)
}

func writeCount(b *strings.Builder, label string, n int) {
	value := fmt.Sprintf("%d", n)
	if n == 0 {
		value = showDimStyle.Render("0")
	}
	fmt.Fprintf(b, "    %-17s %s\n", label+":", value)
}

func writeFlag(b *strings.Builder, label string, enabled bool, detail string) {
	state := showDimStyle.Render("off")
	if enabled {
		state = showGreenStyle.Render("on")
		if detail != "" {
			state += showDimStyle.Render(" (" + detail + ")")
		}
	}
	fmt.Fprintf(b, "    %-21s %s\n", label+":", state)
}

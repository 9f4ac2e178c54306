// Package doctor runs local diagnostics: directory layout, probe tooling,
// and fragment health.
package doctor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/sshconfgen/internal/fragment"
	"github.com/treykane/sshconfgen/internal/model"
	"github.com/treykane/sshconfgen/internal/probe"
	"github.com/treykane/sshconfgen/internal/rules"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Issue struct {
	Severity       Severity `json:"severity"`
	Check          string   `json:"check"`
	Target         string   `json:"target"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// Run executes diagnostics for the given fragment directory and extension.
func Run(fragmentDir, extension string) Report {
	var issues []Issue

	if _, err := exec.LookPath(probe.SSIDToolName()); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "ssid-tool",
			Target:         probe.SSIDToolName(),
			Message:        "SSID lookup tool not found on PATH",
			Recommendation: "install it or avoid LocalSSID conditions on this machine",
		})
	}

	fi, err := os.Stat(fragmentDir)
	if err != nil || !fi.IsDir() {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "fragment-dir",
			Target:         fragmentDir,
			Message:        "fragment directory does not exist",
			Recommendation: fmt.Sprintf("create %s and add %s files", fragmentDir, extension),
		})
		return Report{Issues: issues}
	}

	res, err := fragment.Discover(fragmentDir, extension)
	if err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "fragment-scan",
			Target:         fragmentDir,
			Message:        err.Error(),
			Recommendation: "check directory permissions",
		})
		return Report{Issues: issues}
	}
	for _, w := range res.Warnings {
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "fragment-read",
			Target:         fragmentDir,
			Message:        w,
			Recommendation: "fix file permissions or remove the fragment",
		})
	}
	if len(res.Fragments) == 0 {
		issues = append(issues, Issue{
			Severity:       SeverityLow,
			Check:          "fragment-scan",
			Target:         fragmentDir,
			Message:        fmt.Sprintf("no %s fragments found", extension),
			Recommendation: "a run will generate nothing until fragments exist",
		})
	}

	for _, frag := range res.Fragments {
		issues = append(issues, fragmentIssues(frag)...)
	}
	return Report{Issues: issues}
}

// fragmentIssues validates one fragment's structure: it should carry at
// least one config section, and its condition lines should parse cleanly.
func fragmentIssues(frag model.Fragment) []Issue {
	var issues []Issue
	sections := fragment.Split(frag.Content)

	if sections.Global == "" && sections.Local == "" && sections.Remote == "" {
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "fragment-sections",
			Target:         frag.Name,
			Message:        "no config sections found",
			Recommendation: "add GLOBAL/LOCAL/REMOTE CONFIG marker pairs (check marker spelling)",
		})
	}
	if sections.Conditions == "" && (sections.Local != "") {
		issues = append(issues, Issue{
			Severity:       SeverityLow,
			Check:          "fragment-conditions",
			Target:         frag.Name,
			Message:        "local section present but no conditions: remote is always selected",
			Recommendation: "add a CONDITIONS block or remove the local section",
		})
	}

	for _, cond := range rules.ParseConditions(sections.Conditions) {
		switch cond.Key {
		case model.KeySSID, model.KeyPing:
		case model.KeyGateway:
			for _, raw := range cond.Values {
				if _, ok := rules.ParseGatewaySpec(raw); !ok {
					issues = append(issues, Issue{
						Severity:       SeverityMedium,
						Check:          "gateway-spec",
						Target:         frag.Name,
						Message:        fmt.Sprintf("malformed gateway spec %q", raw),
						Recommendation: "use ip|mac with exactly one pipe per entry",
					})
				}
			}
		default:
			issues = append(issues, Issue{
				Severity:       SeverityLow,
				Check:          "condition-key",
				Target:         frag.Name,
				Message:        fmt.Sprintf("unknown condition key %q is ignored", cond.Key),
				Recommendation: "use LocalSSID, LocalGateway or LocalPing",
			})
		}
	}
	return issues
}

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	checkStyle  = lipgloss.NewStyle().Faint(true)
)

// Render formats the report for terminal output.
func (r Report) Render() string {
	if len(r.Issues) == 0 {
		return okStyle.Render("✓ no issues found") + "\n"
	}
	out := ""
	for _, issue := range r.Issues {
		var style lipgloss.Style
		switch issue.Severity {
		case SeverityHigh:
			style = highStyle
		case SeverityMedium:
			style = mediumStyle
		default:
			style = lowStyle
		}
		out += fmt.Sprintf("%s %s %s: %s\n    %s\n",
			style.Render(string(issue.Severity)),
			checkStyle.Render("["+issue.Check+"]"),
			issue.Target,
			issue.Message,
			issue.Recommendation,
		)
	}
	return out
}

package doctor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func issuesByCheck(r Report, check string) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Check == check {
			out = append(out, i)
		}
	}
	return out
}

func TestRun_MissingFragmentDir(t *testing.T) {
	r := Run(filepath.Join(t.TempDir(), "nope"), ".sshconf")
	got := issuesByCheck(r, "fragment-dir")
	if len(got) != 1 || got[0].Severity != SeverityHigh {
		t.Fatalf("expected one high fragment-dir issue, got %+v", r.Issues)
	}
}

func TestRun_EmptyDir(t *testing.T) {
	r := Run(t.TempDir(), ".sshconf")
	if len(issuesByCheck(r, "fragment-scan")) != 1 {
		t.Fatalf("expected empty-dir note, got %+v", r.Issues)
	}
}

func TestRun_FragmentWithoutSections(t *testing.T) {
	d := t.TempDir()
	if err := os.WriteFile(filepath.Join(d, "a.sshconf"), []byte("free text"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := Run(d, ".sshconf")
	if len(issuesByCheck(r, "fragment-sections")) != 1 {
		t.Fatalf("expected missing-sections issue, got %+v", r.Issues)
	}
}

func TestRun_MalformedGatewayAndUnknownKey(t *testing.T) {
	content := `# CONDITIONS BEGIN
LocalGateway 10.0.0.1|aa:bb,broken
LocalDNS 1.1.1.1
# CONDITIONS END
# REMOTE CONFIG BEGIN
Host r
# REMOTE CONFIG END
`
	d := t.TempDir()
	if err := os.WriteFile(filepath.Join(d, "a.sshconf"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	r := Run(d, ".sshconf")
	if len(issuesByCheck(r, "gateway-spec")) != 1 {
		t.Fatalf("expected one malformed gateway issue, got %+v", r.Issues)
	}
	if len(issuesByCheck(r, "condition-key")) != 1 {
		t.Fatalf("expected one unknown-key issue, got %+v", r.Issues)
	}
}

func TestRun_LocalWithoutConditions(t *testing.T) {
	content := "# LOCAL CONFIG BEGIN\nHost l\n# LOCAL CONFIG END\n# REMOTE CONFIG BEGIN\nHost r\n# REMOTE CONFIG END\n"
	d := t.TempDir()
	if err := os.WriteFile(filepath.Join(d, "a.sshconf"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	r := Run(d, ".sshconf")
	if len(issuesByCheck(r, "fragment-conditions")) != 1 {
		t.Fatalf("expected dead-local-section issue, got %+v", r.Issues)
	}
}

func TestRun_CleanFragmentHasNoFragmentIssues(t *testing.T) {
	content := `# CONDITIONS BEGIN
LocalSSID home
# CONDITIONS END
# GLOBAL CONFIG BEGIN
Host *
# GLOBAL CONFIG END
# LOCAL CONFIG BEGIN
Host l
# LOCAL CONFIG END
# REMOTE CONFIG BEGIN
Host r
# REMOTE CONFIG END
`
	d := t.TempDir()
	if err := os.WriteFile(filepath.Join(d, "ok.sshconf"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	r := Run(d, ".sshconf")
	for _, check := range []string{"fragment-sections", "fragment-conditions", "gateway-spec", "condition-key"} {
		if got := issuesByCheck(r, check); len(got) != 0 {
			t.Fatalf("unexpected %s issues: %+v", check, got)
		}
	}
}

func TestRender_Output(t *testing.T) {
	r := Report{Issues: []Issue{{
		Severity:       SeverityHigh,
		Check:          "fragment-dir",
		Target:         "/x/conf.d",
		Message:        "missing",
		Recommendation: "create it",
	}}}
	out := r.Render()
	if !strings.Contains(out, "fragment-dir") || !strings.Contains(out, "create it") {
		t.Fatalf("render missing fields:\n%s", out)
	}
}

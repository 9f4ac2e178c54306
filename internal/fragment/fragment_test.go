package fragment

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractSection_Basic(t *testing.T) {
	content := "junk\n# GLOBAL CONFIG BEGIN\nHost *\n  User deploy\n# GLOBAL CONFIG END\ntrailing"
	got := ExtractSection(content, "# GLOBAL CONFIG BEGIN", "# GLOBAL CONFIG END")
	want := "Host *\n  User deploy"
	if got != want {
		t.Fatalf("extract mismatch\nwant=%q\n got=%q", want, got)
	}
}

func TestExtractSection_MissingMarkers(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no begin", "text\n# CONDITIONS END\n"},
		{"no end", "# CONDITIONS BEGIN\ntext"},
		{"neither", "plain text"},
		{"end before begin", "# CONDITIONS END\nmid\n# CONDITIONS BEGIN"},
		{"empty content", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractSection(tc.content, "# CONDITIONS BEGIN", "# CONDITIONS END"); got != "" {
				t.Fatalf("expected empty extraction, got %q", got)
			}
		})
	}
}

func TestExtractSection_FirstPairOnly(t *testing.T) {
	content := "# CONDITIONS BEGIN\nfirst\n# CONDITIONS END\n# CONDITIONS BEGIN\nsecond\n# CONDITIONS END\n"
	if got := ExtractSection(content, "# CONDITIONS BEGIN", "# CONDITIONS END"); got != "first" {
		t.Fatalf("expected first pair to win, got %q", got)
	}
}

func TestExtractSection_MarkersConsumed(t *testing.T) {
	content := "# CONDITIONS BEGIN\nLocalSSID home\n# CONDITIONS END"
	inner := ExtractSection(content, "# CONDITIONS BEGIN", "# CONDITIONS END")
	// Re-extracting from the extracted text must yield nothing: markers are
	// consumed, not nested.
	if again := ExtractSection(inner, "# CONDITIONS BEGIN", "# CONDITIONS END"); again != "" {
		t.Fatalf("expected empty re-extraction, got %q", again)
	}
}

func TestExtractSection_MultilineBody(t *testing.T) {
	content := "# LOCAL CONFIG BEGIN\n\nHost db\n  HostName 10.0.0.5\n\n# LOCAL CONFIG END"
	got := ExtractSection(content, "# LOCAL CONFIG BEGIN", "# LOCAL CONFIG END")
	if got != "Host db\n  HostName 10.0.0.5" {
		t.Fatalf("unexpected trim behavior: %q", got)
	}
}

func TestSplit_AllSections(t *testing.T) {
	content := `# CONDITIONS BEGIN
LocalSSID home-net
# CONDITIONS END
# GLOBAL CONFIG BEGIN
Host *
# GLOBAL CONFIG END
# LOCAL CONFIG BEGIN
Host local
# LOCAL CONFIG END
# REMOTE CONFIG BEGIN
Host remote
# REMOTE CONFIG END
`
	s := Split(content)
	if s.Conditions != "LocalSSID home-net" {
		t.Errorf("conditions = %q", s.Conditions)
	}
	if s.Global != "Host *" {
		t.Errorf("global = %q", s.Global)
	}
	if s.Local != "Host local" {
		t.Errorf("local = %q", s.Local)
	}
	if s.Remote != "Host remote" {
		t.Errorf("remote = %q", s.Remote)
	}
}

func TestSplit_PartialSections(t *testing.T) {
	content := "# REMOTE CONFIG BEGIN\nHost r\n# REMOTE CONFIG END\n"
	s := Split(content)
	if s.Conditions != "" || s.Global != "" || s.Local != "" {
		t.Fatalf("expected only remote, got %+v", s)
	}
	if s.Remote != "Host r" {
		t.Fatalf("remote = %q", s.Remote)
	}
}

func TestDiscover_SortedByName(t *testing.T) {
	d := t.TempDir()
	// "10-home" sorts before "2-office" in byte order.
	files := map[string]string{
		"2-office.sshconf": "office",
		"10-home.sshconf":  "home",
		"ignored.txt":      "not a fragment",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(d, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	res, err := Discover(d, ".sshconf")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(res.Fragments))
	}
	if res.Fragments[0].Name != "10-home.sshconf" || res.Fragments[1].Name != "2-office.sshconf" {
		t.Fatalf("unexpected order: %s, %s", res.Fragments[0].Name, res.Fragments[1].Name)
	}
	if res.Fragments[0].Content != "home" {
		t.Fatalf("content not read: %q", res.Fragments[0].Content)
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), ".sshconf")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDiscover_SkipsSubdirs(t *testing.T) {
	d := t.TempDir()
	if err := os.MkdirAll(filepath.Join(d, "sub.sshconf"), 0o755); err != nil {
		t.Fatal(err)
	}
	res, err := Discover(d, ".sshconf")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Fragments) != 0 {
		t.Fatalf("expected no fragments, got %d", len(res.Fragments))
	}
}

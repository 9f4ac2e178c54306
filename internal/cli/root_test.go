package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupHome points HOME and XDG_CONFIG_HOME at a temp tree with an
// initialized ~/.ssh/conf.d and returns the ssh dir.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(filepath.Join(sshDir, "conf.d"), 0o700); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return sshDir
}

func TestRoot_VersionFlag(t *testing.T) {
	setupHome(t)
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-V"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != Version {
		t.Fatalf("version output = %q", out.String())
	}
}

func TestRoot_GeneratesFromFragments(t *testing.T) {
	sshDir := setupHome(t)
	content := "# GLOBAL CONFIG BEGIN\nHost *\n  ServerAliveInterval 60\n# GLOBAL CONFIG END\n"
	if err := os.WriteFile(filepath.Join(sshDir, "conf.d", "00-base.sshconf"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCommand()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(sshDir, "config"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "ServerAliveInterval 60") {
		t.Fatalf("generated config missing global section:\n%s", b)
	}
}

func TestRoot_MissingSSHDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without ~/.ssh")
	}
}

func TestRoot_InvalidMonitorDuration(t *testing.T) {
	setupHome(t)
	for _, arg := range []string{"--monitor-ssid=abc", "--monitor-ssid=0", "--monitor-ssid=-5"} {
		cmd := NewRootCommand()
		cmd.SetArgs([]string{arg})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetOut(&bytes.Buffer{})
		if err := cmd.Execute(); err == nil {
			t.Errorf("expected usage error for %s", arg)
		}
	}
}

func TestEventsCmd_EmptyJournal(t *testing.T) {
	setupHome(t)
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"events"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "TIMESTAMP") {
		t.Fatalf("expected header, got %q", out.String())
	}
}

func TestDoctorCmd_ReportsMissingFragments(t *testing.T) {
	setupHome(t)
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"doctor"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "fragment") {
		t.Fatalf("expected fragment diagnostics, got %q", out.String())
	}
}

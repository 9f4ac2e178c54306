package probe

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CurrentNetworkID returns the SSID of the active wireless connection via
// `iwgetid -r`. An empty result means no wireless connection; only a missing
// or failing tool is an error.
func (p *Prober) CurrentNetworkID() (string, error) {
	out, err := exec.Command("iwgetid", "-r").Output()
	if err != nil {
		return "", fmt.Errorf("iwgetid: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HardwareAddressOf resolves ip to its MAC address from the kernel neighbor
// table at /proc/net/arp.
func (p *Prober) HardwareAddressOf(ip string) (string, error) {
	f, err := os.Open("/proc/net/arp")
	if err != nil {
		return "", fmt.Errorf("open arp table: %w", err)
	}
	defer f.Close()

	mac := parseProcNetARP(f, ip)
	if mac == "" {
		return "", fmt.Errorf("no arp entry for %s", ip)
	}
	return mac, nil
}

// SSIDToolName names the external tool the SSID lookup depends on.
// Used by doctor checks.
func SSIDToolName() string { return "iwgetid" }

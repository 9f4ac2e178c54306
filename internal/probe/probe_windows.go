package probe

import (
	"fmt"
	"os/exec"
)

// CurrentNetworkID returns the SSID of the active wireless connection via
// `netsh wlan show interfaces`. An empty result means no wireless interface
// is connected.
func (p *Prober) CurrentNetworkID() (string, error) {
	out, err := exec.Command("netsh", "wlan", "show", "interfaces").Output()
	if err != nil {
		return "", fmt.Errorf("netsh: %w", err)
	}
	return parseNetshSSID(string(out)), nil
}

// HardwareAddressOf resolves ip to its MAC address via `arp -a`.
func (p *Prober) HardwareAddressOf(ip string) (string, error) {
	out, err := exec.Command("arp", "-a", ip).Output()
	if err != nil {
		return "", fmt.Errorf("arp: %w", err)
	}
	mac := parseWindowsARP(string(out), ip)
	if mac == "" {
		return "", fmt.Errorf("no arp entry for %s", ip)
	}
	return mac, nil
}

// SSIDToolName names the external tool the SSID lookup depends on.
// Used by doctor checks.
func SSIDToolName() string { return "netsh" }

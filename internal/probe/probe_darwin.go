package probe

import (
	"fmt"
	"os/exec"
)

// CurrentNetworkID returns the SSID of the active Wi-Fi connection via
// `networksetup -getairportnetwork en0`. An empty result means en0 is not
// associated with a network.
func (p *Prober) CurrentNetworkID() (string, error) {
	out, err := exec.Command("networksetup", "-getairportnetwork", "en0").Output()
	if err != nil {
		return "", fmt.Errorf("networksetup: %w", err)
	}
	return parseAirportNetwork(string(out)), nil
}

// HardwareAddressOf resolves ip to its MAC address via `arp -n`.
func (p *Prober) HardwareAddressOf(ip string) (string, error) {
	out, err := exec.Command("arp", "-n", ip).Output()
	if err != nil {
		return "", fmt.Errorf("arp: %w", err)
	}
	mac := parseARPCommand(string(out), ip)
	if mac == "" {
		return "", fmt.Errorf("no arp entry for %s", ip)
	}
	return mac, nil
}

// SSIDToolName names the external tool the SSID lookup depends on.
// Used by doctor checks.
func SSIDToolName() string { return "networksetup" }

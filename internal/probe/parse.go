package probe

import (
	"bufio"
	"io"
	"strings"
)

// parseProcNetARP extracts the MAC bound to ip from /proc/net/arp content.
//
//	IP address       HW type     Flags       HW address            Mask     Device
//	192.168.1.1      0x1         0x2         00:11:22:33:44:55     *        eth0
//
// Incomplete entries (all-zero MAC) are treated as unresolved.
func parseProcNetARP(r io.Reader, ip string) string {
	sc := bufio.NewScanner(r)
	if sc.Scan() {
		// header
	}
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != ip {
			continue
		}
		mac := fields[3]
		if mac != "00:00:00:00:00:00" && len(mac) == 17 {
			return mac
		}
	}
	return ""
}

// parseARPCommand extracts the MAC for ip from `arp -n <ip>` output on BSD
// style systems:
//
//	? (192.168.1.1) at 0:11:22:33:44:55 on en0 ifscope [ethernet]
//
// The field after "at" is the address; "(incomplete)" means unresolved.
func parseARPCommand(output, ip string) string {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, ip) {
			continue
		}
		fields := strings.Fields(line)
		for i, f := range fields {
			if f == "at" && i+1 < len(fields) {
				mac := fields[i+1]
				if mac == "(incomplete)" {
					return ""
				}
				return mac
			}
		}
	}
	return ""
}

// parseWindowsARP extracts the MAC for ip from `arp -a <ip>` output, where
// the matching line's second column is the physical address.
func parseWindowsARP(output, ip string) string {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, ip) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			return fields[1]
		}
	}
	return ""
}

// parseNetshSSID extracts the SSID from `netsh wlan show interfaces`
// output: the first line containing "SSID" but not "BSSID", after its colon.
func parseNetshSSID(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "SSID") || strings.Contains(line, "BSSID") {
			continue
		}
		if _, rest, ok := strings.Cut(line, ":"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// parseAirportNetwork extracts the SSID from
// `networksetup -getairportnetwork en0` output:
//
//	Current Wi-Fi Network: home-net
func parseAirportNetwork(output string) string {
	if _, rest, ok := strings.Cut(output, ": "); ok {
		return strings.TrimSpace(rest)
	}
	return ""
}

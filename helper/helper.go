package helper

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RootDomain returns the registrable root of a domain, so the zone of
// "edge.cdn.example.co.uk" is looked up as "example.co.uk".
func RootDomain(domain string) string {
	domain = strings.TrimSuffix(domain, ".")
	if root, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil {
		return root
	}

	// unknown suffix, fall back to the last two labels
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

// FormatHTTPSURL builds a probe URL for an address, bracketing IPv6.
func FormatHTTPSURL(ip string, port int, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if parsed := net.ParseIP(ip); parsed != nil && parsed.To4() == nil {
		return fmt.Sprintf("https://[%s]:%d%s", ip, port, path)
	}
	return fmt.Sprintf("https://%s:%d%s", ip, port, path)
}

// MatchRecordType reports whether an address literal belongs to a record type.
func MatchRecordType(recordType string, ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	switch recordType {
	case "A":
		return parsed.To4() != nil
	case "AAAA":
		return parsed.To4() == nil
	}
	return false
}

package domain

import (
	"net/netip"
	"net/url"
	"strings"
)

// IsLoopback reports whether a webhook target points at the local machine. Targets without a scheme
// are parsed as if they were http URLs.
func IsLoopback(target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}

	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		u, err = url.Parse("http://" + target)
		if err != nil {
			return strings.Contains(strings.ToLower(target), "localhost")
		}
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}

	return addr.IsLoopback() || addr.IsUnspecified()
}

package api

import (
	"net"
)

// clientIP returns the host part of the connection address. middleware.RealIP has
// already applied any proxy headers, so those are not consulted again here.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

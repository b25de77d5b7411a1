package ratelimit

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPResolver decides which address a request is limited by. Forwarding headers
// are only read when the direct peer is one of the trusted proxies.
type IPResolver struct {
	trusted []netip.Prefix
}

// NewIPResolver accepts IPs and CIDRs. Entries that do not parse are skipped,
// the config validator rejects them before this point.
func NewIPResolver(trustedProxies []string) *IPResolver {
	r := &IPResolver{}
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if prefix, err := netip.ParsePrefix(raw); err == nil {
			r.trusted = append(r.trusted, prefix.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(raw); err == nil {
			addr = addr.Unmap()
			r.trusted = append(r.trusted, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return r
}

func (r *IPResolver) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range r.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the client address. Behind a trusted proxy the
// X-Forwarded-For chain is walked from the right and the first hop that is not
// itself a trusted proxy wins; entries further left are client controlled.
func (r *IPResolver) ClientIP(req *http.Request) string {
	peer := ClientIP(req)
	if !r.isTrusted(peer) {
		return peer
	}

	if values := req.Header.Values("X-Forwarded-For"); len(values) > 0 {
		hops := strings.Split(strings.Join(values, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !r.isTrusted(hop) {
				return hop
			}
		}
	}

	if realIP := strings.TrimSpace(req.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return peer
}

// ClientIP returns the address of the direct peer, ignoring forwarding headers
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

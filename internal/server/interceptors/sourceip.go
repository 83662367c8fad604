package interceptors

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

// TrustedProxies is the set of networks whose x-forwarded-for additions are believed.
// A nil *TrustedProxies trusts nobody.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// ParseTrustedProxies parses IP addresses and CIDR ranges. Blank entries are skipped.
func ParseTrustedProxies(entries []string) (*TrustedProxies, error) {
	t := &TrustedProxies{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			t.prefixes = append(t.prefixes, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		a = a.Unmap()
		t.prefixes = append(t.prefixes, netip.PrefixFrom(a, a.BitLen()))
	}
	return t, nil
}

// Contains reports whether addr belongs to a trusted proxy network.
func (t *TrustedProxies) Contains(addr netip.Addr) bool {
	if t == nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range t.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// SourceIP returns the address the geo gate and the per-IP limiter act on. It is the transport
// peer unless the peer is a trusted proxy; then it is the rightmost x-forwarded-for entry that is
// not itself a trusted proxy. Entries left of that one were written by the client and are ignored.
// Returns "unknown" when no usable address exists.
func SourceIP(ctx context.Context, trusted *TrustedProxies) string {
	p, ok := peerAddr(ctx)
	if !ok {
		return "unknown"
	}
	if !trusted.Contains(p) {
		return p.String()
	}
	md, _ := metadata.FromIncomingContext(ctx)
	hops := forwardedHops(md.Get("x-forwarded-for"))
	for i := len(hops) - 1; i >= 0; i-- {
		a, err := netip.ParseAddr(hops[i])
		if err != nil {
			return "unknown"
		}
		if !trusted.Contains(a) {
			return a.Unmap().String()
		}
	}
	return p.String()
}

func peerAddr(ctx context.Context) (netip.Addr, bool) {
	pr, ok := peer.FromContext(ctx)
	if !ok || pr.Addr == nil {
		return netip.Addr{}, false
	}
	host := pr.Addr.String()
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

// forwardedHops flattens repeated x-forwarded-for headers into hops, leftmost first.
func forwardedHops(values []string) []string {
	var hops []string
	for _, v := range values {
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hops = append(hops, h)
			}
		}
	}
	return hops
}

package interceptors

import (
	"context"
	"net"
	"net/netip"
	"testing"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

func peerCtx(addr net.Addr, xff ...string) context.Context {
	ctx := context.Background()
	if addr != nil {
		ctx = peer.NewContext(ctx, &peer.Peer{Addr: addr})
	}
	if len(xff) > 0 {
		md := metadata.MD{}
		for _, v := range xff {
			md.Append("x-forwarded-for", v)
		}
		ctx = metadata.NewIncomingContext(ctx, md)
	}
	return ctx
}

func tcp(ip string) net.Addr { return &net.TCPAddr{IP: net.ParseIP(ip), Port: 5555} }

func TestSourceIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.1 ", ""})
	if err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}
	tests := []struct {
		name    string
		trusted *TrustedProxies
		ctx     context.Context
		want    string
	}{
		{"no peer", trusted, peerCtx(nil, "198.51.100.10"), "unknown"},
		{"non-IP peer", trusted, peerCtx(&net.UnixAddr{Name: "bufconn", Net: "unix"}), "unknown"},
		{"untrusted peer ignores header", trusted, peerCtx(tcp("203.0.113.9"), "198.51.100.10"), "203.0.113.9"},
		{"nil trust list ignores header", nil, peerCtx(tcp("10.0.0.1"), "198.51.100.10"), "10.0.0.1"},
		{"trusted peer uses rightmost hop", trusted, peerCtx(tcp("10.0.0.1"), "1.1.1.1, 198.51.100.10"), "198.51.100.10"},
		{"trusted hops skipped", trusted, peerCtx(tcp("192.0.2.1"), "198.51.100.10, 10.2.3.4"), "198.51.100.10"},
		{"repeated headers flattened", trusted, peerCtx(tcp("10.0.0.1"), "1.1.1.1", "198.51.100.10"), "198.51.100.10"},
		{"all hops trusted falls back to peer", trusted, peerCtx(tcp("10.0.0.1"), "10.0.0.2"), "10.0.0.1"},
		{"trusted peer without header", trusted, peerCtx(tcp("10.0.0.1")), "10.0.0.1"},
		{"malformed hop", trusted, peerCtx(tcp("10.0.0.1"), "198.51.100.10, not-an-ip"), "unknown"},
		{"ipv4-mapped peer", trusted, peerCtx(tcp("::ffff:10.0.0.1"), "198.51.100.10"), "198.51.100.10"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SourceIP(tc.ctx, tc.trusted); got != tc.want {
				t.Errorf("SourceIP = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	if _, err := ParseTrustedProxies([]string{"10.0.0.0/33"}); err == nil {
		t.Error("invalid prefix should fail")
	}
	if _, err := ParseTrustedProxies([]string{"proxy.local"}); err == nil {
		t.Error("hostname should fail")
	}
	tp, err := ParseTrustedProxies([]string{"2001:db8::/32"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}
	if !tp.Contains(netip.MustParseAddr("2001:db8::1")) || tp.Contains(netip.MustParseAddr("2001:db9::1")) {
		t.Error("IPv6 prefix membership wrong")
	}
	var none *TrustedProxies
	if none.Contains(netip.MustParseAddr("10.0.0.1")) {
		t.Error("nil set must trust nobody")
	}
}

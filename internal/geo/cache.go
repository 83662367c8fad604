package geo

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is used when NewCachingResolver is given a non-positive ttl.
const DefaultCacheTTL = 10 * time.Minute

// CachingResolver memoizes successful lookups in process. Failures are never cached, so an
// outage is not extended past its end.
type CachingResolver struct {
	next Resolver
	ttl  time.Duration
	c    *gocache.Cache
}

// NewCachingResolver wraps next with a cache whose entries live for ttl. Entries always expire:
// a non-positive ttl falls back to DefaultCacheTTL.
func NewCachingResolver(next Resolver, ttl time.Duration) *CachingResolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachingResolver{next: next, ttl: ttl, c: gocache.New(ttl, 2*ttl)}
}

func (r *CachingResolver) Resolve(ctx context.Context, ip string) (string, error) {
	if v, ok := r.c.Get(ip); ok {
		return v.(string), nil
	}
	cc, err := r.next.Resolve(ctx, ip)
	if err != nil {
		return "", err
	}
	r.c.SetDefault(ip, cc)
	return cc, nil
}

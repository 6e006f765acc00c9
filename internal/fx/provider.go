package fx

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultUSDToHKD is the last-resort fallback rate used when no rate has ever
// been fetched successfully. HKD is pegged to a 7.75-7.85 band, so a fixed
// mid-band value keeps valuations sane during an upstream outage.
const DefaultUSDToHKD = 7.8

// RateProvider supplies the USD/HKD exchange rate used to normalize HKD
// amounts into the base currency.
type RateProvider interface {
	// USDToHKD returns the number of HKD per 1 USD. Implementations must not
	// block indefinitely and must degrade to a cached or fallback value on
	// upstream failure rather than returning an error for transient outages.
	USDToHKD(ctx context.Context) (float64, error)
}

// FetchFunc fetches a fresh USD/HKD rate from an upstream source.
type FetchFunc func(ctx context.Context) (float64, error)

// CachedRateProvider wraps an upstream fetch with a TTL cache and a
// last-known-good fallback. A fetch failure never propagates to callers once a
// rate has been observed; before the first successful fetch it falls back to
// DefaultUSDToHKD.
type CachedRateProvider struct {
	fetch FetchFunc
	ttl   time.Duration
	log   zerolog.Logger

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

// NewCachedRateProvider creates a rate provider caching upstream results for ttl.
func NewCachedRateProvider(fetch FetchFunc, ttl time.Duration, log zerolog.Logger) *CachedRateProvider {
	return &CachedRateProvider{
		fetch: fetch,
		ttl:   ttl,
		log:   log.With().Str("component", "rate_provider").Logger(),
	}
}

// USDToHKD returns the cached rate when fresh, otherwise refetches. On fetch
// failure it returns the last known good rate, or DefaultUSDToHKD if none
// exists yet. The returned error is always nil; failures are logged.
func (p *CachedRateProvider) USDToHKD(ctx context.Context) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rate > 0 && time.Since(p.fetchedAt) < p.ttl {
		return p.rate, nil
	}

	rate, err := p.fetch(ctx)
	if err != nil || rate <= 0 {
		if p.rate > 0 {
			p.log.Warn().Err(err).Float64("fallback", p.rate).Msg("Rate fetch failed, using last known good rate")
			return p.rate, nil
		}
		p.log.Warn().Err(err).Float64("fallback", DefaultUSDToHKD).Msg("Rate fetch failed with no cached rate, using default")
		return DefaultUSDToHKD, nil
	}

	p.rate = rate
	p.fetchedAt = time.Now()
	return rate, nil
}

// StaticRateProvider returns a fixed rate. Used in tests and as a deterministic
// stand-in when no market data source is configured.
type StaticRateProvider struct {
	Rate float64
}

// USDToHKD returns the configured fixed rate.
func (p StaticRateProvider) USDToHKD(_ context.Context) (float64, error) {
	return p.Rate, nil
}

package weather

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"tablegrape/pkg/cache"
)

// Service fronts the provider chain with a short-TTL cache. Providers are
// tried in order; the first one to return a non-empty day list wins. When
// all of them fail the caller gets a series with zero days, never an error,
// so downstream rule logic treats "no data" uniformly.
type Service struct {
	providers []Provider
	cache     *cache.TTL[Forecast]
	log       zerolog.Logger
}

func NewService(providers []Provider, c *cache.TTL[Forecast], log zerolog.Logger) *Service {
	return &Service{providers: providers, cache: c, log: log}
}

func cacheKey(lat, lon float64, days int) string {
	return fmt.Sprintf("%v_%v_%d", lat, lon, days)
}

func (s *Service) GetForecast(ctx context.Context, lat, lon float64, days int) Forecast {
	key := cacheKey(lat, lon, days)
	if fc, ok := s.cache.Get(key); ok {
		return fc
	}

	for _, p := range s.providers {
		fc, err := p.Fetch(ctx, lat, lon, days)
		if err != nil {
			s.log.Warn().Err(err).Str("provider", p.Name()).Msg("forecast provider failed")
			continue
		}
		if len(fc.Days) == 0 {
			s.log.Warn().Str("provider", p.Name()).Msg("forecast provider returned no days")
			continue
		}
		s.cache.Set(key, fc)
		return fc
	}

	return Forecast{Lat: lat, Lon: lon}
}

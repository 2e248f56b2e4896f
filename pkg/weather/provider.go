package weather

import "context"

// Provider fetches a daily forecast from one upstream. Implementations
// return an error for network failures, non-2xx responses and bodies they
// cannot parse; the gateway additionally treats an empty day list as a
// failure so the next provider in the chain gets a turn.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64, days int) (Forecast, error)
}

package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablegrape/pkg/cache"
)

type fakeProvider struct {
	name  string
	fc    Forecast
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, lat, lon float64, days int) (Forecast, error) {
	f.calls++
	return f.fc, f.err
}

func day(date string, tmin, tmax, precip float64) Day {
	return Day{Date: date, TempMin: &tmin, TempMax: &tmax, PrecipitationSum: precip}
}

func newTestService(providers ...Provider) *Service {
	return NewService(providers, cache.New[Forecast](15*time.Minute), zerolog.Nop())
}

func TestPrimaryWins(t *testing.T) {
	primary := &fakeProvider{name: "a", fc: Forecast{Days: []Day{day("2026-09-01", 10, 25, 0)}}}
	secondary := &fakeProvider{name: "b", fc: Forecast{Days: []Day{day("2026-09-01", 11, 26, 1)}}}
	s := newTestService(primary, secondary)

	fc := s.GetForecast(context.Background(), 19.9, 73.7, 7)
	require.Len(t, fc.Days, 1)
	assert.Equal(t, 25.0, *fc.Days[0].TempMax)
	assert.Zero(t, secondary.calls, "secondary consulted although primary succeeded")
}

func TestFallbackOnError(t *testing.T) {
	primary := &fakeProvider{name: "a", err: errors.New("timeout")}
	secondary := &fakeProvider{name: "b", fc: Forecast{Days: []Day{day("2026-09-01", 11, 26, 1)}}}
	s := newTestService(primary, secondary)

	fc := s.GetForecast(context.Background(), 19.9, 73.7, 7)
	require.Len(t, fc.Days, 1)
	assert.Equal(t, 26.0, *fc.Days[0].TempMax)
}

func TestFallbackOnEmptyDays(t *testing.T) {
	primary := &fakeProvider{name: "a", fc: Forecast{}}
	secondary := &fakeProvider{name: "b", fc: Forecast{Days: []Day{day("2026-09-01", 11, 26, 1)}}}
	s := newTestService(primary, secondary)

	fc := s.GetForecast(context.Background(), 19.9, 73.7, 7)
	require.Len(t, fc.Days, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestAllFailReturnsEmptySeries(t *testing.T) {
	primary := &fakeProvider{name: "a", err: errors.New("down")}
	secondary := &fakeProvider{name: "b", err: errors.New("also down")}
	s := newTestService(primary, secondary)

	fc := s.GetForecast(context.Background(), 19.9, 73.7, 7)
	assert.Empty(t, fc.Days)
	assert.Equal(t, 19.9, fc.Lat)
	assert.Equal(t, 73.7, fc.Lon)
}

func TestSuccessfulResultIsCached(t *testing.T) {
	primary := &fakeProvider{name: "a", fc: Forecast{Days: []Day{day("2026-09-01", 10, 25, 0)}}}
	s := newTestService(primary)

	s.GetForecast(context.Background(), 19.9, 73.7, 7)
	s.GetForecast(context.Background(), 19.9, 73.7, 7)
	assert.Equal(t, 1, primary.calls)

	// different horizon is a different key
	s.GetForecast(context.Background(), 19.9, 73.7, 3)
	assert.Equal(t, 2, primary.calls)
}

func TestFailureIsNotCached(t *testing.T) {
	primary := &fakeProvider{name: "a", err: errors.New("down")}
	s := newTestService(primary)

	s.GetForecast(context.Background(), 19.9, 73.7, 7)
	s.GetForecast(context.Background(), 19.9, 73.7, 7)
	assert.Equal(t, 2, primary.calls)
}

package prayer

import (
	"context"
	"sync"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
)

// Lookup fetches prayer times for a date and place.
type Lookup interface {
	Timings(ctx context.Context, date string, lat, lon float64) (*models.PrayerTimes, error)
}

// CachedProvider answers at most one remote lookup per day for a fixed location,
// keeping the result in the mapping store.
type CachedProvider struct {
	lookup      Lookup
	provider    storage.Provider
	lat, lon    float64
	locationSet bool

	mu sync.Mutex
}

// NewCachedProvider reads the location from settings. Without a location every
// call returns ErrNoLocation.
func NewCachedProvider(lookup Lookup, p storage.Provider, settings models.Settings) *CachedProvider {
	return &CachedProvider{
		lookup:      lookup,
		provider:    p,
		lat:         settings.Latitude,
		lon:         settings.Longitude,
		locationSet: settings.LocationSet,
	}
}

// cacheEntry pins cached times to the coordinates they were fetched for.
type cacheEntry struct {
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Times     models.PrayerTimes `json:"times"`
}

func cacheKey(date string) string {
	return constants.PrayerTimesKeyPrefix + date
}

// Timings returns cached times for date or looks them up and caches them.
func (c *CachedProvider) Timings(ctx context.Context, date string) (*models.PrayerTimes, error) {
	if !c.locationSet {
		return nil, ErrNoLocation
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var entry cacheEntry
	found, err := storage.ReadJSON(ctx, c.provider, cacheKey(date), &entry)
	if err != nil {
		logger.Warn("Prayer time cache unreadable", "date", date, "error", err)
	}
	if found && entry.Latitude == c.lat && entry.Longitude == c.lon && entry.Times.Fajr != "" {
		times := entry.Times
		return &times, nil
	}

	times, err := c.lookup.Timings(ctx, date, c.lat, c.lon)
	if err != nil {
		return nil, err
	}

	entry = cacheEntry{Latitude: c.lat, Longitude: c.lon, Times: *times}
	if err := storage.WriteJSON(ctx, c.provider, cacheKey(date), entry); err != nil {
		logger.Warn("Failed to cache prayer times", "date", date, "error", err)
	}
	return times, nil
}

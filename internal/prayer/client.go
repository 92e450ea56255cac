// Package prayer looks up daily prayer times from the Aladhan timings API.
package prayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
)

// ErrNoLocation is returned when latitude and longitude are not configured.
var ErrNoLocation = errors.New("location not set, run 'nahar settings --lat <lat> --lon <lon>'")

// ErrLookupFailed wraps every failed lookup so callers can hide dependent items.
var ErrLookupFailed = errors.New("could not fetch prayer times")

// Client calls the Aladhan timings endpoint.
type Client struct {
	baseURL string
	method  int
	client  *http.Client
}

type timingsResponse struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type timingsData struct {
	Timings map[string]string `json:"timings"`
}

func NewClient() *Client {
	return &Client{
		baseURL: constants.AladhanBaseURL,
		method:  constants.AladhanMethod,
		client:  &http.Client{Timeout: constants.PrayerLookupTimeout},
	}
}

// NewClientWithBaseURL points the client at another server; used by tests.
func NewClientWithBaseURL(baseURL string, hc *http.Client) *Client {
	c := NewClient()
	c.baseURL = strings.TrimRight(baseURL, "/")
	if hc != nil {
		c.client = hc
	}
	return c
}

// Timings returns the prayer times on date (YYYY-MM-DD) at the given coordinates.
func (c *Client) Timings(ctx context.Context, date string, lat, lon float64) (*models.PrayerTimes, error) {
	day, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("method", strconv.Itoa(c.method))
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, day.Format("02-01-2006"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrLookupFailed, err)
	}

	var parsed timingsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: HTTP %d: decoding response: %v", ErrLookupFailed, resp.StatusCode, err)
	}
	if parsed.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: service returned code %d (%s)", ErrLookupFailed, parsed.Code, parsed.Status)
	}

	var data timingsData
	if err := json.Unmarshal(parsed.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: decoding timings: %v", ErrLookupFailed, err)
	}

	times := &models.PrayerTimes{
		Fajr:    clock(data.Timings["Fajr"]),
		Dhuhr:   clock(data.Timings["Dhuhr"]),
		Asr:     clock(data.Timings["Asr"]),
		Maghrib: clock(data.Timings["Maghrib"]),
		Isha:    clock(data.Timings["Isha"]),
	}
	if times.Fajr == "" {
		return nil, fmt.Errorf("%w: response has no Fajr time", ErrLookupFailed)
	}
	return times, nil
}

// clock trims values like "05:12 (EET)" down to HH:MM.
func clock(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, ' '); i >= 0 {
		v = v[:i]
	}
	if _, err := time.Parse(constants.TimeFormat, v); err != nil {
		return ""
	}
	return v
}

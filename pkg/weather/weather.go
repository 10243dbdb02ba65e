// Package weather feeds the dashboard's forecast panel from an
// Open-Meteo style endpoint. The panel is decorative: a failed fetch
// degrades to a placeholder and the fetcher simply tries again on the
// next interval.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tableflip.dev/opsdeck/pkg/timeutil"
)

// DefaultInterval is how often the forecast refreshes.
const DefaultInterval = 10 * time.Minute

// DefaultURL asks Open-Meteo for the current conditions the panel shows.
const DefaultURL = "https://api.open-meteo.com/v1/forecast?latitude=35.68&longitude=139.69&current=temperature_2m,precipitation_probability,weather_code"

// Report is one decoded forecast sample.
type Report struct {
	Temperature   float64
	Precipitation int
	Code          int
}

// Icon returns the glyph for the report's weather code.
func (r Report) Icon() string {
	icon, _ := Describe(r.Code)
	return icon
}

// Label returns the human description for the report's weather code.
func (r Report) Label() string {
	_, label := Describe(r.Code)
	return label
}

func (r Report) String() string {
	return fmt.Sprintf("%s %.0f°C  %d%% rain  %s", r.Icon(), r.Temperature, r.Precipitation, r.Label())
}

// Placeholder renders while no report is available.
const Placeholder = "weather unavailable"

// Describe maps a WMO weather code onto the panel's icon and label.
// Unknown codes fall back to a generic cloud.
func Describe(code int) (icon, label string) {
	switch {
	case code == 0:
		return "☀", "clear"
	case code >= 1 && code <= 2:
		return "🌤", "partly cloudy"
	case code == 3:
		return "☁", "overcast"
	case code >= 45 && code <= 48:
		return "🌫", "fog"
	case code >= 51 && code <= 57:
		return "🌦", "drizzle"
	case code >= 61 && code <= 67:
		return "🌧", "rain"
	case code >= 71 && code <= 77:
		return "🌨", "snow"
	case code >= 80 && code <= 82:
		return "🌧", "showers"
	case code >= 85 && code <= 86:
		return "🌨", "snow showers"
	case code >= 95:
		return "⛈", "thunderstorm"
	}
	return "☁", "clouds"
}

// Fetcher polls the forecast endpoint. Zero values take the defaults, so
// Fetcher{} is usable as-is.
type Fetcher struct {
	// URL overrides DefaultURL, mainly for tests.
	URL string

	// Interval overrides DefaultInterval when positive.
	Interval time.Duration

	// Client overrides http.DefaultClient.
	Client *http.Client
}

// Update carries either a fresh report or the error that kept one away.
type Update struct {
	Report Report
	Err    error
}

type payload struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Precipitation int     `json:"precipitation_probability"`
		Code          int     `json:"weather_code"`
	} `json:"current"`
}

func (f *Fetcher) url() string {
	if f.URL != "" {
		return f.URL
	}
	return DefaultURL
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// IntervalFor reports the configured refresh interval.
func (f *Fetcher) IntervalFor() time.Duration {
	if f.Interval > 0 {
		return f.Interval
	}
	return DefaultInterval
}

// Fetch performs a single forecast request.
func (f *Fetcher) Fetch(ctx context.Context) (Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("weather: %w", err)
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather: unexpected status %s", resp.Status)
	}

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Report{}, fmt.Errorf("weather: %w", err)
	}
	return Report{
		Temperature:   p.Current.Temperature,
		Precipitation: p.Current.Precipitation,
		Code:          p.Current.Code,
	}, nil
}

// Run fetches immediately and then on every interval until ctx is done,
// sending each outcome on the returned channel. Errors are delivered too
// so the consumer can show the placeholder; the loop never stops on one.
func (f *Fetcher) Run(ctx context.Context) <-chan Update {
	out := make(chan Update, 1)
	go func() {
		defer close(out)
		ticker := timeutil.NewTicker(f.IntervalFor())
		defer ticker.Stop()
		for {
			report, err := f.Fetch(ctx)
			select {
			case out <- Update{Report: report, Err: err}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"foodrescue_portal/platform/apperr"
	"foodrescue_portal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	searchLimit = 5
	cacheTTL    = 24 * time.Hour
)

// Geocoder talks to a Nominatim-compatible endpoint. The capability is
// enabled only when a contact credential is configured; this is the single
// place the flag is resolved.
type Geocoder struct {
	client  *http.Client
	baseURL string
	contact string
	limiter *rate.Limiter
	cache   Cache
	log     *logger.Logger
}

// NewGeocoder creates a geocoder. An empty contact disables the capability.
// Nominatim's usage policy caps anonymous clients at one request per second,
// hence the limiter.
func NewGeocoder(baseURL, contact string, cache Cache, log *logger.Logger) *Geocoder {
	if cache == nil {
		cache = noopCache{}
	}
	return &Geocoder{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
		contact: contact,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		cache:   cache,
		log:     log,
	}
}

// Enabled reports whether the geocoding capability is configured.
func (g *Geocoder) Enabled() bool {
	return g.contact != ""
}

// Search forward-geocodes a free-text query into candidate locations.
// Requires the capability; zero results is not an error.
func (g *Geocoder) Search(ctx context.Context, query string) ([]LocationResult, error) {
	if !g.Enabled() {
		return nil, apperr.CapabilityUnavailable("address search requires a configured geocoding credential").WithOp("geo.search")
	}

	cacheKey := "geo:search:" + query
	if cached, ok := g.cache.Get(ctx, cacheKey); ok {
		var results []LocationResult
		if err := json.Unmarshal([]byte(cached), &results); err == nil {
			return results, nil
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(searchLimit))

	var raw []nominatimResult
	if err := g.request(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}

	results := make([]LocationResult, 0, len(raw))
	for _, item := range raw {
		result, ok := buildResult(item)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	if payload, err := json.Marshal(results); err == nil {
		g.cache.Set(ctx, cacheKey, string(payload), cacheTTL)
	}
	return results, nil
}

// Reverse resolves coordinates to a formatted address. Callers fall back to
// FormatCoordinates when this fails or the capability is disabled.
func (g *Geocoder) Reverse(ctx context.Context, lat, lng float64) (LocationResult, error) {
	if !g.Enabled() {
		return LocationResult{}, apperr.CapabilityUnavailable("reverse geocoding requires a configured geocoding credential").WithOp("geo.reverse")
	}

	cacheKey := fmt.Sprintf("geo:reverse:%s", FormatCoordinates(lat, lng))
	if cached, ok := g.cache.Get(ctx, cacheKey); ok {
		var result LocationResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("format", "jsonv2")

	var raw nominatimResult
	if err := g.request(ctx, "/reverse", params, &raw); err != nil {
		return LocationResult{}, err
	}

	result, ok := buildResult(raw)
	if !ok {
		return LocationResult{}, apperr.Upstream("no address found for coordinates", nil).WithOp("geo.reverse")
	}
	// Reverse answers echo the provider-snapped position; keep the device's.
	result.Latitude = lat
	result.Longitude = lng

	if payload, err := json.Marshal(result); err == nil {
		g.cache.Set(ctx, cacheKey, string(payload), cacheTTL)
	}
	return result, nil
}

func (g *Geocoder) request(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return apperr.Upstream("geocoding request cancelled", err).WithOp("geo.request")
	}

	reqURL := fmt.Sprintf("%s%s?%s", g.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperr.Internal("create geocoding request").WithOp("geo.request")
	}
	req.Header.Set("User-Agent", "FoodRescuePortal/1.0 ("+g.contact+")")

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.UpstreamError("nominatim", path, err)
		return apperr.Upstream("geocoding service unreachable", err).WithOp("geo.request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		g.log.UpstreamError("nominatim", path, err)
		return apperr.Upstream(fmt.Sprintf("geocoding service returned status %d", resp.StatusCode), err).WithOp("geo.request")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		g.log.UpstreamError("nominatim", path, err)
		return apperr.Upstream("decode geocoding response", err).WithOp("geo.request")
	}
	return nil
}

func buildResult(raw nominatimResult) (LocationResult, bool) {
	if raw.DisplayName == "" {
		return LocationResult{}, false
	}
	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return LocationResult{}, false
	}
	lng, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return LocationResult{}, false
	}

	result := LocationResult{
		Latitude:  lat,
		Longitude: lng,
		Address:   raw.DisplayName,
	}
	if raw.PlaceID != 0 {
		result.PlaceID = strconv.FormatInt(raw.PlaceID, 10)
	}
	return result, true
}

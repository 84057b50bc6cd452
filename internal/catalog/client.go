package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/sync/singleflight"

	"verdant_back_end/internal/models"
)

// ErrNotFound is returned when a plant id resolves neither against the plant
// API nor the embedded fallback catalog.
var ErrNotFound = errors.New("plant not found")

// DefaultBaseURL is used when PLANT_API_URL is not set.
const DefaultBaseURL = "http://localhost:5000/api"

// Client resolves plant ids against the external plant API, falling back to
// a small embedded catalog when the API is unreachable. One best-effort
// attempt per call: no caching, no retries.
type Client struct {
	baseURL string
	http    *http.Client
	sfg     singleflight.Group // collapses concurrent lookups of the same id
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// GetPlant fetches a plant by id. The API wraps the entity under a "plant"
// key; any network or decode failure falls through to the fallback catalog.
func (c *Client) GetPlant(ctx context.Context, id string) (models.Plant, error) {
	v, err, _ := c.sfg.Do(id, func() (interface{}, error) {
		plant, err := c.fetch(ctx, id)
		if err == nil {
			return plant, nil
		}
		log.Printf("⚠️ plant API lookup failed for %q, using fallback catalog: %v", id, err)

		if fallback, ok := fallbackPlant(id); ok {
			return fallback, nil
		}
		return models.Plant{}, ErrNotFound
	})
	if err != nil {
		return models.Plant{}, err
	}
	return v.(models.Plant), nil
}

func (c *Client) fetch(ctx context.Context, id string) (models.Plant, error) {
	url := fmt.Sprintf("%s/plants/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Plant{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Plant{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Plant{}, fmt.Errorf("plant API returned status %d", resp.StatusCode)
	}

	var body struct {
		Plant models.Plant `json:"plant"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Plant{}, err
	}
	if body.Plant.ID == "" {
		return models.Plant{}, fmt.Errorf("plant API response missing plant")
	}
	return body.Plant, nil
}

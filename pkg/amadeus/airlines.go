package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownAirline is the display name used for carrier codes the provider
// does not know. It appears in resolver results only; the cache never holds
// it, so a later successful lookup can still fill the real name in.
const UnknownAirline = "Unknown Airline"

// NameCache maps carrier codes to display names. Append-only for its
// lifetime; concurrent writes of the same code are idempotent.
type NameCache struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewNameCache() *NameCache {
	return &NameCache{names: make(map[string]string)}
}

func (c *NameCache) Get(code string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[code]
	return name, ok
}

func (c *NameCache) Put(code, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[code] = name
}

// AirlineResolver resolves carrier codes to display names through the
// reference-data endpoint, backed by an injected NameCache.
type AirlineResolver struct {
	client *Client
	cache  *NameCache
	titler cases.Caser
}

func NewAirlineResolver(client *Client, cache *NameCache) *AirlineResolver {
	return &AirlineResolver{
		client: client,
		cache:  cache,
		titler: cases.Title(language.English),
	}
}

type airlineEntry struct {
	IataCode     string `json:"iataCode"`
	IcaoCode     string `json:"icaoCode"`
	BusinessName string `json:"businessName"`
	CommonName   string `json:"commonName"`
	Name         string `json:"name"`
}

type airlinesEnvelope struct {
	Data []airlineEntry `json:"data"`
}

// ResolveNames maps each input code to a display name. Codes are
// deduplicated; cached codes cost no network call; the rest go out in one
// batched lookup. Codes the provider does not return map to UnknownAirline.
func (r *AirlineResolver) ResolveNames(ctx context.Context, codes []string) (map[string]string, error) {
	uniq := dedupeCodes(codes)
	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	toFetch := make([]string, 0, len(uniq))
	for _, code := range uniq {
		if _, ok := r.cache.Get(code); !ok {
			toFetch = append(toFetch, code)
		}
	}

	if len(toFetch) > 0 {
		params := url.Values{}
		params.Set("airlineCodes", strings.Join(toFetch, ","))

		body, err := r.client.Get(ctx, "/v1/reference-data/airlines", params)
		if err != nil {
			return nil, err
		}

		var envelope airlinesEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("amadeus: failed to decode airlines response: %w", err)
		}

		for _, entry := range envelope.Data {
			code := entry.IataCode
			if code == "" {
				code = entry.IcaoCode
			}
			name := entry.BusinessName
			if name == "" {
				name = entry.CommonName
			}
			if name == "" {
				name = entry.Name
			}
			if code != "" && name != "" {
				r.cache.Put(code, r.titler.String(name))
			}
		}
	}

	resolved := make(map[string]string, len(uniq))
	for _, code := range uniq {
		if name, ok := r.cache.Get(code); ok {
			resolved[code] = name
		} else {
			resolved[code] = UnknownAirline
		}
	}
	return resolved, nil
}

func dedupeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	uniq := make([]string, 0, len(codes))
	for _, code := range codes {
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		uniq = append(uniq, code)
	}
	return uniq
}

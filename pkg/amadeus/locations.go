package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const locationCandidateLimit = 5

// LocationCode pairs the city-level and airport-level IATA codes a free-text
// place name resolved to. An empty string means that level is unknown.
type LocationCode struct {
	CityCode    string
	AirportCode string
}

type locationEntry struct {
	SubType  string `json:"subType"`
	IataCode string `json:"iataCode"`
	Name     string `json:"name"`
}

type locationsEnvelope struct {
	Data []locationEntry `json:"data"`
}

// ResolveLocation turns a city/place name or a bare IATA code into a
// city-code/airport-code pair. Input that is already a 3-letter code is
// returned as both codes without a network call.
func (c *Client) ResolveLocation(ctx context.Context, keyword string) (LocationCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(keyword))
	if isIATACode(normalized) {
		return LocationCode{CityCode: normalized, AirportCode: normalized}, nil
	}

	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", "CITY,AIRPORT")
	params.Set("page[limit]", fmt.Sprint(locationCandidateLimit))

	body, err := c.Get(ctx, "/v1/reference-data/locations", params)
	if err != nil {
		return LocationCode{}, err
	}

	var envelope locationsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return LocationCode{}, fmt.Errorf("amadeus: failed to decode locations response: %w", err)
	}
	if len(envelope.Data) == 0 {
		return LocationCode{}, &ResolutionError{Keyword: keyword}
	}

	var cityCode, airportCode string
	for _, entry := range envelope.Data {
		if entry.SubType == "CITY" && cityCode == "" {
			cityCode = entry.IataCode
		}
		if entry.SubType == "AIRPORT" && airportCode == "" {
			airportCode = entry.IataCode
		}
	}

	// Fall back to the top result for whichever level is missing.
	first := envelope.Data[0].IataCode
	if cityCode == "" {
		cityCode = first
	}
	if airportCode == "" {
		airportCode = first
	}

	return LocationCode{CityCode: cityCode, AirportCode: airportCode}, nil
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

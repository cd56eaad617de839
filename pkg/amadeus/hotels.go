package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// HotelQuery holds the two-phase hotel search parameters.
type HotelQuery struct {
	CityCode  string
	CheckIn   string
	CheckOut  string
	Adults    int
	Currency  string
	MaxHotels int
}

// HotelRecord is a static hotel entry from the city list endpoint. Geo data
// shows up either at the top level or nested under geoCode depending on the
// provider response version, so both are modeled.
type HotelRecord struct {
	HotelID   string        `json:"hotelId"`
	Name      string        `json:"name"`
	IataCode  string        `json:"iataCode"`
	Latitude  *float64      `json:"latitude,omitempty"`
	Longitude *float64      `json:"longitude,omitempty"`
	GeoCode   *GeoCode      `json:"geoCode,omitempty"`
	Address   *HotelAddress `json:"address,omitempty"`
}

type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type HotelAddress struct {
	Lines       []string `json:"lines,omitempty"`
	CityName    string   `json:"cityName,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
}

// HotelOffer is one item of the dynamic v3 offers response: a hotel block
// plus zero or more priced room offers.
type HotelOffer struct {
	Hotel     HotelInfo   `json:"hotel"`
	Available *bool       `json:"available,omitempty"`
	Offers    []RoomOffer `json:"offers"`
}

type HotelInfo struct {
	HotelID  string `json:"hotelId"`
	Name     string `json:"name"`
	CityCode string `json:"cityCode"`
}

type RoomOffer struct {
	CheckInDate  string     `json:"checkInDate"`
	CheckOutDate string     `json:"checkOutDate"`
	BoardType    string     `json:"boardType"`
	Room         *Room      `json:"room,omitempty"`
	Price        HotelPrice `json:"price"`
}

type Room struct {
	BoardType string `json:"boardType"`
}

type HotelPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type hotelListEnvelope struct {
	Data []HotelRecord `json:"data"`
}

type hotelOffersEnvelope struct {
	Data []HotelOffer `json:"data"`
}

// ListHotelsByCity fetches static hotel records for a city code.
func (c *Client) ListHotelsByCity(ctx context.Context, cityCode string) ([]HotelRecord, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)

	body, err := c.Get(ctx, "/v1/reference-data/locations/hotels/by-city", params)
	if err != nil {
		return nil, err
	}

	var envelope hotelListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("amadeus: failed to decode hotel list: %w", err)
	}
	return envelope.Data, nil
}

// SearchHotelOffersByIDs fetches dynamic offers for a set of hotel IDs.
// An empty ID list returns immediately without a network call.
func (c *Client) SearchHotelOffersByIDs(ctx context.Context, hotelIDs []string, checkIn, checkOut string, adults int, currency string, bestRateOnly bool) ([]HotelOffer, error) {
	if len(hotelIDs) == 0 {
		return []HotelOffer{}, nil
	}

	params := url.Values{}
	params.Set("hotelIds", strings.Join(hotelIDs, ","))
	params.Set("adults", strconv.Itoa(adults))
	params.Set("checkInDate", checkIn)
	params.Set("checkOutDate", checkOut)
	params.Set("currency", currency)
	if bestRateOnly {
		params.Set("bestRateOnly", "true")
	}

	body, err := c.Get(ctx, "/v3/shopping/hotel-offers", params)
	if err != nil {
		return nil, err
	}

	var envelope hotelOffersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("amadeus: failed to decode hotel offers: %w", err)
	}
	return envelope.Data, nil
}

// SearchHotels runs the two-phase lookup: list hotels for the city, truncate
// to the first MaxHotels IDs in list order, then fetch offers for exactly
// that set. The truncation is a quota control, not a ranking; callers must
// not assume full city coverage.
func (c *Client) SearchHotels(ctx context.Context, q HotelQuery) ([]HotelOffer, []HotelRecord, error) {
	hotelList, err := c.ListHotelsByCity(ctx, q.CityCode)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, q.MaxHotels)
	for _, h := range hotelList {
		if h.HotelID == "" {
			continue
		}
		ids = append(ids, h.HotelID)
		if len(ids) >= q.MaxHotels {
			break
		}
	}

	offers, err := c.SearchHotelOffersByIDs(ctx, ids, q.CheckIn, q.CheckOut, q.Adults, q.Currency, true)
	if err != nil {
		return nil, nil, err
	}
	return offers, hotelList, nil
}

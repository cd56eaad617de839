// Package mockoffers is an offline offer backend for local development and
// demos. It returns deterministic canned flights and hotels shaped exactly
// like the provider's responses, so everything downstream of the offer
// source behaves the same with or without provider credentials.
package mockoffers

import (
	"context"
	"fmt"
	"strings"

	"travelbuddy/pkg/amadeus"
)

var cityCodes = map[string]string{
	"rome":     "ROM",
	"paris":    "PAR",
	"london":   "LON",
	"istanbul": "IST",
	"dubai":    "DXB",
	"tokyo":    "TYO",
	"new york": "NYC",
	"lahore":   "LHE",
	"karachi":  "KHI",
}

var airlineNames = map[string]string{
	"QR": "Qatar Airways",
	"EK": "Emirates",
	"TK": "Turkish Airlines",
	"PK": "Pakistan International Airlines",
	"AZ": "Ita Airways",
}

type Source struct{}

func New() *Source { return &Source{} }

// ResolveLocation maps known city names onto canned metro codes. Three-letter
// uppercase inputs pass through as both city and airport code.
func (s *Source) ResolveLocation(ctx context.Context, keyword string) (amadeus.LocationCode, error) {
	trimmed := strings.TrimSpace(keyword)
	if len(trimmed) == 3 && trimmed == strings.ToUpper(trimmed) {
		return amadeus.LocationCode{CityCode: trimmed, AirportCode: trimmed}, nil
	}
	if code, ok := cityCodes[strings.ToLower(trimmed)]; ok {
		return amadeus.LocationCode{CityCode: code, AirportCode: code}, nil
	}
	return amadeus.LocationCode{}, &amadeus.ResolutionError{Keyword: keyword}
}

func (s *Source) SearchFlightOffers(ctx context.Context, q amadeus.FlightQuery) ([]amadeus.FlightOffer, error) {
	outbound := []amadeus.Itinerary{
		{
			Segments: []amadeus.Segment{
				{
					Departure:   amadeus.SegmentPoint{IataCode: q.Origin, At: q.DepartDate + "T08:30:00"},
					Arrival:     amadeus.SegmentPoint{IataCode: "DOH", At: q.DepartDate + "T11:10:00"},
					CarrierCode: "QR",
					Number:      "633",
				},
				{
					Departure:   amadeus.SegmentPoint{IataCode: "DOH", At: q.DepartDate + "T13:05:00"},
					Arrival:     amadeus.SegmentPoint{IataCode: q.Destination, At: q.DepartDate + "T18:45:00"},
					CarrierCode: "QR",
					Number:      "115",
				},
			},
		},
	}
	direct := []amadeus.Itinerary{
		{
			Segments: []amadeus.Segment{
				{
					Departure:   amadeus.SegmentPoint{IataCode: q.Origin, At: q.DepartDate + "T09:15:00"},
					Arrival:     amadeus.SegmentPoint{IataCode: q.Destination, At: q.DepartDate + "T15:40:00"},
					CarrierCode: "TK",
					Number:      "709",
					Operating:   &amadeus.OperatingCarrier{CarrierCode: "PK"},
				},
			},
		},
	}
	if q.ReturnDate != "" {
		outbound = append(outbound, amadeus.Itinerary{
			Segments: []amadeus.Segment{
				{
					Departure:   amadeus.SegmentPoint{IataCode: q.Destination, At: q.ReturnDate + "T20:30:00"},
					Arrival:     amadeus.SegmentPoint{IataCode: q.Origin, At: q.ReturnDate + "T23:55:00"},
					CarrierCode: "QR",
					Number:      "116",
				},
			},
		})
		direct = append(direct, amadeus.Itinerary{
			Segments: []amadeus.Segment{
				{
					Departure:   amadeus.SegmentPoint{IataCode: q.Destination, At: q.ReturnDate + "T17:00:00"},
					Arrival:     amadeus.SegmentPoint{IataCode: q.Origin, At: q.ReturnDate + "T22:10:00"},
					CarrierCode: "TK",
					Number:      "710",
				},
			},
		})
	}

	offers := []amadeus.FlightOffer{
		{
			ID:          "mock-1",
			Price:       amadeus.OfferPrice{GrandTotal: "933.00", Currency: q.Currency},
			Itineraries: outbound,
		},
		{
			ID:          "mock-2",
			Price:       amadeus.OfferPrice{GrandTotal: "1104.50", Currency: q.Currency},
			Itineraries: direct,
		},
	}
	return offers, nil
}

func (s *Source) SearchHotels(ctx context.Context, q amadeus.HotelQuery) ([]amadeus.HotelOffer, []amadeus.HotelRecord, error) {
	lat, lng := 41.9028, 12.4964
	records := []amadeus.HotelRecord{
		{
			HotelID:   "MOCKHTL1",
			Name:      "grand plaza central",
			IataCode:  q.CityCode,
			Latitude:  &lat,
			Longitude: &lng,
			Address:   &amadeus.HotelAddress{CountryCode: "IT"},
		},
		{
			HotelID:  "MOCKHTL2",
			Name:     "station budget inn",
			IataCode: q.CityCode,
		},
	}

	available := true
	offers := []amadeus.HotelOffer{
		{
			Hotel:     amadeus.HotelInfo{HotelID: "MOCKHTL1", Name: "Grand Plaza Central", CityCode: q.CityCode},
			Available: &available,
			Offers: []amadeus.RoomOffer{
				{
					CheckInDate:  q.CheckIn,
					CheckOutDate: q.CheckOut,
					BoardType:    "BREAKFAST",
					Price:        amadeus.HotelPrice{Total: "120.00", Currency: q.Currency},
				},
				{
					CheckInDate:  q.CheckIn,
					CheckOutDate: q.CheckOut,
					BoardType:    "ROOM_ONLY",
					Price:        amadeus.HotelPrice{Total: "98.00", Currency: q.Currency},
				},
			},
		},
		{
			Hotel:     amadeus.HotelInfo{HotelID: "MOCKHTL2", CityCode: q.CityCode},
			Available: &available,
			Offers: []amadeus.RoomOffer{
				{
					CheckInDate:  q.CheckIn,
					CheckOutDate: q.CheckOut,
					Price:        amadeus.HotelPrice{Total: "54.00", Currency: q.Currency},
				},
			},
		},
	}
	return offers, records, nil
}

// ResolveNames serves airline names from a static table, with the provider's
// sentinel for anything unknown.
func (s *Source) ResolveNames(ctx context.Context, codes []string) (map[string]string, error) {
	names := make(map[string]string, len(codes))
	for _, code := range codes {
		if code == "" {
			continue
		}
		if name, ok := airlineNames[code]; ok {
			names[code] = name
		} else {
			names[code] = amadeus.UnknownAirline
		}
	}
	return names, nil
}

// TextGenerator is a canned stand-in for the LLM so the full planning
// pipeline runs offline. It keys on prompt markers the real stages use.
type TextGenerator struct{}

func NewTextGenerator() *TextGenerator { return &TextGenerator{} }

func (g *TextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "packing checklist"):
		return `["Passport", "Phone charger", "Universal adapter", "Comfortable shoes"]`, nil
	case strings.Contains(prompt, "itinerary"):
		return `["Day 1: Arrive, check in and walk the old town.", "Day 2: Museum morning, food market afternoon."]`, nil
	case strings.Contains(prompt, "travel request"):
		return `{"origin": null, "destination": "Rome", "start_date": "2026-09-12", "end_date": "2026-09-16", "budget": 2000, "preferences": ["food"]}`, nil
	default:
		return "", fmt.Errorf("no canned response for prompt")
	}
}

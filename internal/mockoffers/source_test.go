package mockoffers

import (
	"context"
	"testing"
	"travelbuddy/internal/trip"
	"travelbuddy/pkg/amadeus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ trip.OfferSource      = (*Source)(nil)
	_ trip.LocationResolver = (*Source)(nil)
	_ trip.AirlineNames     = (*Source)(nil)
)

func TestResolveLocation(t *testing.T) {
	s := New()
	ctx := context.Background()

	codes, err := s.ResolveLocation(ctx, "Rome")
	require.NoError(t, err)
	assert.Equal(t, "ROM", codes.CityCode)

	passthrough, err := s.ResolveLocation(ctx, "FCO")
	require.NoError(t, err)
	assert.Equal(t, "FCO", passthrough.AirportCode)

	_, err = s.ResolveLocation(ctx, "Atlantis")
	var resErr *amadeus.ResolutionError
	assert.ErrorAs(t, err, &resErr)
}

func TestSearchFlightOffers_RoundTripShape(t *testing.T) {
	s := New()

	offers, err := s.SearchFlightOffers(context.Background(), amadeus.FlightQuery{
		Origin:      "LHE",
		Destination: "ROM",
		DepartDate:  "2026-09-12",
		ReturnDate:  "2026-09-16",
		Currency:    "USD",
	})
	require.NoError(t, err)
	require.Len(t, offers, 2)

	assert.Equal(t, "933.00", offers[0].Price.GrandTotal)
	assert.Len(t, offers[0].Itineraries, 2)
	assert.Equal(t, "LHE", offers[0].Itineraries[0].Segments[0].Departure.IataCode)

	oneWay, err := s.SearchFlightOffers(context.Background(), amadeus.FlightQuery{
		Origin:      "LHE",
		Destination: "ROM",
		DepartDate:  "2026-09-12",
		Currency:    "USD",
	})
	require.NoError(t, err)
	assert.Len(t, oneWay[0].Itineraries, 1)
}

func TestSearchHotels_EchoesQuery(t *testing.T) {
	s := New()

	offers, records, err := s.SearchHotels(context.Background(), amadeus.HotelQuery{
		CityCode: "ROM",
		CheckIn:  "2026-09-12",
		CheckOut: "2026-09-16",
		Currency: "EUR",
	})
	require.NoError(t, err)
	require.Len(t, offers, 2)
	require.Len(t, records, 2)

	assert.Equal(t, "ROM", offers[0].Hotel.CityCode)
	assert.Equal(t, "EUR", offers[0].Offers[0].Price.Currency)
	assert.Equal(t, "2026-09-12", offers[0].Offers[0].CheckInDate)
}

func TestResolveNames_SentinelForUnknown(t *testing.T) {
	s := New()

	names, err := s.ResolveNames(context.Background(), []string{"QR", "ZZ", ""})
	require.NoError(t, err)
	assert.Equal(t, "Qatar Airways", names["QR"])
	assert.Equal(t, amadeus.UnknownAirline, names["ZZ"])
	_, hasEmpty := names[""]
	assert.False(t, hasEmpty)
}

func TestTextGenerator_CannedResponses(t *testing.T) {
	g := NewTextGenerator()
	ctx := context.Background()

	packing, err := g.GenerateText(ctx, "Generate a packing checklist as a STRICT JSON array")
	require.NoError(t, err)
	assert.Contains(t, packing, "Passport")

	itinerary, err := g.GenerateText(ctx, "Generate a detailed day-by-day travel itinerary")
	require.NoError(t, err)
	assert.Contains(t, itinerary, "Day 1")

	parse, err := g.GenerateText(ctx, "Extract the following fields from the user's travel request")
	require.NoError(t, err)
	assert.Contains(t, parse, "destination")

	_, err = g.GenerateText(ctx, "something else entirely")
	assert.Error(t, err)
}

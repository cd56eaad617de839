package trip

import (
	"testing"
	"travelbuddy/pkg/amadeus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hotelItem(id, name string, totals ...string) amadeus.HotelOffer {
	offers := make([]amadeus.RoomOffer, 0, len(totals))
	for _, total := range totals {
		offers = append(offers, amadeus.RoomOffer{
			CheckInDate:  "2026-09-12",
			CheckOutDate: "2026-09-16",
			Price:        amadeus.HotelPrice{Total: total, Currency: "USD"},
		})
	}
	return amadeus.HotelOffer{
		Hotel:  amadeus.HotelInfo{HotelID: id, Name: name, CityCode: "ROM"},
		Offers: offers,
	}
}

func TestSummarizeHotelOffers_PicksCheapestSubOffer(t *testing.T) {
	item := hotelItem("H1", "Grand Plaza", "100.00", "80.00", "95.00")

	summaries := SummarizeHotelOffers([]amadeus.HotelOffer{item}, nil)

	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].Cheapest)
	assert.Equal(t, "80.00", summaries[0].Cheapest.Total)
}

func TestSummarizeHotelOffers_TieKeepsFirstSubOffer(t *testing.T) {
	item := hotelItem("H1", "Grand Plaza", "90.00", "90.00")
	item.Offers[0].BoardType = "BREAKFAST"
	item.Offers[1].BoardType = "ROOM_ONLY"

	summaries := SummarizeHotelOffers([]amadeus.HotelOffer{item}, nil)

	require.NotNil(t, summaries[0].Cheapest)
	assert.Equal(t, "BREAKFAST", summaries[0].Cheapest.Board)
}

func TestSummarizeHotelOffers_UnparsableSubOffersSkipped(t *testing.T) {
	item := hotelItem("H1", "Grand Plaza", "n/a", "110.00")

	summaries := SummarizeHotelOffers([]amadeus.HotelOffer{item}, nil)

	require.NotNil(t, summaries[0].Cheapest)
	assert.Equal(t, "110.00", summaries[0].Cheapest.Total)
}

func TestSummarizeHotelOffers_NoPricedSubOffers(t *testing.T) {
	item := hotelItem("H1", "Grand Plaza")

	summaries := SummarizeHotelOffers([]amadeus.HotelOffer{item}, nil)

	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].Cheapest)
}

func TestSummarizeHotelOffers_SortsByCheapestPrice(t *testing.T) {
	items := []amadeus.HotelOffer{
		hotelItem("mid", "Mid", "120.00"),
		hotelItem("none", "None"),
		hotelItem("low", "Low", "54.00"),
	}

	summaries := SummarizeHotelOffers(items, nil)

	require.Len(t, summaries, 3)
	assert.Equal(t, "low", summaries[0].HotelID)
	assert.Equal(t, "mid", summaries[1].HotelID)
	assert.Equal(t, "none", summaries[2].HotelID)
}

func TestSummarizeHotelOffers_StaticEnrichment(t *testing.T) {
	lat, lng := 41.9028, 12.4964
	records := []amadeus.HotelRecord{
		{
			HotelID:   "H1",
			Name:      "grand plaza static",
			Latitude:  &lat,
			Longitude: &lng,
			Address: &amadeus.HotelAddress{
				Lines:       []string{"Via Roma 1"},
				CityName:    "Rome",
				CountryCode: "IT",
			},
		},
		{
			HotelID: "H2",
			Name:    "station inn static",
			GeoCode: &amadeus.GeoCode{Latitude: 41.0, Longitude: 12.0},
		},
	}

	items := []amadeus.HotelOffer{
		hotelItem("H1", "Grand Plaza Live", "100.00"),
		hotelItem("H2", "", "60.00"),
	}

	summaries := SummarizeHotelOffers(items, records)
	require.Len(t, summaries, 2)

	byID := map[string]HotelSummary{}
	for _, s := range summaries {
		byID[s.HotelID] = s
	}

	// The dynamic name wins over the static one.
	assert.Equal(t, "Grand Plaza Live", byID["H1"].Name)
	assert.Equal(t, "Via Roma 1, Rome, IT", byID["H1"].Address)
	require.NotNil(t, byID["H1"].Geo)
	assert.Equal(t, 41.9028, byID["H1"].Geo.Lat)

	// A missing dynamic name is filled from the static record, and geo
	// falls back to the nested geoCode block.
	assert.Equal(t, "station inn static", byID["H2"].Name)
	require.NotNil(t, byID["H2"].Geo)
	assert.Equal(t, 41.0, byID["H2"].Geo.Lat)
}

func TestIndexHotelsByID_SkipsEmptyIDs(t *testing.T) {
	index := IndexHotelsByID([]amadeus.HotelRecord{
		{HotelID: "A"},
		{HotelID: ""},
		{HotelID: "B"},
	})

	assert.Len(t, index, 2)
	_, ok := index["A"]
	assert.True(t, ok)
}

func TestNightsBetween(t *testing.T) {
	nights := nightsBetween("2026-09-12", "2026-09-16")
	require.NotNil(t, nights)
	assert.Equal(t, 4, *nights)

	floored := nightsBetween("2026-09-16", "2026-09-12")
	require.NotNil(t, floored)
	assert.Equal(t, 0, *floored)

	assert.Nil(t, nightsBetween("", "2026-09-16"))
	assert.Nil(t, nightsBetween("2026-09-12", "not-a-date"))
}

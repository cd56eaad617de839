package trip

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"travelbuddy/pkg/amadeus"
)

// IndexHotelsByID builds a hotel_id lookup over static hotel records,
// skipping records without an ID.
func IndexHotelsByID(hotelList []amadeus.HotelRecord) map[string]amadeus.HotelRecord {
	index := make(map[string]amadeus.HotelRecord, len(hotelList))
	for _, h := range hotelList {
		if h.HotelID == "" {
			continue
		}
		index[h.HotelID] = h
	}
	return index
}

// SummarizeHotelOffers reduces v3 offer items to summaries sorted ascending
// by cheapest total price (items without a parseable price sort last),
// enriched with name/address/geo from the static hotel list. Parsing
// failures degrade single fields to their zero value, never drop the hotel.
func SummarizeHotelOffers(items []amadeus.HotelOffer, hotelList []amadeus.HotelRecord) []HotelSummary {
	index := IndexHotelsByID(hotelList)

	sorted := make([]amadeus.HotelOffer, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cheapestPrice(sorted[i]) < cheapestPrice(sorted[j])
	})

	summaries := make([]HotelSummary, 0, len(sorted))
	for _, item := range sorted {
		summaries = append(summaries, summarizeHotelOffer(item, index))
	}
	return summaries
}

func summarizeHotelOffer(item amadeus.HotelOffer, index map[string]amadeus.HotelRecord) HotelSummary {
	summary := HotelSummary{
		HotelID:  item.Hotel.HotelID,
		Name:     item.Hotel.Name,
		CityCode: item.Hotel.CityCode,
	}

	// Static enrichment fills gaps only; a name the dynamic response
	// already provided wins.
	if static, ok := index[item.Hotel.HotelID]; ok {
		if summary.Name == "" {
			summary.Name = static.Name
		}
		summary.Address = addressFromRecord(static)
		summary.Geo = geoFromRecord(static)
	}

	if cheapest := cheapestRoomOffer(item); cheapest != nil {
		board := cheapest.BoardType
		if board == "" && cheapest.Room != nil {
			board = cheapest.Room.BoardType
		}
		summary.Cheapest = &CheapestOffer{
			Total:    cheapest.Price.Total,
			Currency: cheapest.Price.Currency,
			CheckIn:  cheapest.CheckInDate,
			CheckOut: cheapest.CheckOutDate,
			Nights:   nightsBetween(cheapest.CheckInDate, cheapest.CheckOutDate),
			Board:    board,
		}
	}
	return summary
}

// cheapestRoomOffer picks the sub-offer with the lowest parseable total.
// Ties keep the earliest sub-offer; unpriced sub-offers are ignored.
func cheapestRoomOffer(item amadeus.HotelOffer) *amadeus.RoomOffer {
	var best *amadeus.RoomOffer
	bestTotal := math.Inf(1)
	for i := range item.Offers {
		total, err := strconv.ParseFloat(item.Offers[i].Price.Total, 64)
		if err != nil {
			continue
		}
		if total < bestTotal {
			bestTotal = total
			best = &item.Offers[i]
		}
	}
	return best
}

func cheapestPrice(item amadeus.HotelOffer) float64 {
	if best := cheapestRoomOffer(item); best != nil {
		total, err := strconv.ParseFloat(best.Price.Total, 64)
		if err == nil {
			return total
		}
	}
	return math.Inf(1)
}

func addressFromRecord(h amadeus.HotelRecord) string {
	if h.Address == nil {
		return ""
	}
	var parts []string
	if len(h.Address.Lines) > 0 && h.Address.Lines[0] != "" {
		parts = append(parts, h.Address.Lines[0])
	}
	if h.Address.CityName != "" {
		parts = append(parts, h.Address.CityName)
	}
	if h.Address.CountryCode != "" {
		parts = append(parts, h.Address.CountryCode)
	}
	return strings.Join(parts, ", ")
}

func geoFromRecord(h amadeus.HotelRecord) *Geo {
	if h.Latitude != nil && h.Longitude != nil {
		return &Geo{Lat: *h.Latitude, Lng: *h.Longitude}
	}
	if h.GeoCode != nil {
		return &Geo{Lat: h.GeoCode.Latitude, Lng: h.GeoCode.Longitude}
	}
	return nil
}

// nightsBetween returns the day difference between two ISO dates, floored at
// zero, or nil when either date is missing or unparsable.
func nightsBetween(checkIn, checkOut string) *int {
	if checkIn == "" || checkOut == "" {
		return nil
	}
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return nil
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return nil
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 0 {
		nights = 0
	}
	return &nights
}

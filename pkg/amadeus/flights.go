package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// FlightQuery holds the flight-offer search parameters. Optional fields are
// omitted from the outgoing query when unset.
type FlightQuery struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Adults      int
	Currency    string
	MaxResults  int
	TravelClass string
	NonStop     *bool
	MaxPrice    *float64
}

// FlightOffer is a typed-but-partial view of a raw provider flight-offer
// document. Every field is optional; absent data stays at the zero value.
type FlightOffer struct {
	ID          string      `json:"id"`
	Price       OfferPrice  `json:"price"`
	Itineraries []Itinerary `json:"itineraries"`
}

type OfferPrice struct {
	GrandTotal string `json:"grandTotal"`
	Currency   string `json:"currency"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   SegmentPoint      `json:"departure"`
	Arrival     SegmentPoint      `json:"arrival"`
	CarrierCode string            `json:"carrierCode"`
	Number      string            `json:"number"`
	Operating   *OperatingCarrier `json:"operating,omitempty"`
}

type SegmentPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type OperatingCarrier struct {
	CarrierCode string `json:"carrierCode"`
}

type flightOffersEnvelope struct {
	Data []FlightOffer `json:"data"`
}

// SearchFlightOffers calls the flight-offer search endpoint and returns raw
// offers, unsorted. When MaxPrice is set, offers are filtered client-side by
// total price; an offer whose price cannot be parsed is kept rather than
// dropped, so missing data never hides an option.
func (c *Client) SearchFlightOffers(ctx context.Context, q FlightQuery) ([]FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currencyCode", q.Currency)
	params.Set("max", strconv.Itoa(q.MaxResults))
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	if q.NonStop != nil {
		params.Set("nonStop", strconv.FormatBool(*q.NonStop))
	}
	if q.TravelClass != "" {
		params.Set("travelClass", q.TravelClass)
	}

	body, err := c.Get(ctx, "/v2/shopping/flight-offers", params)
	if err != nil {
		return nil, err
	}

	var envelope flightOffersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("amadeus: failed to decode flight offers: %w", err)
	}

	offers := envelope.Data
	if q.MaxPrice != nil {
		offers = filterByMaxPrice(offers, *q.MaxPrice)
	}
	return offers, nil
}

func filterByMaxPrice(offers []FlightOffer, maxPrice float64) []FlightOffer {
	kept := make([]FlightOffer, 0, len(offers))
	for _, o := range offers {
		total, err := strconv.ParseFloat(o.Price.GrandTotal, 64)
		if err != nil || total <= maxPrice {
			kept = append(kept, o)
		}
	}
	return kept
}

package trip

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"travelbuddy/pkg/amadeus"
	"travelbuddy/pkg/logger"
)

// AirlineNames resolves carrier codes to display names.
type AirlineNames interface {
	ResolveNames(ctx context.Context, codes []string) (map[string]string, error)
}

// SummarizeFlightOffers reduces raw flight offers to summaries sorted
// ascending by numeric total price; offers whose price cannot be parsed sort
// last. Carrier names for all legs are resolved in a single batched call. A
// malformed individual offer degrades to nulled fields, never an error.
func SummarizeFlightOffers(ctx context.Context, offers []amadeus.FlightOffer, names AirlineNames, log logger.Client) []FlightSummary {
	sorted := make([]amadeus.FlightOffer, len(offers))
	copy(sorted, offers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return offerPrice(sorted[i]) < offerPrice(sorted[j])
	})

	var codes []string
	for _, o := range sorted {
		for i := range o.Itineraries {
			codes = append(codes, legCarrierCodes(o, i)...)
		}
	}

	nameMap, err := names.ResolveNames(ctx, codes)
	if err != nil {
		// Names are decoration; a lookup failure must not sink the
		// whole flight branch.
		log.Warn("airline name lookup failed", logger.Field{Key: "err", Value: err.Error()})
		nameMap = nil
	}

	summaries := make([]FlightSummary, 0, len(sorted))
	for _, o := range sorted {
		summaries = append(summaries, summarizeFlightOffer(o, nameMap))
	}
	return summaries
}

func summarizeFlightOffer(o amadeus.FlightOffer, names map[string]string) FlightSummary {
	outbound := flightLeg(o, 0, names)

	summary := FlightSummary{
		ID:         o.ID,
		PriceTotal: o.Price.GrandTotal,
		Currency:   o.Price.Currency,
		Outbound:   outbound,
	}

	if inbound := flightLeg(o, 1, names); inbound.FromAirport != "" {
		summary.Inbound = &inbound
	}
	return summary
}

// flightLeg extracts itinerary itinIndex as a first-to-last segment span.
func flightLeg(o amadeus.FlightOffer, itinIndex int, names map[string]string) Leg {
	if itinIndex >= len(o.Itineraries) {
		return Leg{}
	}
	segments := o.Itineraries[itinIndex].Segments
	if len(segments) == 0 {
		return Leg{}
	}

	first := segments[0]
	last := segments[len(segments)-1]

	codes := legCarrierCodes(o, itinIndex)
	return Leg{
		FromAirport:  first.Departure.IataCode,
		ToAirport:    last.Arrival.IataCode,
		DepartTime:   first.Departure.At,
		ArriveTime:   last.Arrival.At,
		Stops:        len(segments) - 1,
		Carriers:     codes,
		CarrierNames: formatCarrierNames(codes, names),
	}
}

// legCarrierCodes collects unique carrier codes for one leg in first-seen
// order, preferring each segment's operating carrier over the marketing one.
func legCarrierCodes(o amadeus.FlightOffer, itinIndex int) []string {
	if itinIndex >= len(o.Itineraries) {
		return nil
	}

	var codes []string
	seen := make(map[string]struct{})
	for _, s := range o.Itineraries[itinIndex].Segments {
		code := s.CarrierCode
		if s.Operating != nil && s.Operating.CarrierCode != "" {
			code = s.Operating.CarrierCode
		}
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

func formatCarrierNames(codes []string, names map[string]string) []string {
	if len(codes) == 0 {
		return nil
	}
	formatted := make([]string, 0, len(codes))
	for _, code := range codes {
		name, ok := names[code]
		if !ok || name == "" {
			name = amadeus.UnknownAirline
		}
		formatted = append(formatted, fmt.Sprintf("%s — %s", code, name))
	}
	return formatted
}

func offerPrice(o amadeus.FlightOffer) float64 {
	total, err := strconv.ParseFloat(o.Price.GrandTotal, 64)
	if err != nil {
		return math.Inf(1)
	}
	return total
}

package trip

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"travelbuddy/pkg/amadeus"
	"travelbuddy/pkg/cache"
	"travelbuddy/pkg/idgen"
	"travelbuddy/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	searchAdults      = 1
	flightMaxResults  = 20
	flightTravelClass = "ECONOMY"

	// The test-tier inventory is sparse, so ask for a generous slice of
	// the city's hotels before offers thin it out.
	hotelMaxIDs = 40
)

// LocationResolver resolves a free-text place name or IATA code into a
// city-code/airport-code pair.
type LocationResolver interface {
	ResolveLocation(ctx context.Context, keyword string) (amadeus.LocationCode, error)
}

// OfferSource is the strategy interface for offer retrieval. The real
// provider-backed implementation and the mock implementation are selected by
// configuration at startup.
type OfferSource interface {
	SearchFlightOffers(ctx context.Context, q amadeus.FlightQuery) ([]amadeus.FlightOffer, error)
	SearchHotels(ctx context.Context, q amadeus.HotelQuery) ([]amadeus.HotelOffer, []amadeus.HotelRecord, error)
}

// Service runs the offer-search core: location resolution, concurrent
// flight/hotel retrieval, normalization and the budget cutoff, with a
// cache-aside layer over the whole result.
type Service struct {
	source    OfferSource
	locations LocationResolver
	airlines  AirlineNames
	cache     cache.Cache
	ids       idgen.Generator
	ttl       time.Duration
	homeIATA  string
	logger    logger.Client
	tracer    trace.Tracer
}

func NewService(source OfferSource, locations LocationResolver, airlines AirlineNames,
	cache cache.Cache, ids idgen.Generator, ttlMinutes int, homeIATA string, logger logger.Client) *Service {
	return &Service{
		source:    source,
		locations: locations,
		airlines:  airlines,
		cache:     cache,
		ids:       ids,
		ttl:       time.Duration(ttlMinutes) * time.Minute,
		homeIATA:  homeIATA,
		logger:    logger,
		tracer:    otel.Tracer("travelbuddy/trip"),
	}
}

// generateCacheKey creates a deterministic key from search parameters
func (s *Service) generateCacheKey(req TripRequest) string {
	budget := ""
	if req.Budget != nil {
		budget = fmt.Sprintf("%.2f", *req.Budget)
	}
	key := fmt.Sprintf("trip:%s:%s:%s:%s:%s:%s",
		req.Origin,
		req.Destination,
		req.StartDate,
		req.EndDate,
		req.Currency,
		budget,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("trip:search:%x", hash[:16])
}

// SearchOffers resolves the trip's locations, fetches and normalizes flight
// and hotel offers concurrently, applies the hotel budget cutoff and returns
// two best-effort lists. A failed flight branch never blocks the hotel
// branch and vice versa; branch failures surface as diagnostics.
func (s *Service) SearchOffers(ctx context.Context, req TripRequest) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	cacheKey := s.generateCacheKey(req)
	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var result SearchResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			result.CacheHit = true
			return &result, nil
		}
		s.logger.Error("failed to unmarshal cached search result", logger.Field{Key: "cache_key", Value: cacheKey})
	}

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		origin = s.homeIATA
	}

	originCodes, err := s.locations.ResolveLocation(ctx, origin)
	if err != nil {
		return nil, mapResolutionErr(err)
	}
	destCodes, err := s.locations.ResolveLocation(ctx, req.Destination)
	if err != nil {
		return nil, mapResolutionErr(err)
	}

	result := &SearchResult{
		RunID:   s.ids.NextID(),
		Flights: []FlightSummary{},
		Hotels:  []HotelSummary{},
	}

	var (
		wg                  sync.WaitGroup
		flights             []FlightSummary
		hotels              []HotelSummary
		flightErr, hotelErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		branchCtx, span := s.tracer.Start(ctx, "trip.search_flights")
		defer span.End()

		offers, err := s.source.SearchFlightOffers(branchCtx, amadeus.FlightQuery{
			Origin:      pickCode(originCodes),
			Destination: pickCode(destCodes),
			DepartDate:  req.StartDate,
			ReturnDate:  req.EndDate,
			Adults:      searchAdults,
			Currency:    currency,
			MaxResults:  flightMaxResults,
			TravelClass: flightTravelClass,
		})
		if err != nil {
			flightErr = err
			return
		}
		flights = SummarizeFlightOffers(branchCtx, offers, s.airlines, s.logger)
	}()
	go func() {
		defer wg.Done()
		branchCtx, span := s.tracer.Start(ctx, "trip.search_hotels")
		defer span.End()

		offers, hotelList, err := s.source.SearchHotels(branchCtx, amadeus.HotelQuery{
			CityCode:  pickCode(destCodes),
			CheckIn:   req.StartDate,
			CheckOut:  req.EndDate,
			Adults:    searchAdults,
			Currency:  currency,
			MaxHotels: hotelMaxIDs,
		})
		if err != nil {
			hotelErr = err
			return
		}
		hotels = SummarizeHotelOffers(offers, hotelList)
	}()
	wg.Wait()

	if flightErr != nil {
		s.logger.Error("flight search failed", logger.Field{Key: "err", Value: flightErr.Error()})
		result.Diagnostics = append(result.Diagnostics, "flight search failed: "+flightErr.Error())
	} else {
		result.Flights = flights
	}
	if hotelErr != nil {
		s.logger.Error("hotel search failed", logger.Field{Key: "err", Value: hotelErr.Error()})
		result.Diagnostics = append(result.Diagnostics, "hotel search failed: "+hotelErr.Error())
	} else {
		result.Hotels = FilterHotelsByBudget(hotels, req.Budget)
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to marshal search result", logger.Field{Key: "err", Value: err.Error()})
		return result, nil
	}
	if err := s.cache.Set(ctx, cacheKey, string(resultBytes), s.ttl); err != nil {
		s.logger.Error("failed to cache search result",
			logger.Field{Key: "err", Value: err.Error()},
			logger.Field{Key: "cache_key", Value: cacheKey},
		)
	}

	return result, nil
}

// pickCode prefers the metro-wide city code, falling back to the airport.
func pickCode(codes amadeus.LocationCode) string {
	if codes.CityCode != "" {
		return codes.CityCode
	}
	return codes.AirportCode
}

func mapResolutionErr(err error) error {
	var resolutionErr *amadeus.ResolutionError
	if errors.As(err, &resolutionErr) {
		return newResolutionError(err)
	}
	var authErr *amadeus.AuthError
	if errors.As(err, &authErr) {
		return newAuthError(err)
	}
	return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeUpstream, Message: "location lookup failed", Err: err}
}

package trip

import (
	"context"
	"fmt"
)

// SearchStage plugs the offer-search core into the planning pipeline.
type SearchStage struct {
	service *Service
}

func NewSearchStage(service *Service) *SearchStage {
	return &SearchStage{service: service}
}

func (s *SearchStage) Name() string { return "search_offers" }

func (s *SearchStage) Run(ctx context.Context, st *State) error {
	if st.TripRequest == nil {
		return fmt.Errorf("no trip request available")
	}

	result, err := s.service.SearchOffers(ctx, *st.TripRequest)
	if err != nil {
		return err
	}

	st.RunID = result.RunID
	st.Flights = result.Flights
	st.Hotels = result.Hotels
	st.Errors = append(st.Errors, result.Diagnostics...)
	return nil
}

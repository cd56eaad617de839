package trip

import "strconv"

// hotelBudgetShare is the slice of the total trip budget allowed for the
// hotel stay.
const hotelBudgetShare = 0.15

// FilterHotelsByBudget keeps only hotels whose cheapest total is present,
// parseable and within 15% of the total budget. A nil or non-positive budget
// disables filtering entirely. This is a hard cutoff, not a ranking signal.
func FilterHotelsByBudget(hotels []HotelSummary, budget *float64) []HotelSummary {
	if budget == nil || *budget <= 0 {
		return hotels
	}
	allowance := *budget * hotelBudgetShare

	kept := make([]HotelSummary, 0, len(hotels))
	for _, h := range hotels {
		if h.Cheapest == nil {
			continue
		}
		total, err := strconv.ParseFloat(h.Cheapest.Total, 64)
		if err != nil {
			continue
		}
		if total <= allowance {
			kept = append(kept, h)
		}
	}
	return kept
}

package trip

// TripRequest is the validated input of a planning run. It flows read-only
// through all search and normalization steps.
type TripRequest struct {
	Origin      string   `json:"origin,omitempty"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      *float64 `json:"budget,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
	Currency    string   `json:"currency,omitempty"`
}

// Leg is one direction of a flight: the span from the first segment's
// departure to the last segment's arrival.
type Leg struct {
	FromAirport  string   `json:"from_airport,omitempty"`
	ToAirport    string   `json:"to_airport,omitempty"`
	DepartTime   string   `json:"depart_time,omitempty"`
	ArriveTime   string   `json:"arrive_time,omitempty"`
	Stops        int      `json:"stops"`
	Carriers     []string `json:"carriers,omitempty"`
	CarrierNames []string `json:"carrier_names,omitempty"`
}

// FlightSummary is the UI-ready reduction of one raw flight offer.
// PriceTotal stays a decimal string exactly as the provider reported it.
type FlightSummary struct {
	ID         string `json:"id,omitempty"`
	PriceTotal string `json:"price_total,omitempty"`
	Currency   string `json:"currency,omitempty"`
	Outbound   Leg    `json:"outbound"`
	Inbound    *Leg   `json:"inbound,omitempty"`
}

type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CheapestOffer is the lowest-priced room offer found inside one hotel item.
type CheapestOffer struct {
	Total    string `json:"total,omitempty"`
	Currency string `json:"currency,omitempty"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Nights   *int   `json:"nights,omitempty"`
	Board    string `json:"board,omitempty"`
}

// HotelSummary is the UI-ready reduction of one hotel offer item, enriched
// with static hotel metadata where the dynamic response lacked it.
type HotelSummary struct {
	HotelID  string         `json:"hotel_id,omitempty"`
	Name     string         `json:"name,omitempty"`
	CityCode string         `json:"city_code,omitempty"`
	Address  string         `json:"address,omitempty"`
	Geo      *Geo           `json:"geo,omitempty"`
	Cheapest *CheapestOffer `json:"cheapest,omitempty"`
}

// SearchResult is the best-effort output of one offer search: two parallel
// summary lists plus diagnostics for any branch that failed.
type SearchResult struct {
	RunID       string          `json:"run_id,omitempty"`
	Flights     []FlightSummary `json:"flight_options"`
	Hotels      []HotelSummary  `json:"hotel_options"`
	Diagnostics []string        `json:"diagnostics,omitempty"`
	CacheHit    bool            `json:"cache_hit"`
}

// Reminder is a single time-stamped nudge built from the trip dates.
type Reminder struct {
	When    string `json:"when"`
	Message string `json:"message"`
}

package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"travelbuddy/pkg/textgen"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Validate enforces the invariants every downstream search relies on:
// destination and both dates are mandatory, dates are ISO calendar dates and
// the budget, when present, is non-negative.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return newValidationError("destination is required")
	}
	if r.StartDate == "" || r.EndDate == "" {
		return newValidationError("start_date and end_date are required")
	}
	if _, err := time.Parse("2006-01-02", r.StartDate); err != nil {
		return newValidationError("start_date must be a YYYY-MM-DD date")
	}
	if _, err := time.Parse("2006-01-02", r.EndDate); err != nil {
		return newValidationError("end_date must be a YYYY-MM-DD date")
	}
	if r.Budget != nil && *r.Budget < 0 {
		return newValidationError("budget must be non-negative")
	}
	return nil
}

// stringList accepts either a JSON string or an array of strings, since the
// extraction model emits both shapes for preferences.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
		} else {
			*l = stringList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = stringList(many)
	return nil
}

type tripRequestWire struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Budget      *float64   `json:"budget"`
	Preferences stringList `json:"preferences"`
	Currency    string     `json:"currency"`
}

// ParseFreeText extracts a structured TripRequest from a free-text travel
// request using the text generator, then validates it.
func ParseFreeText(ctx context.Context, gen textgen.Generator, text string) (*TripRequest, error) {
	prompt := "Extract the following fields from the user's travel request and output them as strict JSON " +
		"(no explanations, no markdown, no comments): origin, destination, start_date, end_date, budget, preferences. " +
		"Dates must be YYYY-MM-DD. If a field is not mentioned, set it to null. " +
		fmt.Sprintf("User input: %q", text) +
		"\nJSON:"

	out, err := gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("free-text parse failed: %w", err)
	}

	match := jsonObjectPattern.FindString(out)
	if match == "" {
		return nil, fmt.Errorf("no JSON object found in model output")
	}

	var wire tripRequestWire
	if err := json.Unmarshal([]byte(match), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode extracted trip request: %w", err)
	}

	req := &TripRequest{
		Origin:      strings.TrimSpace(wire.Origin),
		Destination: strings.TrimSpace(wire.Destination),
		StartDate:   wire.StartDate,
		EndDate:     wire.EndDate,
		Budget:      wire.Budget,
		Preferences: wire.Preferences,
		Currency:    strings.ToUpper(strings.TrimSpace(wire.Currency)),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// ParseStage fills State.TripRequest: structured input passes straight
// through validation; free text goes through the extraction model.
type ParseStage struct {
	gen textgen.Generator
}

func NewParseStage(gen textgen.Generator) *ParseStage {
	return &ParseStage{gen: gen}
}

func (s *ParseStage) Name() string { return "parse_request" }

func (s *ParseStage) Run(ctx context.Context, st *State) error {
	if st.TripRequest != nil {
		if st.TripRequest.Currency == "" {
			st.TripRequest.Currency = st.Currency
		}
		if err := st.TripRequest.Validate(); err != nil {
			st.TripRequest = nil
			return err
		}
		return nil
	}

	req, err := ParseFreeText(ctx, s.gen, st.UserInput)
	if err != nil {
		return err
	}
	if req.Currency == "" {
		req.Currency = st.Currency
	}
	st.TripRequest = req
	return nil
}

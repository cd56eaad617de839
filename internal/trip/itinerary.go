package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"travelbuddy/pkg/textgen"
)

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ItineraryStage asks the text generator for a day-by-day plan and stores it
// as one string per day.
type ItineraryStage struct {
	gen textgen.Generator
}

func NewItineraryStage(gen textgen.Generator) *ItineraryStage {
	return &ItineraryStage{gen: gen}
}

func (s *ItineraryStage) Name() string { return "itinerary" }

func (s *ItineraryStage) Run(ctx context.Context, st *State) error {
	if st.TripRequest == nil {
		return fmt.Errorf("no trip request available")
	}
	tr := st.TripRequest

	prompt := fmt.Sprintf(
		"Generate a detailed day-by-day travel itinerary for a trip to %s from %s to %s. The traveler prefers: %s. "+
			"Respond ONLY with a strict JSON array, where each element is a string describing the plan for one day. "+
			"Do not include explanations, markdown, or any extra text. "+
			`Example: ["Day 1: ...", "Day 2: ..."]`,
		tr.Destination, tr.StartDate, tr.EndDate, preferencesLine(tr.Preferences),
	)

	out, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return fmt.Errorf("itinerary generation failed: %w", err)
	}

	days, err := extractStringArray(out)
	if err != nil {
		return fmt.Errorf("itinerary parse failed: %w", err)
	}
	st.Itinerary = days
	return nil
}

func preferencesLine(prefs []string) string {
	if len(prefs) == 0 {
		return "general sightseeing"
	}
	return strings.Join(prefs, ", ")
}

// extractStringArray pulls the first JSON array out of model output and
// returns its elements trimmed, with empties dropped.
func extractStringArray(out string) ([]string, error) {
	match := jsonArrayPattern.FindString(out)
	if match == "" {
		return nil, fmt.Errorf("no JSON array found in model output")
	}

	var items []string
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned, nil
}

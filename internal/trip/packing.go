package trip

import (
	"context"
	"fmt"
	"travelbuddy/pkg/textgen"
)

// PackingStage asks the text generator for a packing checklist tailored to
// the destination, dates and traveler preferences.
type PackingStage struct {
	gen textgen.Generator
}

func NewPackingStage(gen textgen.Generator) *PackingStage {
	return &PackingStage{gen: gen}
}

func (s *PackingStage) Name() string { return "packing_list" }

func (s *PackingStage) Run(ctx context.Context, st *State) error {
	if st.TripRequest == nil {
		return fmt.Errorf("no trip request available")
	}
	tr := st.TripRequest

	prompt := fmt.Sprintf(
		"Generate a packing checklist as a STRICT JSON array of strings for the following trip. "+
			"Do NOT include any explanations, markdown, or extra text; ONLY output a JSON array. "+
			"Trip details:\n- Destination: %s\n- Dates: %s to %s\n- Traveler preferences: %s\n\n"+
			"Checklist should cover essentials (documents, chargers, adapters), weather-agnostic clothing basics, "+
			`and a few items related to the preferences. Example format: ["Passport", "Phone charger", "..."]`,
		tr.Destination, tr.StartDate, tr.EndDate, preferencesLine(tr.Preferences),
	)

	out, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return fmt.Errorf("packing list generation failed: %w", err)
	}

	items, err := extractStringArray(out)
	if err != nil {
		return fmt.Errorf("packing list parse failed: %w", err)
	}
	st.PackingList = items
	return nil
}

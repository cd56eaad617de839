package trip

import (
	"context"
	"travelbuddy/pkg/logger"
)

// State is the shared mutable trip state each pipeline stage reads and
// extends. The core search only ever reads TripRequest; later stages append
// their own artifacts.
type State struct {
	UserInput   string          `json:"user_input,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	RunID       string          `json:"run_id,omitempty"`
	TripRequest *TripRequest    `json:"trip_request,omitempty"`
	Flights     []FlightSummary `json:"flight_options"`
	Hotels      []HotelSummary  `json:"hotel_options"`
	Itinerary   []string        `json:"itinerary,omitempty"`
	PackingList []string        `json:"packing_list,omitempty"`
	Reminders   []Reminder      `json:"reminders,omitempty"`
	Errors      []string        `json:"errors,omitempty"`
}

// Stage is one step of the planning pipeline.
type Stage interface {
	Name() string
	Run(ctx context.Context, st *State) error
}

// Pipeline runs a fixed linear sequence of stages over a shared State. Every
// stage is best-effort: a failing stage records a diagnostic and the run
// moves on, so one broken branch never sinks the whole plan.
type Pipeline struct {
	stages []Stage
	logger logger.Client
}

func NewPipeline(logger logger.Client, stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages, logger: logger}
}

func (p *Pipeline) Run(ctx context.Context, st *State) *State {
	for _, stage := range p.stages {
		if err := stage.Run(ctx, st); err != nil {
			p.logger.Warn("pipeline stage failed",
				logger.Field{Key: "stage", Value: stage.Name()},
				logger.Field{Key: "err", Value: err.Error()},
			)
			st.Errors = append(st.Errors, stage.Name()+": "+err.Error())
		}
	}
	return st
}

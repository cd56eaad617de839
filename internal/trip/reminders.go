package trip

import (
	"context"
	"fmt"
	"time"
)

const reminderTimeLayout = "2006-01-02T15:04:05"

// pre-departure offsets relative to the trip start at 09:00 local time
var departureReminders = []struct {
	before  time.Duration
	message string
}{
	{7 * 24 * time.Hour, "Review passport/visa & travel insurance."},
	{3 * 24 * time.Hour, "Start packing essentials (IDs, adapters, chargers)."},
	{24 * time.Hour, "Online check-in opens, pick seats and download boarding pass."},
	{6 * time.Hour, "Confirm airport ride / ride-hailing availability."},
	{3 * time.Hour, "Leave for airport (international flight buffer)."},
}

// BuildReminders produces time-stamped reminders for the trip: a fixed set of
// pre-departure checkpoints plus one plan reminder per trip day at 09:00, and
// a 19:00 dinner suggestion on each day when preferences are set. Out-of-order
// dates are swapped rather than rejected.
func BuildReminders(req TripRequest, itinerary []string) ([]Reminder, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", req.StartDate, err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", req.EndDate, err)
	}
	if end.Before(start) {
		start, end = end, start
	}

	// Anchor general reminders at 09:00.
	startAt := start.Add(9 * time.Hour)

	reminders := make([]Reminder, 0, len(departureReminders))
	for _, r := range departureReminders {
		reminders = append(reminders, Reminder{
			When:    startAt.Add(-r.before).Format(reminderTimeLayout),
			Message: r.message,
		})
	}

	numDays := int(end.Sub(start).Hours()/24) + 1
	for i := 0; i < numDays; i++ {
		day := start.AddDate(0, 0, i)

		msg := "Free day / explore locally."
		if i < len(itinerary) {
			msg = "Today's plan: " + itinerary[i]
		}
		reminders = append(reminders, Reminder{
			When:    day.Add(9 * time.Hour).Format(reminderTimeLayout),
			Message: msg,
		})

		if len(req.Preferences) > 0 {
			reminders = append(reminders, Reminder{
				When:    day.Add(19 * time.Hour).Format(reminderTimeLayout),
				Message: fmt.Sprintf("Dinner idea near you (preferences: %s).", preferencesLine(req.Preferences)),
			})
		}
	}
	return reminders, nil
}

// ReminderStage maps the parsed trip and itinerary onto the reminder schedule.
type ReminderStage struct{}

func NewReminderStage() *ReminderStage { return &ReminderStage{} }

func (s *ReminderStage) Name() string { return "reminders" }

func (s *ReminderStage) Run(ctx context.Context, st *State) error {
	if st.TripRequest == nil {
		return fmt.Errorf("no trip request available")
	}
	reminders, err := BuildReminders(*st.TripRequest, st.Itinerary)
	if err != nil {
		return err
	}
	st.Reminders = reminders
	return nil
}

package generator

import (
	"strconv"
	"time"

	"paysynth/models"
)

// EventParams configures the app-event batch and its anomaly rates.
type EventParams struct {
	Count             int
	UserCount         int
	OrphanUserRate    float64
	NullEventTypeRate float64
	OutOfWindowRate   float64
}

// outOfWindowBand is how far injected timestamps land outside the window.
const outOfWindowBand = 5 * 24 * time.Hour

// GenerateEvents builds the telemetry batch: rows are independent and
// identically distributed, with no dependency on prior entities beyond the
// user-id range. Three anomaly passes follow: orphan user ids, missing event
// types, out-of-window timestamps.
func (g *Generator) GenerateEvents(p EventParams) ([]models.AppEvent, *MutationLog) {
	events := make([]models.AppEvent, 0, p.Count)

	for n := 0; n < p.Count; n++ {
		eventType := eventTypes[g.rng.Intn(len(eventTypes))]

		buttonID := ""
		if eventType == models.EventTypeButtonClick {
			buttonID = buttons[g.rng.Intn(len(buttons))]
		}

		events = append(events, models.AppEvent{
			EventID:   g.faker.UUID(),
			UserID:    strconv.Itoa(1 + g.rng.Intn(p.UserCount)),
			EventType: eventType,
			EventTS:   models.FormatTime(timeBetween(g.rng, g.window.Start, g.window.End)),
			SessionID: g.faker.UUID(),
			Page:      pages[g.rng.Intn(len(pages))],
			ButtonID:  buttonID,
			Device:    devices[g.rng.Intn(len(devices))],
			OS:        osNames[g.rng.Intn(len(osNames))],
			IP:        g.faker.IPv4Address(),
		})
	}

	log := newMutationLog(p.Count)

	// Orphan ids sit strictly above the valid population, so they can never
	// collide with a real user.
	count := models.TargetCount(p.OrphanUserRate, p.Count)
	for _, i := range sampleIndexes(g.rng, p.Count, count) {
		orphan := strconv.Itoa(p.UserCount + 1 + g.rng.Intn(50))
		events[i] = withOrphanUser(events[i], orphan)
		log.mark(i, models.AnomalyEventsOrphanUser)
	}

	count = models.TargetCount(p.NullEventTypeRate, p.Count)
	for _, i := range sampleIndexes(g.rng, p.Count, count) {
		events[i] = withMissingEventType(events[i])
		log.mark(i, models.AnomalyEventsMissingType)
	}

	count = models.TargetCount(p.OutOfWindowRate, p.Count)
	for _, i := range sampleIndexes(g.rng, p.Count, count) {
		var ts time.Time
		if g.rng.Float64() < 0.5 {
			ts = timeBetween(g.rng, g.window.Start.Add(-outOfWindowBand), g.window.Start)
		} else {
			ts = timeBetween(g.rng, g.window.End, g.window.End.Add(outOfWindowBand))
		}
		events[i] = withEventTimestamp(events[i], ts)
		log.mark(i, models.AnomalyEventsOutOfWindow)
	}

	return events, log
}

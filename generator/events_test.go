package generator

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paysynth/models"
)

func eventFixture(t *testing.T, seed int64, nUsers, nEvents int) ([]models.AppEvent, *MutationLog) {
	t.Helper()
	g := New(seed, testWindow(t))
	return g.GenerateEvents(EventParams{
		Count:             nEvents,
		UserCount:         nUsers,
		OrphanUserRate:    0.01,
		NullEventTypeRate: 0.005,
		OutOfWindowRate:   0.01,
	})
}

func TestGenerateEvents_RowCountAndShape(t *testing.T) {
	events, _ := eventFixture(t, 42, 100, 2000)
	require.Len(t, events, 2000)

	for _, e := range events {
		assert.NotEmpty(t, e.EventID)
		assert.NotEmpty(t, e.SessionID)
		assert.NotEmpty(t, e.IP)
		assert.Contains(t, devices, e.Device)
		assert.Contains(t, osNames, e.OS)
		assert.Contains(t, pages, e.Page)
	}
}

func TestGenerateEvents_ButtonIDOnlyForClicks(t *testing.T) {
	events, log := eventFixture(t, 42, 100, 2000)

	// The missing-type pass blanks only the type, so a former button click
	// keeps its button id. Judge those rows by their tag, not their type.
	for i, e := range events {
		if log.tags[i][models.AnomalyEventsMissingType] {
			assert.Empty(t, string(e.EventType))
			if e.ButtonID != "" {
				assert.Contains(t, buttons, e.ButtonID)
			}
			continue
		}
		if e.EventType == models.EventTypeButtonClick {
			assert.Contains(t, buttons, e.ButtonID)
		} else {
			assert.Empty(t, e.ButtonID, "row %d", i)
		}
	}
}

func TestGenerateEvents_OrphansAboveValidRange(t *testing.T) {
	events, log := eventFixture(t, 42, 100, 2000)

	orphans := 0
	for i, e := range events {
		uid, err := strconv.Atoi(e.UserID)
		require.NoError(t, err)
		if log.tags[i][models.AnomalyEventsOrphanUser] {
			orphans++
			assert.Greater(t, uid, 100)
			assert.LessOrEqual(t, uid, 150)
		} else {
			assert.GreaterOrEqual(t, uid, 1)
			assert.LessOrEqual(t, uid, 100)
		}
	}
	assert.GreaterOrEqual(t, orphans, models.TargetCount(0.01, 2000))
}

func TestGenerateEvents_TimestampsAccounted(t *testing.T) {
	w, err := ResolveMonth("2026-01")
	require.NoError(t, err)
	events, log := eventFixture(t, 42, 100, 2000)

	// Every timestamp is either in the window or flagged out-of-window by the
	// injection pass; nothing falls through both.
	outside := 0
	for i, e := range events {
		ts, err := time.ParseInLocation(models.TimeLayout, e.EventTS, time.UTC)
		require.NoError(t, err)
		if w.Contains(ts) {
			assert.False(t, log.tags[i][models.AnomalyEventsOutOfWindow], "row %d flagged but inside window", i)
			continue
		}
		outside++
		assert.True(t, log.tags[i][models.AnomalyEventsOutOfWindow], "row %d outside window but not injected", i)
		assert.False(t, ts.Before(w.Start.Add(-5*24*time.Hour)))
		assert.True(t, ts.Before(w.End.Add(5*24*time.Hour)))
	}
	assert.GreaterOrEqual(t, outside, models.TargetCount(0.01, 2000))
}

func TestGenerateEvents_MissingTypeFloor(t *testing.T) {
	g := New(5, testWindow(t))
	events, log := g.GenerateEvents(EventParams{Count: 40, UserCount: 10, OrphanUserRate: 0, NullEventTypeRate: 0, OutOfWindowRate: 0})

	blank := 0
	for _, e := range events {
		if e.EventType == "" {
			blank++
		}
	}
	assert.Equal(t, 1, blank, "zero rate still injects the floor of one")
	assert.Equal(t, 1, log.Touched(models.AnomalyEventsMissingType))
}

func TestGenerateEvents_Deterministic(t *testing.T) {
	eventsA, _ := eventFixture(t, 11, 50, 500)
	eventsB, _ := eventFixture(t, 11, 50, 500)
	assert.Equal(t, eventsA, eventsB)
}

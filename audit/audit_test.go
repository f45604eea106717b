package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paysynth/generator"
	"paysynth/models"
)

func window(t *testing.T) generator.Window {
	t.Helper()
	w, err := generator.ResolveMonth("2026-01")
	require.NoError(t, err)
	return w
}

func metaFor(signups map[int]string) map[int]models.UserMeta {
	meta := make(map[int]models.UserMeta, len(signups))
	for id, s := range signups {
		m := models.UserMeta{Country: "FR"}
		if s != "" {
			ts, err := time.ParseInLocation(models.TimeLayout, s, time.UTC)
			if err != nil {
				panic(err)
			}
			m.SignupAt = &ts
		}
		meta[id] = m
	}
	return meta
}

func TestScan_MissingUserFields(t *testing.T) {
	users := []models.User{
		{UserID: 1, Email: "a@example.com", SignupAt: "2026-01-02 10:00:00"},
		{UserID: 2, Email: "", SignupAt: "2026-01-03 10:00:00"},
		{UserID: 3, Email: "c@example.com", SignupAt: ""},
		{UserID: 4, Email: "  ", SignupAt: "2026-01-04 10:00:00"},
	}

	res := Scan(users, nil, nil, metaFor(nil), window(t), 4)

	assert.Equal(t, 2, res.Observed[models.AnomalyUsersMissingEmail], "whitespace-only counts as missing")
	assert.Equal(t, 1, res.Observed[models.AnomalyUsersMissingSignup])
}

func TestScan_DuplicateGroups(t *testing.T) {
	txns := []models.Transaction{
		{TransactionID: "a", SenderUserID: 1, ReceiverUserID: 2, Amount: "10.00", CreatedAt: "2026-01-10 12:00:00"},
		{TransactionID: "a", SenderUserID: 1, ReceiverUserID: 2, Amount: "11.00", CreatedAt: "2026-01-11 12:00:00"},
		{TransactionID: "b", SenderUserID: 2, ReceiverUserID: 1, Amount: "12.00", CreatedAt: "2026-01-12 12:00:00"},
		{TransactionID: "c", SenderUserID: 1, ReceiverUserID: 2, Amount: "13.00", CreatedAt: "2026-01-13 12:00:00"},
		{TransactionID: "c", SenderUserID: 2, ReceiverUserID: 1, Amount: "14.00", CreatedAt: "2026-01-14 12:00:00"},
		{TransactionID: "c", SenderUserID: 1, ReceiverUserID: 2, Amount: "", CreatedAt: "2026-01-15 12:00:00"},
	}
	meta := metaFor(map[int]string{1: "2026-01-01 00:00:00", 2: "2026-01-01 00:00:00"})

	res := Scan(nil, txns, nil, meta, window(t), 2)

	assert.Equal(t, 2, res.Duplicates.DistinctIDs)
	assert.Equal(t, 5, res.Duplicates.RowsTotal)
	assert.Equal(t, 3, res.Duplicates.ExtraRows)
	assert.Equal(t, 1, res.Observed[models.AnomalyTxnMissingAmount])

	// Rows total must equal the recomputed sum of group sizes over count>1 ids.
	counts := map[string]int{}
	for _, tx := range txns {
		counts[tx.TransactionID]++
	}
	sum := 0
	for _, n := range counts {
		if n > 1 {
			sum += n
		}
	}
	assert.Equal(t, sum, res.Duplicates.RowsTotal)
}

func TestScan_LifecycleStricterThanInjector(t *testing.T) {
	meta := metaFor(map[int]string{
		1: "2026-01-05 00:00:00",
		2: "2026-01-10 00:00:00",
		3: "", // unknown signup
	})
	txns := []models.Transaction{
		// Clean: after both signups.
		{TransactionID: "t1", SenderUserID: 1, ReceiverUserID: 2, Amount: "1.00", CreatedAt: "2026-01-15 00:00:00"},
		// Violation: before receiver signup.
		{TransactionID: "t2", SenderUserID: 1, ReceiverUserID: 2, Amount: "1.00", CreatedAt: "2026-01-07 00:00:00"},
		// Unknown participant signup counts as anomalous even though valid for the injector.
		{TransactionID: "t3", SenderUserID: 3, ReceiverUserID: 1, Amount: "1.00", CreatedAt: "2026-01-20 00:00:00"},
		// Unparseable created_at is skipped, not counted.
		{TransactionID: "t4", SenderUserID: 1, ReceiverUserID: 2, Amount: "1.00", CreatedAt: ""},
	}

	res := Scan(nil, txns, nil, meta, window(t), 3)
	assert.Equal(t, 2, res.Observed[models.AnomalyTxnBeforeSignup])
}

func TestScan_EventAnomalies(t *testing.T) {
	events := []models.AppEvent{
		{EventID: "e1", UserID: "1", EventType: models.EventTypeLogin, EventTS: "2026-01-05 09:00:00"},
		{EventID: "e2", UserID: "72", EventType: models.EventTypeLogout, EventTS: "2026-01-06 09:00:00"},
		{EventID: "e3", UserID: "not-a-number", EventType: models.EventTypePageView, EventTS: "2026-01-07 09:00:00"},
		{EventID: "e4", UserID: "2", EventType: "", EventTS: "2026-01-08 09:00:00"},
		{EventID: "e5", UserID: "3", EventType: models.EventTypeLogin, EventTS: "2025-12-29 23:00:00"},
		{EventID: "e6", UserID: "4", EventType: models.EventTypeLogin, EventTS: "2026-02-01 00:00:00"},
		{EventID: "e7", UserID: "0", EventType: models.EventTypeLogin, EventTS: "2026-01-09 09:00:00"},
	}

	res := Scan(nil, nil, events, metaFor(nil), window(t), 50)

	assert.Equal(t, 3, res.Observed[models.AnomalyEventsOrphanUser], "above-range, malformed and zero ids are all orphans")
	assert.Equal(t, 1, res.Observed[models.AnomalyEventsMissingType])
	assert.Equal(t, 2, res.Observed[models.AnomalyEventsOutOfWindow], "window end itself is outside the half-open interval")
}

func TestScan_AgainstGeneratedDataset(t *testing.T) {
	w := window(t)
	g := generator.New(42, w)

	users, meta := g.GenerateUsers(generator.UserParams{Count: 300, NullEmailRate: 0.01, NullSignupRate: 0.01})
	txns, txnLog := g.GenerateTransactions(generator.TxnParams{
		Count: 1500, UserCount: 300, BeforeSignupRate: 0.02, DupIDRate: 0.01, NullAmountRate: 0.01,
	}, meta)
	events, evtLog := g.GenerateEvents(generator.EventParams{
		Count: 3000, UserCount: 300, OrphanUserRate: 0.01, NullEventTypeRate: 0.005, OutOfWindowRate: 0.01,
	})

	res := Scan(users, txns, events, meta, w, 300)

	// Observed counts can exceed the injector's tally (stricter lifecycle
	// rule, unknown-signup participants) but never undershoot it for classes
	// the auditor measures the same way.
	assert.GreaterOrEqual(t, res.Observed[models.AnomalyTxnMissingAmount], txnLog.Touched(models.AnomalyTxnMissingAmount))
	assert.GreaterOrEqual(t, res.Observed[models.AnomalyTxnBeforeSignup], txnLog.Touched(models.AnomalyTxnBeforeSignup))
	assert.Equal(t, evtLog.Touched(models.AnomalyEventsOrphanUser), res.Observed[models.AnomalyEventsOrphanUser])
	assert.Equal(t, evtLog.Touched(models.AnomalyEventsMissingType), res.Observed[models.AnomalyEventsMissingType])
	assert.Equal(t, evtLog.Touched(models.AnomalyEventsOutOfWindow), res.Observed[models.AnomalyEventsOutOfWindow])
	assert.GreaterOrEqual(t, res.Duplicates.DistinctIDs, 1)
	assert.Equal(t, res.Duplicates.RowsTotal, res.Observed[models.AnomalyTxnDuplicateID])
}

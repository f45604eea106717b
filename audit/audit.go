// Package audit independently re-scans a generated dataset and counts what
// each anomaly class actually produced. It shares no code path with the
// injection passes, so comparing its counts against the injector's targets
// exposes sampling collisions and rounding bias instead of hiding them.
package audit

import (
	"strconv"
	"strings"
	"time"

	"paysynth/generator"
	"paysynth/models"
)

// Result holds the observed anomaly counts for one dataset.
type Result struct {
	Observed   map[models.AnomalyClass]int
	Duplicates models.DuplicateStats
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func parseTime(s string) *time.Time {
	if isBlank(s) {
		return nil
	}
	t, err := time.ParseInLocation(models.TimeLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// Scan recomputes every anomaly count from the final in-memory records.
//
// The lifecycle rule here is stricter than the injector's: a transaction whose
// sender or receiver has no known signup is counted as anomalous, because no
// lifecycle check is even possible for it. Malformed event user ids count as
// orphans rather than failing the scan.
func Scan(
	users []models.User,
	txns []models.Transaction,
	events []models.AppEvent,
	meta map[int]models.UserMeta,
	window generator.Window,
	userCount int,
) Result {
	observed := make(map[models.AnomalyClass]int, len(models.InjectionClasses))
	for _, c := range models.InjectionClasses {
		observed[c] = 0
	}

	for _, u := range users {
		if isBlank(u.Email) {
			observed[models.AnomalyUsersMissingEmail]++
		}
		if isBlank(u.SignupAt) {
			observed[models.AnomalyUsersMissingSignup]++
		}
	}

	idCounts := make(map[string]int, len(txns))
	for _, t := range txns {
		if isBlank(t.Amount) {
			observed[models.AnomalyTxnMissingAmount]++
		}
		if !isBlank(t.TransactionID) {
			idCounts[t.TransactionID]++
		}

		created := parseTime(t.CreatedAt)
		if created == nil {
			continue
		}
		senderSignup := meta[t.SenderUserID].SignupAt
		receiverSignup := meta[t.ReceiverUserID].SignupAt
		if senderSignup == nil || receiverSignup == nil {
			observed[models.AnomalyTxnBeforeSignup]++
			continue
		}
		if created.Before(*senderSignup) || created.Before(*receiverSignup) {
			observed[models.AnomalyTxnBeforeSignup]++
		}
	}

	var dup models.DuplicateStats
	for _, n := range idCounts {
		if n > 1 {
			dup.DistinctIDs++
			dup.RowsTotal += n
			dup.ExtraRows += n - 1
		}
	}
	observed[models.AnomalyTxnDuplicateID] = dup.RowsTotal

	for _, e := range events {
		if isBlank(string(e.EventType)) {
			observed[models.AnomalyEventsMissingType]++
		}

		uid, err := strconv.Atoi(strings.TrimSpace(e.UserID))
		if err != nil || uid < 1 || uid > userCount {
			observed[models.AnomalyEventsOrphanUser]++
		}

		if ts := parseTime(e.EventTS); ts != nil && !window.Contains(*ts) {
			observed[models.AnomalyEventsOutOfWindow]++
		}
	}

	return Result{Observed: observed, Duplicates: dup}
}

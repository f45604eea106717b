package models

// AnomalyClass names one category of intentional data defect.
type AnomalyClass string

const (
	AnomalyUsersMissingEmail  AnomalyClass = "users_missing_email"
	AnomalyUsersMissingSignup AnomalyClass = "users_missing_signup_at"
	AnomalyTxnBeforeSignup    AnomalyClass = "transactions_before_signup_or_unknown_signup"
	AnomalyTxnDuplicateID     AnomalyClass = "transactions_duplicate_ids"
	AnomalyTxnMissingAmount   AnomalyClass = "transactions_missing_amount"
	AnomalyEventsOrphanUser   AnomalyClass = "events_orphan_user_id"
	AnomalyEventsMissingType  AnomalyClass = "events_missing_event_type"
	AnomalyEventsOutOfWindow  AnomalyClass = "events_out_of_window"
)

// InjectionClasses lists every class the injector targets, in report order.
var InjectionClasses = []AnomalyClass{
	AnomalyUsersMissingEmail,
	AnomalyUsersMissingSignup,
	AnomalyTxnBeforeSignup,
	AnomalyTxnDuplicateID,
	AnomalyTxnMissingAmount,
	AnomalyEventsOrphanUser,
	AnomalyEventsMissingType,
	AnomalyEventsOutOfWindow,
}

// DuplicateStats breaks down duplicate transaction ids as observed in the
// final rows: how many distinct ids appear more than once, how many rows carry
// such an id, and how many of those rows are beyond each id's first occurrence.
type DuplicateStats struct {
	DistinctIDs int
	RowsTotal   int
	ExtraRows   int
}

// AnomalyReport pairs what the injector intended to produce with what an
// independent re-scan of the final records actually found. Divergence is
// expected and informative: passes can land on rows an earlier pass already
// touched, and the max(1, …) floor injects even at a zero configured rate.
type AnomalyReport struct {
	Targeted   map[AnomalyClass]int
	Observed   map[AnomalyClass]int
	Duplicates DuplicateStats
}

// TargetCount derives the intended injection count for a class from its
// configured rate and population size. The floor guarantees every class shows
// up at least once regardless of how small rate×n rounds down.
func TargetCount(rate float64, n int) int {
	c := int(rate * float64(n))
	if c < 1 {
		return 1
	}
	return c
}

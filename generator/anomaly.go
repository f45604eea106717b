package generator

import (
	"time"

	"paysynth/models"
)

// MutationLog records which anomaly passes touched which rows. Passes sample
// indices independently, so a later pass can land on a row an earlier pass
// already corrupted; the log keeps that overlap explicit instead of leaving it
// to index arithmetic.
type MutationLog struct {
	tags []map[models.AnomalyClass]bool
}

func newMutationLog(n int) *MutationLog {
	return &MutationLog{tags: make([]map[models.AnomalyClass]bool, n)}
}

func (l *MutationLog) mark(i int, class models.AnomalyClass) {
	if l.tags[i] == nil {
		l.tags[i] = make(map[models.AnomalyClass]bool, 1)
	}
	l.tags[i][class] = true
}

// Touched returns how many rows a pass mutated.
func (l *MutationLog) Touched(class models.AnomalyClass) int {
	var n int
	for _, t := range l.tags {
		if t[class] {
			n++
		}
	}
	return n
}

// Overlaps returns how many rows were mutated by more than one pass. These are
// the rows where targeted and observed counts can drift apart.
func (l *MutationLog) Overlaps() int {
	var n int
	for _, t := range l.tags {
		if len(t) > 1 {
			n++
		}
	}
	return n
}

// The transforms below are pure: each takes a record by value and returns the
// corrupted copy. The pass loops own index selection and tagging.

func withMissingAmount(t models.Transaction) models.Transaction {
	t.Amount = ""
	return t
}

func withDuplicateID(t models.Transaction, id string) models.Transaction {
	t.TransactionID = id
	return t
}

// withBackdatedParticipant swaps one participant for a late-signup user and
// forces created_at before that user's signup.
func withBackdatedParticipant(t models.Transaction, userID int, asSender bool, createdAt time.Time) models.Transaction {
	if asSender {
		t.SenderUserID = userID
	} else {
		t.ReceiverUserID = userID
	}
	t.CreatedAt = models.FormatTime(createdAt)
	return t
}

func withOrphanUser(e models.AppEvent, userID string) models.AppEvent {
	e.UserID = userID
	return e
}

func withMissingEventType(e models.AppEvent) models.AppEvent {
	e.EventType = ""
	return e
}

func withEventTimestamp(e models.AppEvent, ts time.Time) models.AppEvent {
	e.EventTS = models.FormatTime(ts)
	return e
}

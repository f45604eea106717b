package generator

import (
	"fmt"
	"math"
	"time"

	"paysynth/models"
)

// TxnParams configures the transaction batch and its anomaly rates.
type TxnParams struct {
	Count            int
	UserCount        int
	BeforeSignupRate float64
	DupIDRate        float64
	NullAmountRate   float64
}

// senderPoolFloor is the adopter-count threshold below which sender selection
// falls back to the whole population to avoid degenerate sampling.
const senderPoolFloor = 10

// GenerateTransactions builds the clean transaction batch and then applies the
// three anomaly passes in order: temporal violations, missing amounts,
// duplicate ids. Pass order matters; a later pass can select a row an earlier
// pass already rewrote, and the returned MutationLog records exactly that.
//
// Clean-batch invariant: created_at is never earlier than the later of the two
// participants' known signups. The first anomaly pass exists to break it.
func (g *Generator) GenerateTransactions(p TxnParams, meta map[int]models.UserMeta) ([]models.Transaction, *MutationLog) {
	txns := make([]models.Transaction, 0, p.Count)

	// Adopters carry the volume; everyone can still receive.
	senders := make([]int, 0, p.UserCount)
	for id := 1; id <= p.UserCount; id++ {
		if meta[id].IsAdopter {
			senders = append(senders, id)
		}
	}
	if len(senders) < senderPoolFloor {
		senders = senders[:0]
		for id := 1; id <= p.UserCount; id++ {
			senders = append(senders, id)
		}
	}

	senderWeights := make([]float64, len(senders))
	for i, id := range senders {
		switch meta[id].Country {
		case TopAdoptionCountry:
			senderWeights[i] = 3.0
		case VIPCountry:
			senderWeights[i] = 0.4
		default:
			senderWeights[i] = 1.0
		}
	}

	byCountry := make(map[string][]int)
	for id := 1; id <= p.UserCount; id++ {
		c := meta[id].Country
		byCountry[c] = append(byCountry[c], id)
	}

	// Day weights ramp linearly so late-month days carry more volume.
	days := g.window.Days()
	denom := float64(days - 1)
	if denom < 1 {
		denom = 1
	}
	dayWeights := make([]float64, days)
	for i := range dayWeights {
		dayWeights[i] = 1.0 + TxnTrendStrength*(float64(i)/denom)
	}

	for n := 0; n < p.Count; n++ {
		senderID := senders[weightedIndex(g.rng, senderWeights)]
		receiverID := g.pickReceiver(senderID, p.UserCount, byCountry, meta)

		dayIdx := weightedIndex(g.rng, dayWeights)
		dayStart := g.window.Start.Add(time.Duration(dayIdx) * 24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)
		if dayEnd.After(g.window.End) {
			dayEnd = g.window.End
		}
		createdAt := timeBetween(g.rng, dayStart, dayEnd)

		// Lifecycle correction: redraw between the later known signup and
		// window end. No clamp back into the drawn day is applied.
		lower := g.window.Start
		if s := meta[senderID].SignupAt; s != nil && s.After(lower) {
			lower = *s
		}
		if s := meta[receiverID].SignupAt; s != nil && s.After(lower) {
			lower = *s
		}
		if createdAt.Before(lower) {
			createdAt = timeBetween(g.rng, lower, g.window.End)
		}

		// Power-law-ish base magnitude, roughly 2..160 before scaling.
		base := math.Pow(10, 0.3+g.rng.Float64()*1.9)
		timeScale := 1.0 + AmountTrendStrength*(float64(dayIdx)/denom)
		countryScale, ok := AmountMultipliers[meta[senderID].Country]
		if !ok {
			countryScale = 1.0
		}
		amount := base * timeScale * countryScale

		txns = append(txns, models.Transaction{
			TransactionID:  g.faker.UUID(),
			SenderUserID:   senderID,
			ReceiverUserID: receiverID,
			Amount:         fmt.Sprintf("%.2f", amount),
			Currency:       currencies[weightedIndex(g.rng, currencyWeights)],
			Status:         statuses[weightedIndex(g.rng, statusWeights)],
			CreatedAt:      models.FormatTime(createdAt),
		})
	}

	log := newMutationLog(p.Count)
	g.injectBeforeSignup(txns, log, p, meta)
	g.injectMissingAmount(txns, log, p)
	g.injectDuplicateIDs(txns, log, p)
	return txns, log
}

// pickReceiver keeps most transfers local: with the configured probability it
// draws from the sender's country (excluding the sender), otherwise uniformly
// from everyone else. Never returns the sender.
func (g *Generator) pickReceiver(senderID, userCount int, byCountry map[string][]int, meta map[int]models.UserMeta) int {
	if g.rng.Float64() < SameCountryReceiverProb {
		local := byCountry[meta[senderID].Country]
		candidates := make([]int, 0, len(local))
		for _, id := range local {
			if id != senderID {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) > 0 {
			return candidates[g.rng.Intn(len(candidates))]
		}
	}

	r := 1 + g.rng.Intn(userCount)
	for r == senderID {
		r = 1 + g.rng.Intn(userCount)
	}
	return r
}

// injectBeforeSignup overwrites one participant of each selected row with a
// late-signup user and backdates created_at to before that user's signup.
// Eligible users signed up more than three days into the window so a
// non-degenerate backdating range always exists; the floor one hour after
// window start guards the range from the other side.
func (g *Generator) injectBeforeSignup(txns []models.Transaction, log *MutationLog, p TxnParams, meta map[int]models.UserMeta) {
	cutoff := g.window.Start.Add(3 * 24 * time.Hour)
	eligible := make([]int, 0)
	for id := 1; id <= p.UserCount; id++ {
		if s := meta[id].SignupAt; s != nil && s.After(cutoff) {
			eligible = append(eligible, id)
		}
	}
	if len(eligible) == 0 {
		return
	}

	count := models.TargetCount(p.BeforeSignupRate, p.Count)
	for _, i := range sampleIndexes(g.rng, p.Count, count) {
		badUser := eligible[g.rng.Intn(len(eligible))]
		asSender := g.rng.Float64() < 0.5

		signup := *meta[badUser].SignupAt
		forcedEnd := signup.Add(-time.Minute)
		if floor := g.window.Start.Add(time.Hour); forcedEnd.Before(floor) {
			forcedEnd = floor
		}
		createdAt := timeBetween(g.rng, g.window.Start, forcedEnd)

		txns[i] = withBackdatedParticipant(txns[i], badUser, asSender, createdAt)
		log.mark(i, models.AnomalyTxnBeforeSignup)
	}
}

func (g *Generator) injectMissingAmount(txns []models.Transaction, log *MutationLog, p TxnParams) {
	count := models.TargetCount(p.NullAmountRate, p.Count)
	for _, i := range sampleIndexes(g.rng, p.Count, count) {
		txns[i] = withMissingAmount(txns[i])
		log.mark(i, models.AnomalyTxnMissingAmount)
	}
}

// injectDuplicateIDs copies the id of a strictly earlier row onto each target.
// Row 0 is never a target, so every duplicate traces back to an untouched
// original. Batches of two rows or fewer are skipped entirely.
func (g *Generator) injectDuplicateIDs(txns []models.Transaction, log *MutationLog, p TxnParams) {
	if p.Count <= 2 {
		return
	}
	count := models.TargetCount(p.DupIDRate, p.Count)
	for _, t := range sampleIndexes(g.rng, p.Count-1, count) {
		target := t + 1
		source := g.rng.Intn(target)
		txns[target] = withDuplicateID(txns[target], txns[source].TransactionID)
		log.mark(target, models.AnomalyTxnDuplicateID)
	}
}

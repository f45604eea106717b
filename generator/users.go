package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"paysynth/models"
)

// Generator produces the three record populations for one run. All draws come
// from the injected rand source and the faker seeded alongside it, so the same
// seed and parameters reproduce the dataset byte for byte.
type Generator struct {
	rng    *rand.Rand
	faker  *gofakeit.Faker
	window Window
}

// New creates a generator for the given window with all randomness derived
// from seed.
func New(seed int64, window Window) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		faker:  gofakeit.New(uint64(seed)),
		window: window,
	}
}

// UserParams configures the user population and its anomaly rates.
type UserParams struct {
	Count          int
	NullEmailRate  float64
	NullSignupRate float64
}

// GenerateUsers builds the user dimension: ids densely cover 1..Count, one row
// each. The returned metadata map is the internal side channel the transaction
// generator and auditor consume; it is keyed by user id and never emitted.
//
// The two null-field anomalies are independent per-user coin flips applied at
// creation time rather than a post-pass, matching how partial writes show up
// in real user tables. A top-up afterwards enforces the max(1, rate×n) floor
// the other anomaly classes get from their sampled passes.
func (g *Generator) GenerateUsers(p UserParams) ([]models.User, map[int]models.UserMeta) {
	users := make([]models.User, 0, p.Count)
	meta := make(map[int]models.UserMeta, p.Count)

	for id := 1; id <= p.Count; id++ {
		firstName := g.faker.FirstName()
		lastName := g.faker.LastName()
		email := strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", firstName, lastName, 10+g.rng.Intn(9990)))

		signup := timeBetween(g.rng, g.window.Start, g.window.End)

		user := models.User{
			UserID:    id,
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Country:   Countries[weightedIndex(g.rng, CountryWeights)],
			SignupAt:  models.FormatTime(signup),
		}
		m := models.UserMeta{SignupAt: &signup, Country: user.Country}

		if g.rng.Float64() < p.NullSignupRate {
			user.SignupAt = ""
			m.SignupAt = nil
		}
		if g.rng.Float64() < p.NullEmailRate {
			user.Email = ""
		}

		adoptRate, ok := AdoptionRates[user.Country]
		if !ok {
			adoptRate = 0.25
		}
		m.IsAdopter = g.rng.Float64() < adoptRate

		users = append(users, user)
		meta[id] = m
	}

	// The coin flips alone cannot promise the targeted floor on small
	// populations, and downstream tests assert each class is present. Blank
	// additional rows until the floor holds.
	g.topUpMissingEmails(users, models.TargetCount(p.NullEmailRate, p.Count))
	g.topUpMissingSignups(users, meta, models.TargetCount(p.NullSignupRate, p.Count))

	return users, meta
}

func (g *Generator) topUpMissingEmails(users []models.User, target int) {
	candidates := make([]int, 0, len(users))
	blank := 0
	for i, u := range users {
		if u.Email == "" {
			blank++
		} else {
			candidates = append(candidates, i)
		}
	}
	if blank >= target {
		return
	}
	for _, j := range sampleIndexes(g.rng, len(candidates), target-blank) {
		users[candidates[j]].Email = ""
	}
}

func (g *Generator) topUpMissingSignups(users []models.User, meta map[int]models.UserMeta, target int) {
	candidates := make([]int, 0, len(users))
	blank := 0
	for i, u := range users {
		if u.SignupAt == "" {
			blank++
		} else {
			candidates = append(candidates, i)
		}
	}
	if blank >= target {
		return
	}
	for _, j := range sampleIndexes(g.rng, len(candidates), target-blank) {
		i := candidates[j]
		users[i].SignupAt = ""
		m := meta[users[i].UserID]
		m.SignupAt = nil
		meta[users[i].UserID] = m
	}
}

package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"paysynth/audit"
	"paysynth/config"
	"paysynth/generator"
	"paysynth/models"
	"paysynth/repository"
)

// Run executes one full generation: resolve the window, build the three
// populations in order, write the CSVs, then audit the final records and
// render the targeted-versus-observed report. Generation order is fixed;
// changing it changes the dataset for a given seed.
func Run(cfg *config.Config) error {
	window, err := generator.ResolveMonth(cfg.Month)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"month": cfg.Month,
		"seed":  cfg.Seed,
	}).Info("Generating dataset")

	gen := generator.New(cfg.Seed, window)

	users, meta := gen.GenerateUsers(generator.UserParams{
		Count:          cfg.NUsers,
		NullEmailRate:  cfg.Rates.NullEmail,
		NullSignupRate: cfg.Rates.NullSignup,
	})

	txns, txnLog := gen.GenerateTransactions(generator.TxnParams{
		Count:            cfg.NTxns,
		UserCount:        cfg.NUsers,
		BeforeSignupRate: cfg.Rates.BeforeSignup,
		DupIDRate:        cfg.Rates.DupID,
		NullAmountRate:   cfg.Rates.NullAmount,
	}, meta)

	events, evtLog := gen.GenerateEvents(generator.EventParams{
		Count:             cfg.NEvents,
		UserCount:         cfg.NUsers,
		OrphanUserRate:    cfg.Rates.OrphanUser,
		NullEventTypeRate: cfg.Rates.NullEventType,
		OutOfWindowRate:   cfg.Rates.OutOfWindow,
	})

	writer, err := repository.NewCSVWriter(cfg.OutDir)
	if err != nil {
		return err
	}
	usersPath, err := writer.WriteUsers(users)
	if err != nil {
		return err
	}
	txnsPath, err := writer.WriteTransactions(txns)
	if err != nil {
		return err
	}
	eventsPath, err := writer.WriteAppEvents(events)
	if err != nil {
		return err
	}

	report := models.AnomalyReport{
		Targeted: map[models.AnomalyClass]int{
			models.AnomalyUsersMissingEmail:  models.TargetCount(cfg.Rates.NullEmail, cfg.NUsers),
			models.AnomalyUsersMissingSignup: models.TargetCount(cfg.Rates.NullSignup, cfg.NUsers),
			models.AnomalyTxnBeforeSignup:    models.TargetCount(cfg.Rates.BeforeSignup, cfg.NTxns),
			models.AnomalyTxnDuplicateID:     models.TargetCount(cfg.Rates.DupID, cfg.NTxns),
			models.AnomalyTxnMissingAmount:   models.TargetCount(cfg.Rates.NullAmount, cfg.NTxns),
			models.AnomalyEventsOrphanUser:   models.TargetCount(cfg.Rates.OrphanUser, cfg.NEvents),
			models.AnomalyEventsMissingType:  models.TargetCount(cfg.Rates.NullEventType, cfg.NEvents),
			models.AnomalyEventsOutOfWindow:  models.TargetCount(cfg.Rates.OutOfWindow, cfg.NEvents),
		},
	}
	result := audit.Scan(users, txns, events, meta, window, cfg.NUsers)
	report.Observed = result.Observed
	report.Duplicates = result.Duplicates

	fmt.Println("Generated:")
	fmt.Printf(" - %s (%d rows)\n", usersPath, len(users))
	fmt.Printf(" - %s (%d rows)\n", txnsPath, len(txns))
	fmt.Printf(" - %s (%d rows)\n", eventsPath, len(events))
	fmt.Printf("\nConfig: month=%s, seed=%d, users=%d, txns=%d, events=%d\n",
		cfg.Month, cfg.Seed, cfg.NUsers, cfg.NTxns, cfg.NEvents)

	fmt.Println("\nIntentional anomalies (target -> observed):")
	fmt.Printf(" - users missing email: %d -> %d\n",
		report.Targeted[models.AnomalyUsersMissingEmail], report.Observed[models.AnomalyUsersMissingEmail])
	fmt.Printf(" - users missing signup_at: %d -> %d\n",
		report.Targeted[models.AnomalyUsersMissingSignup], report.Observed[models.AnomalyUsersMissingSignup])
	fmt.Printf(" - tx before signup/unknown signup: %d -> %d\n",
		report.Targeted[models.AnomalyTxnBeforeSignup], report.Observed[models.AnomalyTxnBeforeSignup])
	fmt.Printf(" - tx duplicate IDs (rows targeted): %d -> %d rows across %d IDs (extra rows=%d)\n",
		report.Targeted[models.AnomalyTxnDuplicateID],
		report.Duplicates.RowsTotal, report.Duplicates.DistinctIDs, report.Duplicates.ExtraRows)
	fmt.Printf(" - tx missing amount: %d -> %d\n",
		report.Targeted[models.AnomalyTxnMissingAmount], report.Observed[models.AnomalyTxnMissingAmount])
	fmt.Printf(" - events orphan user_id: %d -> %d\n",
		report.Targeted[models.AnomalyEventsOrphanUser], report.Observed[models.AnomalyEventsOrphanUser])
	fmt.Printf(" - events missing event_type: %d -> %d\n",
		report.Targeted[models.AnomalyEventsMissingType], report.Observed[models.AnomalyEventsMissingType])
	fmt.Printf(" - events out-of-window: %d -> %d\n",
		report.Targeted[models.AnomalyEventsOutOfWindow], report.Observed[models.AnomalyEventsOutOfWindow])
	fmt.Printf("\nRows hit by more than one injection pass: transactions=%d, events=%d\n",
		txnLog.Overlaps(), evtLog.Overlaps())

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paysynth/models"
	"paysynth/repository/testutil"
)

func TestStore_LoadAndCount_SQLite(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLite(t)
	store := NewStore(db)

	users := []models.User{
		testutil.NewUser(1),
		testutil.NewUser(2),
	}
	// Blank email and signup must land as NULL, not empty string.
	users[1].Email = ""
	users[1].SignupAt = ""

	txns := []models.Transaction{
		testutil.NewTransaction("t-1", 1, 2),
		testutil.NewTransaction("t-1", 2, 1), // duplicate id loads fine
		testutil.NewTransaction("t-2", 1, 2),
	}
	txns[2].Amount = ""

	events := []models.AppEvent{
		testutil.NewAppEvent("e-1", "1"),
		testutil.NewAppEvent("e-2", "999"),          // orphan user id
		testutil.NewAppEvent("e-3", "not-a-number"), // malformed user id loads as NULL
	}

	require.NoError(t, store.InsertUsers(ctx, users))
	require.NoError(t, store.InsertTransactions(ctx, txns))
	require.NoError(t, store.InsertAppEvents(ctx, events))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"users": 2, "transactions": 3, "app_events": 3}, counts)

	var email sql.NullString
	require.NoError(t, db.QueryRowContext(ctx, "SELECT email FROM users WHERE user_id = 2").Scan(&email))
	assert.False(t, email.Valid)

	var amount sql.NullFloat64
	require.NoError(t, db.QueryRowContext(ctx, "SELECT amount FROM transactions WHERE transaction_id = 't-2'").Scan(&amount))
	assert.False(t, amount.Valid)

	var dupRows int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions WHERE transaction_id = 't-1'").Scan(&dupRows))
	assert.Equal(t, 2, dupRows)

	var uid sql.NullInt64
	require.NoError(t, db.QueryRowContext(ctx, "SELECT user_id FROM app_events WHERE event_id = 'e-3'").Scan(&uid))
	assert.False(t, uid.Valid)
}

func TestStore_ResetClearsAllTables(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLite(t)
	store := NewStore(db)

	require.NoError(t, store.InsertUsers(ctx, []models.User{testutil.NewUser(1)}))
	require.NoError(t, store.InsertTransactions(ctx, []models.Transaction{testutil.NewTransaction("t-1", 1, 1)}))
	require.NoError(t, store.InsertAppEvents(ctx, []models.AppEvent{testutil.NewAppEvent("e-1", "1")}))

	require.NoError(t, store.Reset(ctx))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"users": 0, "transactions": 0, "app_events": 0}, counts)
}

func TestStore_InsertRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLite(t)
	store := NewStore(db)

	users := []models.User{
		testutil.NewUser(1),
		testutil.NewUser(1), // primary key collision
	}
	err := store.InsertUsers(ctx, users)
	require.Error(t, err)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts["users"], "partial batch must not survive")
}

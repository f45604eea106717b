package testutil

import (
	"fmt"

	"paysynth/models"
)

// NewUser creates a test user with default values.
func NewUser(id int) models.User {
	return models.User{
		UserID:    id,
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", id),
		Email:     fmt.Sprintf("test.user%d@example.com", id),
		Country:   "DE",
		SignupAt:  "2026-01-02 09:00:00",
	}
}

// NewTransaction creates a completed EUR transaction between two test users.
func NewTransaction(id string, sender, receiver int) models.Transaction {
	return models.Transaction{
		TransactionID:  id,
		SenderUserID:   sender,
		ReceiverUserID: receiver,
		Amount:         "25.00",
		Currency:       models.CurrencyEUR,
		Status:         models.TransactionStatusCompleted,
		CreatedAt:      "2026-01-15 12:00:00",
	}
}

// NewAppEvent creates a login event for a test user.
func NewAppEvent(id, userID string) models.AppEvent {
	return models.AppEvent{
		EventID:   id,
		UserID:    userID,
		EventType: models.EventTypeLogin,
		EventTS:   "2026-01-10 08:30:00",
		SessionID: "session-" + id,
		Page:      "/home",
		Device:    "ios",
		OS:        "iOS 17",
		IP:        "192.168.1.20",
	}
}

package models

// Currency is the settlement currency of a transaction.
type Currency string

const (
	CurrencyBTC Currency = "BTC"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// TransactionStatus represents the terminal state of a transfer attempt.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is one row of the transactions output. Field order matches the
// tabular contract: transaction_id, sender_user_id, receiver_user_id, amount,
// currency, status, created_at.
//
// TransactionID is intended-unique but duplicated on purpose for a fraction of
// rows. Amount is a two-decimal string, empty when the null-amount anomaly
// fired. Sender and receiver are always valid user ids; orphan transactions do
// not exist by design.
type Transaction struct {
	TransactionID  string            `db:"transaction_id"`
	SenderUserID   int               `db:"sender_user_id"`
	ReceiverUserID int               `db:"receiver_user_id"`
	Amount         string            `db:"amount"`
	Currency       Currency          `db:"currency"`
	Status         TransactionStatus `db:"status"`
	CreatedAt      string            `db:"created_at"`
}

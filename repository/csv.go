package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"paysynth/models"
)

// CSV file names and column orders are the contract the downstream loader and
// analytics pipeline depend on. Absent values are empty strings, never a null
// sentinel.

const (
	UsersFile        = "users.csv"
	TransactionsFile = "transactions.csv"
	AppEventsFile    = "app_events.csv"
)

var usersHeader = []string{"user_id", "first_name", "last_name", "email", "country", "signup_at"}
var transactionsHeader = []string{"transaction_id", "sender_user_id", "receiver_user_id", "amount", "currency", "status", "created_at"}
var appEventsHeader = []string{"event_id", "user_id", "event_type", "event_ts", "session_id", "page", "button_id", "device", "os", "ip"}

// CSVWriter serializes record sequences into a directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

func (w *CSVWriter) writeFile(name string, header []string, rows [][]string) (string, error) {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return path, nil
}

// WriteUsers writes users.csv and returns its path.
func (w *CSVWriter) WriteUsers(users []models.User) (string, error) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.Itoa(u.UserID), u.FirstName, u.LastName, u.Email, u.Country, u.SignupAt,
		})
	}
	return w.writeFile(UsersFile, usersHeader, rows)
}

// WriteTransactions writes transactions.csv and returns its path.
func (w *CSVWriter) WriteTransactions(txns []models.Transaction) (string, error) {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			t.TransactionID, strconv.Itoa(t.SenderUserID), strconv.Itoa(t.ReceiverUserID),
			t.Amount, string(t.Currency), string(t.Status), t.CreatedAt,
		})
	}
	return w.writeFile(TransactionsFile, transactionsHeader, rows)
}

// WriteAppEvents writes app_events.csv and returns its path.
func (w *CSVWriter) WriteAppEvents(events []models.AppEvent) (string, error) {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.EventID, e.UserID, string(e.EventType), e.EventTS, e.SessionID,
			e.Page, e.ButtonID, e.Device, e.OS, e.IP,
		})
	}
	return w.writeFile(AppEventsFile, appEventsHeader, rows)
}

func readFile(path string, wantCols int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}
	if len(records[0]) != wantCols {
		return nil, fmt.Errorf("%s has %d columns, expected %d", path, len(records[0]), wantCols)
	}
	return records[1:], nil
}

// ReadUsers loads users.csv back into records for the loader.
func ReadUsers(path string) ([]models.User, error) {
	rows, err := readFile(path, len(usersHeader))
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		id, err := strconv.Atoi(r[0])
		if err != nil {
			return nil, fmt.Errorf("invalid user_id %q: %w", r[0], err)
		}
		users = append(users, models.User{
			UserID: id, FirstName: r[1], LastName: r[2], Email: r[3], Country: r[4], SignupAt: r[5],
		})
	}
	return users, nil
}

// ReadTransactions loads transactions.csv back into records for the loader.
func ReadTransactions(path string) ([]models.Transaction, error) {
	rows, err := readFile(path, len(transactionsHeader))
	if err != nil {
		return nil, err
	}
	txns := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		sender, err := strconv.Atoi(r[1])
		if err != nil {
			return nil, fmt.Errorf("invalid sender_user_id %q: %w", r[1], err)
		}
		receiver, err := strconv.Atoi(r[2])
		if err != nil {
			return nil, fmt.Errorf("invalid receiver_user_id %q: %w", r[2], err)
		}
		txns = append(txns, models.Transaction{
			TransactionID: r[0], SenderUserID: sender, ReceiverUserID: receiver,
			Amount: r[3], Currency: models.Currency(r[4]), Status: models.TransactionStatus(r[5]), CreatedAt: r[6],
		})
	}
	return txns, nil
}

// ReadAppEvents loads app_events.csv back into records for the loader. User
// ids stay textual; malformed values are the auditor's concern, not a parse
// failure.
func ReadAppEvents(path string) ([]models.AppEvent, error) {
	rows, err := readFile(path, len(appEventsHeader))
	if err != nil {
		return nil, err
	}
	events := make([]models.AppEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, models.AppEvent{
			EventID: r[0], UserID: r[1], EventType: models.EventType(r[2]), EventTS: r[3],
			SessionID: r[4], Page: r[5], ButtonID: r[6], Device: r[7], OS: r[8], IP: r[9],
		})
	}
	return events, nil
}

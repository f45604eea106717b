package models

// EventType is the kind of in-app interaction an event records.
type EventType string

const (
	EventTypeLogin       EventType = "login"
	EventTypePageView    EventType = "page_view"
	EventTypeButtonClick EventType = "button_click"
	EventTypeLogout      EventType = "logout"
)

// AppEvent is one row of the app_events output. Field order matches the
// tabular contract: event_id, user_id, event_type, event_ts, session_id, page,
// button_id, device, os, ip.
//
// UserID is kept textual because the loader contract allows malformed ids and
// the auditor must count those as orphans rather than fail parsing the batch.
// ButtonID is populated only for button_click events.
type AppEvent struct {
	EventID   string    `db:"event_id"`
	UserID    string    `db:"user_id"`
	EventType EventType `db:"event_type"` // empty when the null-event-type anomaly fired
	EventTS   string    `db:"event_ts"`
	SessionID string    `db:"session_id"`
	Page      string    `db:"page"`
	ButtonID  string    `db:"button_id"`
	Device    string    `db:"device"`
	OS        string    `db:"os"`
	IP        string    `db:"ip"`
}

package audit

import (
	"encoding/json"
	"log"
	"time"
)

type Event struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id,omitempty"`
	Status    string    `json:"status"`
	Details   any       `json:"details,omitempty"`
}

type Logger struct {
	out *log.Logger
}

func NewLogger() *Logger {
	return &Logger{out: log.Default()}
}

// NewLoggerTo writes audit events to a dedicated logger.
func NewLoggerTo(out *log.Logger) *Logger {
	return &Logger{out: out}
}

// LogAuth records the outcome of an authentication step for a user.
func (a *Logger) LogAuth(eventType, userID, status string, details map[string]string) {
	a.log(Event{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Status:    status,
		Details:   details,
	})
}

// LogTransition records an account state change.
func (a *Logger) LogTransition(userID, event, from, to string) {
	a.log(Event{
		Timestamp: time.Now(),
		EventType: "STATE_TRANSITION",
		UserID:    userID,
		Status:    "SUCCESS",
		Details: map[string]string{
			"event": event,
			"from":  from,
			"to":    to,
		},
	})
}

func (a *Logger) LogError(operation, userID string, err error) {
	a.log(Event{
		Timestamp: time.Now(),
		EventType: operation,
		UserID:    userID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) log(event Event) {
	data, _ := json.Marshal(event)
	a.out.Printf("AUDIT: %s", string(data))
}

package audit

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger emits structured audit events for authentication and mutations.
// Events go to the server log only; responses never carry audit detail.
type Logger struct {
	log zerolog.Logger
}

func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return &Logger{
		log: zerolog.New(w).With().Timestamp().Str("component", "audit").Logger(),
	}
}

func (l *Logger) event(name string) *zerolog.Event {
	return l.log.Info().
		Str("event", name).
		Str("event_id", uuid.New().String())
}

func (l *Logger) LoginSucceeded(userID int64, username, remoteIP string) {
	l.event("login_succeeded").
		Int64("user_id", userID).
		Str("username", username).
		Str("remote_ip", remoteIP).
		Send()
}

// LoginFailed records the attempted username server-side. The HTTP response
// stays generic regardless of the failure reason.
func (l *Logger) LoginFailed(username, remoteIP string) {
	l.event("login_failed").
		Str("username", username).
		Str("remote_ip", remoteIP).
		Send()
}

func (l *Logger) Logout(userID int64, username string) {
	l.event("logout").
		Int64("user_id", userID).
		Str("username", username).
		Send()
}

func (l *Logger) AccessDenied(userID int64, username, role, method, path string) {
	l.event("access_denied").
		Int64("user_id", userID).
		Str("username", username).
		Str("role", role).
		Str("method", method).
		Str("path", path).
		Send()
}

func (l *Logger) RecordCreated(userID int64, entity string, recordID int64) {
	l.event("record_created").
		Int64("user_id", userID).
		Str("entity", entity).
		Int64("record_id", recordID).
		Send()
}

func (l *Logger) RecordUpdated(userID int64, entity string, recordID int64) {
	l.event("record_updated").
		Int64("user_id", userID).
		Str("entity", entity).
		Int64("record_id", recordID).
		Send()
}

func (l *Logger) RecordDeleted(userID int64, entity string, recordID int64) {
	l.event("record_deleted").
		Int64("user_id", userID).
		Str("entity", entity).
		Int64("record_id", recordID).
		Send()
}

func (l *Logger) UserCreated(actorID, userID int64, username, role string) {
	l.event("user_created").
		Int64("actor_id", actorID).
		Int64("user_id", userID).
		Str("username", username).
		Str("role", role).
		Send()
}

func (l *Logger) RoleChanged(actorID, userID int64, role string) {
	l.event("role_changed").
		Int64("actor_id", actorID).
		Int64("user_id", userID).
		Str("role", role).
		Send()
}

func (l *Logger) UserDeleted(actorID, userID int64) {
	l.event("user_deleted").
		Int64("actor_id", actorID).
		Int64("user_id", userID).
		Send()
}

package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hibried/SportNow/internal/domain"
)

// CookieName carries the session id in the browser.
const CookieName = "sportnow_session"

var ErrNotFound = errors.New("session not found")

// Session is the live server-side record behind the cookie. It holds the
// API token and whatever the frontend needs to label the user without a
// round trip. Absence of a session (or an empty token) means guest.
type Session struct {
	ID    string      `json:"id"`
	Token string      `json:"token"`
	User  domain.User `json:"user"`
	// PendingJoins records joins the user initiated that the server
	// participant list has not confirmed yet, keyed by activity id.
	PendingJoins map[domain.ID]domain.Participant `json:"pending_joins,omitempty"`
	CreatedAt    time.Time                        `json:"created_at"`
}

func New(token string, user domain.User) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
}

// RecordPendingJoin notes a just-initiated join under a client-generated
// temporary participant id, to be shown until the server list confirms it.
func (s *Session) RecordPendingJoin(activityID domain.ID) {
	if s.PendingJoins == nil {
		s.PendingJoins = make(map[domain.ID]domain.Participant)
	}
	s.PendingJoins[activityID] = domain.Participant{
		ID:      domain.ID(uuid.NewString()),
		User:    s.User,
		Pending: true,
	}
}

// Store reads and writes sessions by id. Implementations must be safe for
// concurrent use; every page load goes through Get.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

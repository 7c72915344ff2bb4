package checkout

import (
	"context"
	"time"

	"github.com/hibried/SportNow/internal/api"
	"github.com/hibried/SportNow/internal/domain"
)

// State of one checkout attempt on an activity view.
type State int

const (
	// StateViewing is the initial detail view.
	StateViewing State = iota
	// StateModalOpen means the payment-method chooser is showing.
	StateModalOpen
	// StateSubmitting means the transaction-create call is in flight.
	StateSubmitting
	// StateRedirected means a transaction exists and the user is being
	// sent to its confirmation page.
	StateRedirected
)

func (s State) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateModalOpen:
		return "modal_open"
	case StateSubmitting:
		return "submitting"
	case StateRedirected:
		return "redirected"
	}
	return "unknown"
}

// Creator issues the transaction-create call. Satisfied by *api.Client.
type Creator interface {
	CreateTransaction(ctx context.Context, token string, activityID, methodID domain.ID) (domain.ID, error)
}

// Flow drives one activity through viewing, payment selection and
// transaction creation. A failed submit returns to the modal so the user
// can retry; a rejected transition leaves the state untouched.
type Flow struct {
	activity domain.Activity
	creator  Creator
	state    State
	txID     domain.ID
}

func NewFlow(activity domain.Activity, creator Creator) *Flow {
	return &Flow{activity: activity, creator: creator, state: StateViewing}
}

func (f *Flow) State() State { return f.state }

// CanJoin gates the action button: the event must still have a free slot,
// must not have passed, and no checkout may already be under way.
func (f *Flow) CanJoin(now time.Time) bool {
	if f.state != StateViewing {
		return false
	}
	return !f.activity.IsFull() && !f.activity.IsPast(now)
}

// ButtonLabel is the action-button text for the current state. A past
// event reads "Event Ended" even when it is also full.
func (f *Flow) ButtonLabel(now time.Time) string {
	switch {
	case f.activity.IsPast(now):
		return "Event Ended"
	case f.activity.IsFull():
		return "Full"
	case f.state == StateSubmitting:
		return "Joining..."
	case f.state == StateRedirected:
		return "Joined!"
	default:
		return "Join Activity"
	}
}

// OpenModal moves from viewing to the payment-method chooser. Rejected
// when the activity cannot be joined.
func (f *Flow) OpenModal(now time.Time) error {
	if !f.CanJoin(now) {
		return api.ValidationErr("activity cannot be joined")
	}
	f.state = StateModalOpen
	return nil
}

// CloseModal abandons the chooser and returns to viewing.
func (f *Flow) CloseModal() {
	if f.state == StateModalOpen {
		f.state = StateViewing
	}
}

// Confirm creates the transaction for the selected payment method. An
// empty method id is rejected locally without touching the network and
// the modal stays open. A creator failure also reopens the modal so the
// user can retry. On success the flow is redirected to the new
// transaction's confirmation page.
func (f *Flow) Confirm(ctx context.Context, token string, methodID domain.ID) (domain.ID, error) {
	if f.state != StateModalOpen {
		return "", api.ValidationErr("no checkout in progress")
	}
	if methodID == "" {
		return "", api.ValidationErr("select a payment method first")
	}
	f.state = StateSubmitting
	id, err := f.creator.CreateTransaction(ctx, token, f.activity.ID, methodID)
	if err != nil {
		f.state = StateModalOpen
		return "", err
	}
	f.state = StateRedirected
	f.txID = id
	return id, nil
}

// RedirectPath is the confirmation page for the created transaction.
// Empty until the flow has reached StateRedirected.
func (f *Flow) RedirectPath() string {
	if f.state != StateRedirected {
		return ""
	}
	return "/transaction/" + f.txID.String() + "/confirm"
}

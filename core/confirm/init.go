package confirm

import (
	"errors"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

// DefaultMessage is shown when a request carries no message of its own.
const DefaultMessage = "Are you sure you want to continue? This action cannot be undone."

const (
	DeletePostMessage    = "Are you sure you want to delete this post? This action cannot be undone."
	DeleteCommentMessage = "Are you sure you want to delete this comment? This action cannot be undone."
)

// Kinds of pending actions.
const (
	DELETE_POST    = "delete:post"
	DELETE_COMMENT = "delete:comment"
)

// TTL of a pending action.
var TTL = 5 * time.Minute

// ErrUnknownAction is returned for tokens never issued, already consumed,
// cancelled or expired, and for tokens of another user or target.
var ErrUnknownAction = errors.New("unknown or expired confirmation")

// PendingAction is what the caller shows in its modal and hands back to
// confirm.
type PendingAction struct {
	Token    string    `json:"token"`
	UserID   string    `json:"userId"`
	Message  string    `json:"message"`
	Kind     string    `json:"kind"`
	TargetID string    `json:"targetId"`
	Expires  time.Time `json:"expires"`
}

// Workflow keeps the pending actions of this process.
type Workflow struct {
	mu      sync.Mutex
	pending map[string]PendingAction
	now     func() time.Time
}

func New() *Workflow {
	return &Workflow{pending: map[string]PendingAction{}, now: time.Now}
}

// Request opens a pending action of userID over targetID.
func (w *Workflow) Request(userID, message, kind, targetID string) PendingAction {
	if message == "" {
		message = DefaultMessage
	}
	now := w.now()
	action := PendingAction{
		Token:    uuid.NewV4().String(),
		UserID:   userID,
		Message:  message,
		Kind:     kind,
		TargetID: targetID,
		Expires:  now.Add(TTL),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for token, p := range w.pending {
		if now.After(p.Expires) {
			delete(w.pending, token)
		}
	}
	w.pending[action.Token] = action
	return action
}

// Consume confirms the action of userID. A token is good for one call only.
func (w *Workflow) Consume(token, userID, kind, targetID string) (PendingAction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	action, exists := w.pending[token]
	if !exists || action.UserID != userID || action.Kind != kind || action.TargetID != targetID {
		return PendingAction{}, ErrUnknownAction
	}
	delete(w.pending, token)
	if w.now().After(action.Expires) {
		return PendingAction{}, ErrUnknownAction
	}
	return action, nil
}

// Cancel drops the action of userID, if any.
func (w *Workflow) Cancel(token, userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if action, exists := w.pending[token]; exists && action.UserID == userID {
		delete(w.pending, token)
	}
}

// Message for the kind of action.
func Message(kind string) string {
	switch kind {
	case DELETE_POST:
		return DeletePostMessage
	case DELETE_COMMENT:
		return DeleteCommentMessage
	}
	return DefaultMessage
}

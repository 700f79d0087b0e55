package post

// NotAllowed check.
type NotAllowed struct {
	Reason string
}

func (e *NotAllowed) Error() string {
	return "can't allow to perform operation: " + e.Reason
}

// ErrNotOwner is returned when someone else than the author deletes a post.
var ErrNotOwner = &NotAllowed{Reason: "only the owner can delete this post"}

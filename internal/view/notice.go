// Package view holds the state and operations behind the inquiries admin
// panel and the public tour gallery.  Each view fetches a collection, keeps
// it as a read-only snapshot, and re-fetches the whole collection after any
// mutating action instead of patching it locally.
package view

import "context"

// NoticeKind selects how a notice is styled.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient message shown to the user once.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Confirmer asks the user to approve an irreversible action.  It may block
// (a prompt) or answer from data already collected (a submitted dialog).
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

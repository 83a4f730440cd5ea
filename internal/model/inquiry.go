// Package model mirrors the records served by the booking backend.  The
// client only ever reads these snapshots; it never edits them in place.
package model

// Inquiry is a visitor-submitted contact form record.
type Inquiry struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Reply   *Reply `json:"reply,omitempty"` // nil until staff has replied
}

// Reply is the staff answer attached to an inquiry.  SentAt keeps the raw
// server value so a malformed timestamp can still be shown.
type Reply struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	SentAt  string `json:"sentAt"`
}

// HasReply reports whether a reply has been sent for the inquiry.
func (i Inquiry) HasReply() bool { return i.Reply != nil }

// ReplyRequest is the body of POST /api/contact/reply.
type ReplyRequest struct {
	InquiryID    string `json:"inquiryId"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	ReplyMessage string `json:"replyMessage"`
}

// Package queue defines the admin audit events exchanged over RabbitMQ and
// the consumer that records them.
package queue

import "time"

// Actions recorded for inquiries.
const (
	ActionDeleted = "deleted"
	ActionReplied = "replied"
)

// InquiryEvent is published after an admin action on an inquiry succeeded.
type InquiryEvent struct {
	Action    string    `json:"action"`
	InquiryID string    `json:"inquiry_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	At        time.Time `json:"at"`
}

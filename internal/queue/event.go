// Package queue defines the inquiry events exchanged over RabbitMQ together
// with their publisher and the background consumer.
package queue

// InquiryCreatedQueue is the durable queue inquiry events are routed to.
const InquiryCreatedQueue = "inquiry.created"

// InquiryCreatedEvent is published after an inquiry is stored.  It carries
// enough for a consumer to notify the host without querying the database.
type InquiryCreatedEvent struct {
	InquiryID    string `json:"inquiry_id"`
	ListingID    string `json:"listing_id"`
	ListingTitle string `json:"listing_title"`
	HostID       string `json:"host_id,omitempty"`
	SenderID     string `json:"sender_id"`
	Message      string `json:"message"`
	CreatedAt    string `json:"created_at"`
}

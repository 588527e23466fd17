package model

import "time"

// PollOption is a single answer within a poll. Votes is a running
// counter incremented when an attendee votes for the option.
type PollOption struct {
	ID    string `json:"id"`    // poll_options.id
	Text  string `json:"text"`  // poll_options.text
	Votes int    `json:"votes"` // poll_options.votes
}

// Poll is a live audience poll. A user may vote at most once per poll,
// and only while IsOpen is true.
type Poll struct {
	ID        string       `json:"id"`        // polls.id
	Question  string       `json:"question"`  // polls.question
	Options   []PollOption `json:"options"`   // poll_options rows
	IsOpen    bool         `json:"isOpen"`    // polls.is_open
	CreatedAt time.Time    `json:"createdAt"` // polls.created_at
}

// Settings is the singleton application configuration row. Title is
// the conference name snapshotted onto tickets at issuance;
// TicketSalesEnabled gates attendee self-purchase.
type Settings struct {
	Title              string    `json:"title"`              // app_settings.title
	TicketSalesEnabled bool      `json:"ticketSalesEnabled"` // app_settings.ticket_sales_enabled
	UpdatedAt          time.Time `json:"updatedAt"`          // app_settings.updated_at
}

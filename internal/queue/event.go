// Package queue defines the check-in event payload, its publisher and
// the background consumer that writes the attendance log.
package queue

// TicketCheckedInEvent is published when a QR scan newly checks a
// ticket in. It carries enough context for downstream consumers to log
// or notify without querying the primary database.
type TicketCheckedInEvent struct {
	TicketID       string `json:"ticket_id"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	TicketType     string `json:"ticket_type"`
	ConferenceName string `json:"conference_name"`
	QRCodeValue    string `json:"qr_code_value"`
	CheckedInAt    string `json:"checked_in_at"`
}

package utils

import "github.com/google/uuid"

// NewID returns a fresh opaque entity id.
func NewID() string { return uuid.NewString() }

// NewTicketCode returns a globally unique scannable ticket code. The
// TICKET- prefix keeps scanned values recognizable to operators; the
// UUID body guarantees codes are never reused.
func NewTicketCode() string { return "TICKET-" + uuid.NewString() }

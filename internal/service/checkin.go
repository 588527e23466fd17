package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/monitoring"
	"github.com/cphva/cphva-connect/internal/queue"
	"github.com/cphva/cphva-connect/internal/repository"
)

// Operator-facing scan messages. The scanner UI displays these
// verbatim, so their wording is part of the API contract.
const (
	msgInvalidTicket = "Invalid Ticket ID."
	msgStorageError  = "Error validating ticket status."
)

// CheckInResult is what a scan of a QR code produced. Message is ready
// to display to the door operator. Ticket is populated whenever the
// code resolved to a real ticket, including the already-checked-in
// case.
type CheckInResult struct {
	IsValid          bool          `json:"isValid"`
	IsNewlyCheckedIn bool          `json:"isNewlyCheckedIn"`
	Message          string        `json:"message"`
	Ticket           *model.Ticket `json:"ticket,omitempty"`
}

// CheckInService validates scanned QR codes and flips tickets to
// checked-in. When an AMQP URL is configured, each successful check-in
// also publishes a TicketCheckedInEvent; publish failures are logged
// and ignored because the state change has already committed.
type CheckInService struct {
	store   repository.Store
	amqpURL string
}

// NewCheckInService builds a CheckInService. amqpURL may be empty to
// disable event publishing.
func NewCheckInService(store repository.Store, amqpURL string) *CheckInService {
	return &CheckInService{store: store, amqpURL: amqpURL}
}

// ValidateAndCheckIn resolves a scanned code and, when the ticket is
// not yet checked in, atomically marks it checked in. The operation is
// idempotent: rescanning a checked-in badge reports the existing state
// without modifying the ticket, and two concurrent scans of the same
// badge resolve to exactly one "newly checked in" winner.
func (s *CheckInService) ValidateAndCheckIn(ctx context.Context, code string) CheckInResult {
	tickets := s.store.Tickets()

	t, err := tickets.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		monitoring.TrackCheckInScan(monitoring.ScanInvalid)
		return CheckInResult{Message: msgInvalidTicket}
	}
	if err != nil {
		monitoring.TrackCheckInScan(monitoring.ScanError)
		return CheckInResult{Message: msgStorageError}
	}
	if t.IsCheckedIn {
		monitoring.TrackCheckInScan(monitoring.ScanDuplicate)
		return CheckInResult{
			IsValid: true,
			Message: "Ticket already checked in for " + t.UserName + ".",
			Ticket:  &t,
		}
	}

	ts := time.Now().UTC()
	won, err := tickets.CheckInByCode(ctx, code, ts)
	if err != nil {
		monitoring.TrackCheckInScan(monitoring.ScanError)
		return CheckInResult{Message: msgStorageError}
	}
	if !won {
		// A concurrent scan beat us to the flip. Re-read so the
		// response carries the winner's timestamp.
		if cur, err := tickets.GetByCode(ctx, code); err == nil {
			t = cur
		}
		monitoring.TrackCheckInScan(monitoring.ScanDuplicate)
		return CheckInResult{
			IsValid: true,
			Message: "Ticket already checked in for " + t.UserName + ".",
			Ticket:  &t,
		}
	}

	t.IsCheckedIn = true
	t.CheckInTimestamp = &ts
	monitoring.TrackCheckInScan(monitoring.ScanNew)
	s.publishCheckedIn(ctx, t)
	return CheckInResult{
		IsValid:          true,
		IsNewlyCheckedIn: true,
		Message:          "Ticket checked in for " + t.UserName + "!",
		Ticket:           &t,
	}
}

func (s *CheckInService) publishCheckedIn(ctx context.Context, t model.Ticket) {
	if s.amqpURL == "" {
		return
	}
	ev := queue.TicketCheckedInEvent{
		TicketID:       t.ID,
		UserID:         t.UserID,
		UserName:       t.UserName,
		TicketType:     t.TicketType,
		ConferenceName: t.ConferenceName,
		QRCodeValue:    t.QRCodeValue,
		CheckedInAt:    t.CheckInTimestamp.Format(time.RFC3339),
	}
	if err := queue.PublishTicketCheckedIn(ctx, s.amqpURL, ev); err != nil {
		log.Printf("checkin: publish event failed: %v", err)
	}
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketType is a named, priced category of admission ("Standard",
// "VIP"). AvailableQuantity is informational; the original system never
// enforced it at purchase time and neither do we.
type TicketType struct {
	ID                string          `json:"id"`                // ticket_types.id
	Name              string          `json:"name"`              // ticket_types.name (unique)
	Price             decimal.Decimal `json:"price"`             // ticket_types.price
	Description       string          `json:"description"`       // ticket_types.description
	AvailableQuantity *int            `json:"availableQuantity"` // ticket_types.available_quantity (nullable)
}

// Ticket is an issued admission record. UserName, ConferenceName,
// TicketType and TicketPrice are snapshots taken at issuance: they
// describe the ticket as sold and are never updated when the source
// user, ticket type or conference title change afterwards.
//
// Invariant: CheckInTimestamp is non-nil exactly when IsCheckedIn is
// true. Both fields are mutated only by the check-in validator and the
// manual toggle.
type Ticket struct {
	ID               string          `json:"id"`               // tickets.id
	UserID           string          `json:"userId"`           // tickets.user_id
	UserName         string          `json:"userName"`         // tickets.user_name (snapshot)
	ConferenceName   string          `json:"conferenceName"`   // tickets.conference_name (snapshot)
	TicketType       string          `json:"ticketType"`       // tickets.ticket_type (snapshot of type name)
	TicketPrice      decimal.Decimal `json:"ticketPrice"`      // tickets.ticket_price (snapshot)
	PurchaseDate     time.Time       `json:"purchaseDate"`     // tickets.purchase_date
	QRCodeValue      string          `json:"qrCodeValue"`      // tickets.qr_code_value (globally unique)
	IsCheckedIn      bool            `json:"isCheckedIn"`      // tickets.is_checked_in
	CheckInTimestamp *time.Time      `json:"checkInTimestamp"` // tickets.check_in_timestamp (nullable)
}

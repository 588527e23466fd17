// Package monitoring exposes Prometheus counters for ticket issuance
// and check-in scans. Counters are registered via promauto and served
// on /metrics by the router.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Total tickets issued, by ticket type name",
		},
		[]string{"ticket_type"},
	)

	checkInScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkin_scans_total",
			Help: "Total QR check-in scans, by outcome",
		},
		[]string{"result"},
	)
)

// Scan outcomes used as the "result" label.
const (
	ScanNew       = "new"       // ticket newly checked in
	ScanDuplicate = "duplicate" // ticket was already checked in
	ScanInvalid   = "invalid"   // unknown code
	ScanError     = "error"     // storage failure
)

// TrackTicketIssued increments the issuance counter for a type name.
func TrackTicketIssued(ticketType string) {
	ticketsIssued.WithLabelValues(ticketType).Inc()
}

// TrackCheckInScan increments the scan counter for an outcome.
func TrackCheckInScan(result string) {
	checkInScans.WithLabelValues(result).Inc()
}

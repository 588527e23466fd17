package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// AttendanceReport summarizes check-in progress across all tickets.
type AttendanceReport struct {
	TotalTickets int            `json:"totalTickets"`
	CheckedIn    int            `json:"checkedIn"`
	Outstanding  int            `json:"outstanding"`
	Tickets      []model.Ticket `json:"tickets"`
}

// SalesLine is revenue and volume for one ticket type, computed from
// the prices snapshotted onto tickets at issuance.
type SalesLine struct {
	TicketType string          `json:"ticketType"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// SalesReport totals issued tickets by type.
type SalesReport struct {
	TotalTickets int             `json:"totalTickets"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Lines        []SalesLine     `json:"lines"`
}

// ReportService builds admin-facing summaries over the ticket ledger.
type ReportService struct {
	store repository.Store
}

func NewReportService(store repository.Store) *ReportService {
	return &ReportService{store: store}
}

// Attendance returns every ticket plus checked-in totals.
func (s *ReportService) Attendance(ctx context.Context) (AttendanceReport, error) {
	tickets, err := s.store.Tickets().ListAll(ctx)
	if err != nil {
		return AttendanceReport{}, err
	}
	rep := AttendanceReport{TotalTickets: len(tickets), Tickets: tickets}
	for _, t := range tickets {
		if t.IsCheckedIn {
			rep.CheckedIn++
		}
	}
	rep.Outstanding = rep.TotalTickets - rep.CheckedIn
	return rep, nil
}

// Sales aggregates issued tickets into per-type revenue lines, using
// the snapshotted sale prices rather than current catalog prices.
func (s *ReportService) Sales(ctx context.Context) (SalesReport, error) {
	tickets, err := s.store.Tickets().ListAll(ctx)
	if err != nil {
		return SalesReport{}, err
	}
	byType := make(map[string]*SalesLine)
	for _, t := range tickets {
		line, ok := byType[t.TicketType]
		if !ok {
			line = &SalesLine{TicketType: t.TicketType, Revenue: decimal.Zero}
			byType[t.TicketType] = line
		}
		line.Count++
		line.Revenue = line.Revenue.Add(t.TicketPrice)
	}

	rep := SalesReport{TotalTickets: len(tickets), TotalRevenue: decimal.Zero}
	for _, line := range byType {
		rep.TotalRevenue = rep.TotalRevenue.Add(line.Revenue)
		rep.Lines = append(rep.Lines, *line)
	}
	sort.Slice(rep.Lines, func(i, j int) bool {
		return rep.Lines[i].TicketType < rep.Lines[j].TicketType
	})
	return rep, nil
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
)

// ExportService builds the staff reports from already-fetched dashboard data
// and can mail them out.
type ExportService struct {
	email EmailSender
	now   func() time.Time
}

// NewExportService accepts a nil sender; EmailReport then reports that email
// is not configured.
func NewExportService(email EmailSender) *ExportService {
	return &ExportService{email: email, now: time.Now}
}

// NeedsCourts reports whether kind is computed per court.
func NeedsCourts(kind string) bool {
	return kind == entities.ExportUsage || kind == entities.ExportCourtUsage
}

func (s *ExportService) Build(kind string, d entities.AdminDashboard, courts []entities.Court) (*entities.ExportFile, error) {
	switch kind {
	case entities.ExportRevenue:
		rows := [][]string{{"ID", "Court", "Start Time", "End Time", "Cost", "Status"}}
		for _, r := range d.Reservations {
			rows = append(rows, []string{r.ID, strconv.Itoa(r.CourtID), r.StartTime, r.EndTime, money(r.TotalCost), r.Status})
		}
		return csvFile(kind, "monthly_revenue_report.csv", rows)

	case entities.ExportUsage:
		rows := [][]string{{"Court", "Total Bookings"}}
		for _, c := range courts {
			n, _ := courtTotals(c.ID, d.Reservations)
			rows = append(rows, []string{c.Name, strconv.Itoa(n)})
		}
		return csvFile(kind, "usage_analytics.csv", rows)

	case entities.ExportUsers:
		rows := [][]string{{"Username", "Email", "Status"}}
		for _, u := range d.Users {
			rows = append(rows, []string{u.Username, u.Email, u.ResidencyLabel()})
		}
		return csvFile(kind, "user_activity_report.csv", rows)

	case entities.ExportCourtUsage:
		var b strings.Builder
		fmt.Fprintf(&b, "Court Usage Report\n%s\n\n", s.now().Format("Mon Jan 02 2006"))
		for i, c := range courts {
			if i > 0 {
				b.WriteByte('\n')
			}
			n, revenue := courtTotals(c.ID, d.Reservations)
			fmt.Fprintf(&b, "%s: %d bookings, $%s revenue", c.Name, n, money(revenue))
		}
		return &entities.ExportFile{
			Kind:        kind,
			Filename:    "court_usage_report.txt",
			ContentType: "text/plain",
			Body:        []byte(b.String()),
		}, nil
	}
	return nil, apperrors.NewValidationError("kind", fmt.Sprintf("Unknown report %q", kind))
}

// EmailReport sends f as an attachment to the given address.
func (s *ExportService) EmailReport(ctx context.Context, to string, f *entities.ExportFile) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return apperrors.NewValidationError("email", "Please enter a valid email address")
	}
	if s.email == nil {
		return apperrors.NewValidationError("email", "Email delivery is not configured")
	}
	subject := "Wills Park Tennis report: " + f.Filename
	body := fmt.Sprintf("Attached is %s, generated %s.", f.Filename, s.now().Format(time.RFC1123))
	if err := s.email.SendEmail(ctx, addr.Address, subject, body, *f); err != nil {
		return fmt.Errorf("email report: %w", err)
	}
	log.Printf("export: %s emailed to %s", f.Filename, addr.Address)
	return nil
}

func courtTotals(courtID int, reservations []entities.Reservation) (int, float64) {
	var n int
	var revenue float64
	for _, r := range reservations {
		if r.CourtID == courtID {
			n++
			revenue += r.TotalCost
		}
	}
	return n, revenue
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func csvFile(kind, filename string, rows [][]string) (*entities.ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write %s: %w", filename, err)
	}
	return &entities.ExportFile{Kind: kind, Filename: filename, ContentType: "text/csv", Body: buf.Bytes()}, nil
}

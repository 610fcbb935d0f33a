package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"time"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

// Severity tiers for the days-remaining badge. The trichotomy is a fixed
// design constant, not configurable.
const (
	SeverityCritical      = "critical"      // <= 7 days
	SeverityWarning       = "warning"       // <= 14 days
	SeverityInformational = "informational" // <= 30 days
)

// Severity buckets a days-remaining value into one of the three tiers
func Severity(daysLeft int) string {
	switch {
	case daysLeft <= 7:
		return SeverityCritical
	case daysLeft <= 14:
		return SeverityWarning
	default:
		return SeverityInformational
	}
}

func badgeColor(daysLeft int) string {
	switch Severity(daysLeft) {
	case SeverityCritical:
		return "#ef4444"
	case SeverityWarning:
		return "#f59e0b"
	default:
		return "#3b82f6"
	}
}

// Digest is one rendered outbound message
type Digest struct {
	Subject       string
	HTML          string
	ContractCount int
	EmployeeNames []string
}

type digestRow struct {
	EmployeeName string
	Position     string
	Department   string
	EndDate      string
	DaysLeft     int
	BadgeColor   string
	CycleLabel   string
}

// DigestService renders scan results into outbound messages
type DigestService struct{}

func NewDigestService() *DigestService {
	return &DigestService{}
}

// sortEntries orders entries ascending by days remaining (most urgent
// first), breaking ties by employee name so repeated runs over the same
// input produce identical output.
func sortEntries(entries []ExpiringContract) []ExpiringContract {
	sorted := make([]ExpiringContract, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DaysLeft != sorted[j].DaysLeft {
			return sorted[i].DaysLeft < sorted[j].DaysLeft
		}
		return sorted[i].Contract.EmployeeName < sorted[j].Contract.EmployeeName
	})
	return sorted
}

// BuildDigest bundles all of a tenant's scan hits into a single message.
// The subject states the contract count.
func (s *DigestService) BuildDigest(entries []ExpiringContract, now time.Time) (*Digest, error) {
	sorted := sortEntries(entries)

	html, err := s.renderTable(sorted, now)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(sorted))
	for _, e := range sorted {
		names = append(names, e.Contract.EmployeeName)
	}

	return &Digest{
		Subject:       fmt.Sprintf("⚠️ [HR Dashboard] %d Kontrak PKWT Segera Berakhir", len(sorted)),
		HTML:          html,
		ContractCount: len(sorted),
		EmployeeNames: names,
	}, nil
}

// BuildPerContract renders one message per scan hit. Legacy variant kept
// behind the NOTIFY_PER_CONTRACT flag; BuildDigest is the default.
func (s *DigestService) BuildPerContract(entries []ExpiringContract, now time.Time) ([]*Digest, error) {
	sorted := sortEntries(entries)

	digests := make([]*Digest, 0, len(sorted))
	for _, e := range sorted {
		html, err := s.renderTable([]ExpiringContract{e}, now)
		if err != nil {
			return nil, err
		}
		digests = append(digests, &Digest{
			Subject: fmt.Sprintf("⚠️ [HR Dashboard] PKWT %s Segera Berakhir (%d Hari)",
				e.Contract.EmployeeName, e.DaysLeft),
			HTML:          html,
			ContractCount: 1,
			EmployeeNames: []string{e.Contract.EmployeeName},
		})
	}
	return digests, nil
}

func (s *DigestService) renderTable(entries []ExpiringContract, now time.Time) (string, error) {
	rows := make([]digestRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, digestRow{
			EmployeeName: e.Contract.EmployeeName,
			Position:     e.Contract.Position,
			Department:   e.Contract.Department,
			EndDate:      e.Contract.EndDate.Format("02/01/2006"),
			DaysLeft:     e.DaysLeft,
			BadgeColor:   badgeColor(e.DaysLeft),
			CycleLabel:   fmt.Sprintf("PKWT ke-%d", e.Contract.Cycle),
		})
	}

	data := struct {
		Rows []digestRow
		Date string
	}{
		Rows: rows,
		Date: now.Format("Monday, 02 January 2006"),
	}

	tmpl, err := template.ParseFS(emailTemplates, "templates/email/expiring_contracts.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse digest template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute digest template: %w", err)
	}
	return buf.String(), nil
}

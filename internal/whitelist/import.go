package whitelist

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

// ParseCSV reads whitelist entries from a CSV stream. Header names are
// matched case-insensitively and accept the export formats seen in booking
// platforms: Email/email, Name/name, "Booking ID"/bookingId/booking_id.
// Rows missing any required field are skipped.
func ParseCSV(r io.Reader) ([]models.WhitelistEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	emailIdx, nameIdx, bookingIdx := -1, -1, -1
	for i, col := range header {
		switch normalizeHeader(col) {
		case "email":
			emailIdx = i
		case "name":
			nameIdx = i
		case "bookingid":
			bookingIdx = i
		}
	}
	if emailIdx < 0 || nameIdx < 0 || bookingIdx < 0 {
		return nil, fmt.Errorf("csv must have Email, Name and Booking ID columns")
	}

	var entries []models.WhitelistEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if len(record) <= emailIdx || len(record) <= nameIdx || len(record) <= bookingIdx {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(record[emailIdx]))
		name := strings.TrimSpace(record[nameIdx])
		bookingID := strings.TrimSpace(record[bookingIdx])
		if email == "" || name == "" || bookingID == "" {
			continue
		}
		entries = append(entries, models.WhitelistEntry{Email: email, Name: name, BookingID: bookingID})
	}
	return entries, nil
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

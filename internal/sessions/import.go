package sessions

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

// ParseCSV reads sessions from a CSV stream. Required columns are sessionId
// and title; speaker(s), time, room and track fall back to placeholders so
// a partially filled agenda sheet still imports.
func ParseCSV(r io.Reader) ([]models.Session, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := make(map[string]int)
	for i, col := range header {
		idx[normalizeHeader(col)] = i
	}
	sessionIdx, ok := idx["sessionid"]
	if !ok {
		return nil, fmt.Errorf("csv must have a sessionId column")
	}
	titleIdx, ok := idx["title"]
	if !ok {
		return nil, fmt.Errorf("csv must have a title column")
	}

	var list []models.Session
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		sessionID := field(record, sessionIdx)
		title := field(record, titleIdx)
		if sessionID == "" || title == "" {
			continue
		}
		speaker := field(record, pick(idx, "speakers", "speaker"))
		if speaker == "" {
			speaker = "TBA"
		}
		list = append(list, models.Session{
			SessionID: sessionID,
			Title:     title,
			Speaker:   speaker,
			Time:      fieldOr(record, pick(idx, "time"), "TBA"),
			Room:      fieldOr(record, pick(idx, "room"), "TBA"),
			Track:     fieldOr(record, pick(idx, "track"), "General"),
		})
	}
	return list, nil
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func pick(idx map[string]int, names ...string) int {
	for _, n := range names {
		if i, ok := idx[n]; ok {
			return i
		}
	}
	return -1
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func fieldOr(record []string, i int, fallback string) string {
	if v := field(record, i); v != "" {
		return v
	}
	return fallback
}

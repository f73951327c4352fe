package jobs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

// ParseJobsCSV reads job postings from a CSV stream. Title and company are
// required per row; everything else is optional.
func ParseJobsCSV(r io.Reader) ([]models.Job, error) {
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
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	titleIdx, ok := idx["title"]
	if !ok {
		return nil, fmt.Errorf("csv must have a title column")
	}
	companyIdx, ok := idx["company"]
	if !ok {
		return nil, fmt.Errorf("csv must have a company column")
	}

	var list []models.Job
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		title := field(record, titleIdx)
		company := field(record, companyIdx)
		if title == "" || company == "" {
			continue
		}
		list = append(list, models.Job{
			Title:       title,
			Company:     company,
			Location:    field(record, index(idx, "location")),
			Experience:  field(record, index(idx, "experience")),
			Skills:      field(record, index(idx, "skills")),
			Description: field(record, index(idx, "description")),
		})
	}
	return list, nil
}

func index(idx map[string]int, name string) int {
	if i, ok := idx[name]; ok {
		return i
	}
	return -1
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

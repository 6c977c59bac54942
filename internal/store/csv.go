package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/hirewiz/hirewiz/internal/model"
)

// ImportCSV reads candidate rows from r and adds them to dst.
// The expected header is the original CV database layout:
// Name, Phone, Country, Open To, Email, Resume (order-insensitive,
// case-insensitive). Rows with neither a name nor an email are skipped.
// Returns the number of imported candidates.
func ImportCSV(dst model.CandidateStore, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("empty CSV")
	}
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[normalizeHeader(name)] = i
	}
	if _, ok := col["name"]; !ok {
		return 0, fmt.Errorf("CSV header has no Name column")
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		c := model.Candidate{
			Name:    field(record, "name"),
			Phone:   field(record, "phone"),
			Country: field(record, "country"),
			OpenTo:  field(record, "open to"),
			Email:   field(record, "email"),
			Resume:  field(record, "resume"),
		}
		if c.Name == "" && c.Email == "" {
			continue
		}

		if _, err := dst.Add(c); err != nil {
			return imported, fmt.Errorf("importing CSV line %d: %w", line, err)
		}
		imported++
	}

	return imported, nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

package store

import (
	"strings"
	"testing"
)

const sampleCSV = `Name,Phone,Country,Open To,Email,Resume
John Smith,+1-555-0123,United States,"Full-time, Remote",john.smith@email.com,Python and React engineer
Maria Garcia,+44-20-1234-5678,United Kingdom,"Full-time, Hybrid",maria.garcia@email.com,Java and Spring Boot developer
,,,,,
Alex Chen,+86-10-1234-5678,China,"Full-time, On-site",alex.chen@email.com,Node.js full-stack developer
`

func TestImportCSV(t *testing.T) {
	s := newTestStore(t)

	imported, err := ImportCSV(s, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if imported != 3 {
		t.Errorf("imported = %d, want 3 (blank row skipped)", imported)
	}

	candidates, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("len = %d, want 3", len(candidates))
	}
	if candidates[1].OpenTo != "Full-time, Hybrid" {
		t.Errorf("OpenTo = %q, want Full-time, Hybrid", candidates[1].OpenTo)
	}
	if candidates[2].Country != "China" {
		t.Errorf("Country = %q, want China", candidates[2].Country)
	}
}

func TestImportCSV_HeaderCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	csv := "name,EMAIL,open to\nJane Doe,jane@example.com,Contract\n"
	imported, err := ImportCSV(s, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if imported != 1 {
		t.Fatalf("imported = %d, want 1", imported)
	}

	candidates, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if candidates[0].OpenTo != "Contract" {
		t.Errorf("OpenTo = %q, want Contract", candidates[0].OpenTo)
	}
}

func TestImportCSV_MissingNameColumn(t *testing.T) {
	s := newTestStore(t)

	if _, err := ImportCSV(s, strings.NewReader("Email\na@b.c\n")); err == nil {
		t.Fatal("expected error for CSV without a Name column")
	}
}

func TestImportCSV_Empty(t *testing.T) {
	s := newTestStore(t)

	if _, err := ImportCSV(s, strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty CSV")
	}
}

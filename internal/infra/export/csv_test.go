package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitaka/regintake/internal/domain"
)

func TestCSVWriterMatchesFixedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrations.csv")
	w := NewCSVWriter(path)

	regs := domain.Collection{
		{
			ID:               1,
			RegistrationDate: "2026-08-29T10:00:00Z",
			Fields: map[string]string{
				"username": "alice",
				"email":    "a@x.com",
				"team":     "red",
				"shirt":    "XL", // outside the fixed column set, omitted
			},
		},
	}

	if err := w.Write(context.Background(), regs); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact failed: %v", err)
	}

	want := "ID,Username,Email,Team,Registration Date\n1,alice,a@x.com,red,2026-08-29T10:00:00Z"
	if string(data) != want {
		t.Fatalf("artifact mismatch:\ngot  %q\nwant %q", string(data), want)
	}
}

func TestCSVWriterLineCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrations.csv")
	w := NewCSVWriter(path)

	regs := domain.Collection{
		{ID: 1, RegistrationDate: "2026-08-29T10:00:00Z", Fields: map[string]string{"username": "alice"}},
		{ID: 2, RegistrationDate: "2026-08-29T10:01:00Z", Fields: map[string]string{"username": "bob"}},
		{ID: 3, RegistrationDate: "2026-08-29T10:02:00Z", Fields: map[string]string{"username": "carol"}},
	}

	if err := w.Write(context.Background(), regs); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact failed: %v", err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header + 3 records) got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,alice") {
		t.Fatalf("unexpected first record line: %q", lines[1])
	}
}

func TestCSVWriterEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrations.csv")
	w := NewCSVWriter(path)

	if err := w.Write(context.Background(), domain.Collection{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact failed: %v", err)
	}
	if string(data) != "ID,Username,Email,Team,Registration Date" {
		t.Fatalf("expected header only, got %q", string(data))
	}
}

func TestCSVWriterOverwritesPriorArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrations.csv")
	w := NewCSVWriter(path)

	long := domain.Collection{
		{ID: 1, RegistrationDate: "2026-08-29T10:00:00Z", Fields: map[string]string{"username": "alice"}},
		{ID: 2, RegistrationDate: "2026-08-29T10:01:00Z", Fields: map[string]string{"username": "bob"}},
	}
	if err := w.Write(context.Background(), long); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	short := long[:1]
	if err := w.Write(context.Background(), short); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact failed: %v", err)
	}
	if strings.Contains(string(data), "bob") {
		t.Fatalf("expected full regeneration, stale record remains: %q", string(data))
	}
}

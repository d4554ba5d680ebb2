package export

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mitaka/regintake/internal/domain"
)

const csvHeader = "ID,Username,Email,Team,Registration Date"

// CSVWriter regenerates the delimited-text artifact: the fixed header
// plus one comma-joined line per record. Values are written as-is with
// no quoting or escaping, so embedded delimiters corrupt their row.
// That fragility is part of the artifact contract and is kept
// byte-for-byte rather than fixed.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

func (w *CSVWriter) Name() string { return "csv" }

func (w *CSVWriter) Write(ctx context.Context, regs domain.Collection) error {
	lines := make([]string, 0, len(regs)+1)
	lines = append(lines, csvHeader)
	for _, reg := range regs {
		lines = append(lines, strings.Join([]string{
			strconv.Itoa(reg.ID),
			reg.Field("username"),
			reg.Field("email"),
			reg.Field("team"),
			reg.RegistrationDate,
		}, ","))
	}

	if err := os.WriteFile(w.path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return errors.Wrap(err, "writing csv artifact")
	}
	return nil
}

// Package export renders questions as downloadable documents.
package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
)

// Header is the column row of a question export.
var Header = []string{"id", "title", "description", "solution", "difficulty", "company", "tags", "solved"}

// CSVWriter writes questions one row at a time. Unlike encoding/csv it
// quotes every field, so exports look the same whatever the content.
type CSVWriter struct {
	w *bufio.Writer
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the unquoted column row.
func (c *CSVWriter) WriteHeader() error {
	_, err := c.w.WriteString(strings.Join(Header, ",") + "\n")
	return err
}

// Write appends one question and flushes it to the underlying writer.
func (c *CSVWriter) Write(q domain.Question) error {
	solved := "0"
	if q.Solved {
		solved = "1"
	}
	return c.WriteRecord([]*string{
		ptr(strconv.FormatInt(q.ID, 10)),
		&q.Title,
		&q.Description,
		&q.Solution,
		&q.Difficulty,
		&q.Company,
		&q.Tags,
		&solved,
	})
}

// WriteRecord writes a raw record; nil values become an empty quoted field.
func (c *CSVWriter) WriteRecord(fields []*string) error {
	for i, f := range fields {
		if i > 0 {
			if err := c.w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := c.w.WriteString(Quote(f)); err != nil {
			return err
		}
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return err
	}
	return c.w.Flush()
}

// Flush writes any buffered data.
func (c *CSVWriter) Flush() error {
	return c.w.Flush()
}

// Quote wraps a value in double quotes, doubling embedded quotes.
func Quote(v *string) string {
	if v == nil {
		return `""`
	}
	return `"` + strings.ReplaceAll(*v, `"`, `""`) + `"`
}

func ptr(s string) *string { return &s }

package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/interview-tracker/pkg/adapters/export"
	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
)

func TestQuote(t *testing.T) {
	title := `He said "hi"`
	empty := ""

	assert.Equal(t, `"He said ""hi"""`, export.Quote(&title))
	assert.Equal(t, `""`, export.Quote(&empty))
	assert.Equal(t, `""`, export.Quote(nil))
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(domain.Question{
		ID:          7,
		Title:       `He said "hi"`,
		Description: "line one\nline two",
		Solution:    "a, b",
		Difficulty:  "Easy",
		Company:     "Google",
		Tags:        "arrays, dp",
		Solved:      true,
	}))

	lines := strings.SplitN(buf.String(), "\n", 2)
	assert.Equal(t, "id,title,description,solution,difficulty,company,tags,solved", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"7","He said ""hi""","line one`))
	assert.True(t, strings.HasSuffix(buf.String(), `"arrays, dp","1"`+"\n"))
}

func TestCSVWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)
	q := domain.Question{
		ID:          1,
		Title:       `He said "hi"`,
		Description: "multi\nline, with comma",
		Solution:    `"quoted"`,
		Difficulty:  "Hard",
		Company:     "Meta",
		Tags:        "graph",
	}
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(q))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, export.Header, records[0])
	assert.Equal(t, []string{"1", q.Title, q.Description, q.Solution, "Hard", "Meta", "graph", "0"}, records[1])
}

func TestCSVWriter_NilField(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)
	v := "x"

	require.NoError(t, w.WriteRecord([]*string{&v, nil}))
	assert.Equal(t, `"x",""`+"\n", buf.String())
}

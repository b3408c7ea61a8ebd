package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/interview-tracker/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/interview-tracker/pkg/core/services"
)

func newService(t *testing.T) *services.QuestionService {
	t.Helper()
	repo, err := sqlite.NewSQLiteRepository("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return services.NewQuestionService(repo)
}

func validInput() domain.QuestionInput {
	return domain.QuestionInput{
		Title:       "  Two Sum ",
		Description: "Find two numbers adding up to target",
		Solution:    "Hash map of complements",
		Difficulty:  "Easy",
		Company:     " Google ",
		Tags:        " Arrays, dp ,Arrays",
	}
}

func TestCreate_NormalizesAndStartsUnsolved(t *testing.T) {
	svc := newService(t)
	in := validInput()
	in.Solved = true

	q, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.NotZero(t, q.ID)
	assert.Equal(t, "Two Sum", q.Title)
	assert.Equal(t, "Google", q.Company)
	assert.Equal(t, "arrays, dp", q.Tags)
	assert.False(t, q.Solved)

	stored, err := svc.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.False(t, stored.Solved)
}

func TestCreate_RequiresEveryField(t *testing.T) {
	fields := map[string]func(*domain.QuestionInput){
		"title":       func(in *domain.QuestionInput) { in.Title = "   " },
		"description": func(in *domain.QuestionInput) { in.Description = "" },
		"solution":    func(in *domain.QuestionInput) { in.Solution = "\t" },
		"difficulty":  func(in *domain.QuestionInput) { in.Difficulty = "" },
		"company":     func(in *domain.QuestionInput) { in.Company = "" },
		"tags":        func(in *domain.QuestionInput) { in.Tags = " , ," },
	}

	for field, mutate := range fields {
		t.Run(field, func(t *testing.T) {
			svc := newService(t)
			in := validInput()
			mutate(&in)

			_, err := svc.Create(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrValidation)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{field}, verr.Fields)

			stats, err := svc.Stats(context.Background())
			require.NoError(t, err)
			assert.Zero(t, stats.Total)
		})
	}
}

func TestUpdate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	q, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Title = "Three Sum"
	in.Tags = "Two Pointers, arrays"
	in.Solved = true
	updated, err := svc.Update(ctx, q.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Three Sum", updated.Title)
	assert.Equal(t, "two pointers, arrays", updated.Tags)
	assert.True(t, updated.Solved)

	in.Solved = false
	updated, err = svc.Update(ctx, q.ID, in)
	require.NoError(t, err)
	assert.False(t, updated.Solved)
}

func TestUpdate_Errors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	q, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, 999, validInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := validInput()
	bad.Solution = ""
	_, err = svc.Update(ctx, q.ID, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hash map of complements", stored.Solution)
}

func TestToggleSolved_IsItsOwnInverse(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	q, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	first, err := svc.ToggleSolved(ctx, q.ID)
	require.NoError(t, err)
	second, err := svc.ToggleSolved(ctx, q.ID)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)

	_, err = svc.ToggleSolved(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_OptionsIgnoreFilter(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	google := validInput()
	meta := validInput()
	meta.Company = "Meta"
	meta.Tags = "design"
	_, err := svc.Create(ctx, google)
	require.NoError(t, err)
	_, err = svc.Create(ctx, meta)
	require.NoError(t, err)

	res, err := svc.List(ctx, domain.Filter{Company: "Google"})
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, "Google", res.Questions[0].Company)
	assert.Equal(t, []string{"Google", "Meta"}, res.Options.Companies)
	assert.Equal(t, []string{"arrays", "design", "dp"}, res.Options.Tags)
}

func TestStats(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, d := range []string{"Easy", "Easy", "Hard"} {
		in := validInput()
		in.Difficulty = d
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, map[string]int64{"Easy": 2, "Hard": 1}, stats.ByDifficulty)
	assert.Equal(t, []domain.DifficultyCount{
		{Label: "Easy", Count: 2},
		{Label: "Medium", Count: 0},
		{Label: "Hard", Count: 1},
	}, stats.Buckets())
}

func TestRandomID_Empty(t *testing.T) {
	svc := newService(t)

	_, err := svc.RandomID(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportCSV(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	in := validInput()
	in.Title = `He said "hi"`
	first, err := svc.Create(ctx, in)
	require.NoError(t, err)
	second, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))
	assert.Contains(t, buf.String(), `"He said ""hi"""`)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, `He said "hi"`, records[1][1])
	assert.Equal(t, []string{"1", "2"}, []string{records[1][0], records[2][0]})
	assert.Less(t, first.ID, second.ID)
}

func TestDump(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	empty, err := svc.Dump(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.Create(ctx, validInput())
	require.NoError(t, err)
	all, err := svc.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

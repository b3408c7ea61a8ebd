package ports

import (
	"context"
	"io"

	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
)

// QuestionRepository defines storage operations for questions
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) error
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	Update(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id int64) error // Hard delete, no error when absent
	ToggleSolved(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter domain.Filter) ([]domain.Question, error)
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
	Stats(ctx context.Context) (*domain.Stats, error)
	RandomID(ctx context.Context) (int64, error)
	// Each calls fn for every question in ascending id order, stopping at the first error.
	Each(ctx context.Context, fn func(domain.Question) error) error
}

// ListResult is a filtered listing plus the filter choices
type ListResult struct {
	Questions []domain.Question    `json:"data"`
	Options   domain.FilterOptions `json:"options"`
}

// QuestionService defines the business logic operations
type QuestionService interface {
	Create(ctx context.Context, in domain.QuestionInput) (*domain.Question, error)
	Get(ctx context.Context, id int64) (*domain.Question, error)
	Update(ctx context.Context, id int64, in domain.QuestionInput) (*domain.Question, error)
	Delete(ctx context.Context, id int64) error
	ToggleSolved(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter domain.Filter) (*ListResult, error)
	Stats(ctx context.Context) (*domain.Stats, error)
	RandomID(ctx context.Context) (int64, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	Dump(ctx context.Context) ([]domain.Question, error)
}

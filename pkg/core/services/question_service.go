package services

import (
	"context"
	"io"

	"github.com/wadjakorntonsri/interview-tracker/pkg/adapters/export"
	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/interview-tracker/pkg/ports"
)

type QuestionService struct {
	repo ports.QuestionRepository
}

func NewQuestionService(repo ports.QuestionRepository) *QuestionService {
	return &QuestionService{repo: repo}
}

// Create stores a new question. New questions always start unsolved.
func (s *QuestionService) Create(ctx context.Context, in domain.QuestionInput) (*domain.Question, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	q := &domain.Question{
		Title:       in.Title,
		Description: in.Description,
		Solution:    in.Solution,
		Difficulty:  in.Difficulty,
		Company:     in.Company,
		Tags:        in.Tags,
		Solved:      false,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces all editable fields, including solved.
func (s *QuestionService) Update(ctx context.Context, id int64, in domain.QuestionInput) (*domain.Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	q.Title = in.Title
	q.Description = in.Description
	q.Solution = in.Solution
	q.Difficulty = in.Difficulty
	q.Company = in.Company
	q.Tags = in.Tags
	q.Solved = in.Solved

	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *QuestionService) ToggleSolved(ctx context.Context, id int64) (bool, error) {
	return s.repo.ToggleSolved(ctx, id)
}

func (s *QuestionService) List(ctx context.Context, filter domain.Filter) (*ports.ListResult, error) {
	questions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts, err := s.repo.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult{Questions: questions, Options: *opts}, nil
}

func (s *QuestionService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.repo.Stats(ctx)
}

// RandomID picks any question uniformly; domain.ErrNotFound when there are none.
func (s *QuestionService) RandomID(ctx context.Context) (int64, error) {
	return s.repo.RandomID(ctx)
}

// ExportCSV streams every question, oldest first, as CSV.
func (s *QuestionService) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := export.NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := s.repo.Each(ctx, cw.Write); err != nil {
		return err
	}
	return cw.Flush()
}

// Dump returns every question in id order, for migration.
func (s *QuestionService) Dump(ctx context.Context) ([]domain.Question, error) {
	questions := []domain.Question{}
	err := s.repo.Each(ctx, func(q domain.Question) error {
		questions = append(questions, q)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Ensure interface compliance
var _ ports.QuestionService = (*QuestionService)(nil)

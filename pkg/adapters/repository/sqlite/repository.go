package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/interview-tracker/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite" {
		// One writer at a time; avoids SQLITE_BUSY on the local file.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		solution TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		company TEXT NOT NULL,
		tags TEXT NOT NULL,
		solved INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions(difficulty);
	CREATE INDEX IF NOT EXISTS idx_questions_company ON questions(company);
	CREATE INDEX IF NOT EXISTS idx_questions_solved ON questions(solved);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(s rowScanner) (domain.Question, error) {
	var q domain.Question
	err := s.Scan(&q.ID, &q.Title, &q.Description, &q.Solution, &q.Difficulty, &q.Company, &q.Tags, &q.Solved)
	return q, err
}

func (r *SQLiteRepository) Create(ctx context.Context, q *domain.Question) error {
	query := `INSERT INTO questions (title, description, solution, difficulty, company, tags, solved)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, q.Title, q.Description, q.Solution, q.Difficulty, q.Company, q.Tags, q.Solved)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	q.ID = id
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ?`

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	return &q, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, q *domain.Question) error {
	query := `UPDATE questions SET title = ?, description = ?, solution = ?, difficulty = ?,
			  company = ?, tags = ?, solved = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, q.Title, q.Description, q.Solution, q.Difficulty, q.Company, q.Tags, q.Solved, q.ID)
	if err != nil {
		return fmt.Errorf("update question %d: %w", q.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

// ToggleSolved flips the solved flag inside one transaction, so concurrent
// toggles resolve as last-write-wins rather than interleaving.
func (r *SQLiteRepository) ToggleSolved(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var solved bool
	err = tx.QueryRowContext(ctx, `SELECT solved FROM questions WHERE id = ?`, id).Scan(&solved)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("read solved %d: %w", id, err)
	}

	solved = !solved
	if _, err := tx.ExecContext(ctx, `UPDATE questions SET solved = ? WHERE id = ?`, solved, id); err != nil {
		return false, fmt.Errorf("toggle solved %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return solved, nil
}

func (r *SQLiteRepository) List(ctx context.Context, filter domain.Filter) ([]domain.Question, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// FilterOptions returns all distinct companies and tag tokens, sorted,
// regardless of any active listing filter.
func (r *SQLiteRepository) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	opts := &domain.FilterOptions{Companies: []string{}, Tags: []string{}, Difficulties: []string{}}

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT company FROM questions ORDER BY company`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var company string
		if err := rows.Scan(&company); err != nil {
			return nil, err
		}
		opts.Companies = append(opts.Companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows2, err := r.db.QueryContext(ctx, `SELECT tags FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows2.Close()
	seen := make(map[string]struct{})
	for rows2.Next() {
		var tags string
		if err := rows2.Scan(&tags); err != nil {
			return nil, err
		}
		for _, tag := range domain.SplitTags(tags) {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				opts.Tags = append(opts.Tags, tag)
			}
		}
	}
	if err := rows2.Err(); err != nil {
		return nil, err
	}
	sort.Strings(opts.Tags)
	rows2.Close()

	rows3, err := r.db.QueryContext(ctx, `SELECT DISTINCT difficulty FROM questions ORDER BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("list difficulties: %w", err)
	}
	defer rows3.Close()
	for rows3.Next() {
		var difficulty string
		if err := rows3.Scan(&difficulty); err != nil {
			return nil, err
		}
		opts.Difficulties = append(opts.Difficulties, difficulty)
	}
	if err := rows3.Err(); err != nil {
		return nil, err
	}

	return opts, nil
}

func (r *SQLiteRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{ByDifficulty: make(map[string]int64)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN solved THEN 1 ELSE 0 END), 0) FROM questions`,
	).Scan(&stats.Total, &stats.Solved)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	stats.Unsolved = stats.Total - stats.Solved

	rows, err := r.db.QueryContext(ctx, `SELECT difficulty, COUNT(*) FROM questions GROUP BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("count by difficulty: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var difficulty string
		var count int64
		if err := rows.Scan(&difficulty, &count); err != nil {
			return nil, err
		}
		stats.ByDifficulty[difficulty] = count
	}
	return stats, rows.Err()
}

func (r *SQLiteRepository) RandomID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM questions ORDER BY RANDOM() LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("random question: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Each(ctx context.Context, fn func(domain.Question) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("scan questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return err
		}
		if err := fn(q); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Ensure interface compliance
var _ ports.QuestionRepository = (*SQLiteRepository)(nil)

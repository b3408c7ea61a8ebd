package sqlite

import (
	"strings"

	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
)

const questionColumns = `id, title, description, solution, difficulty, company, tags, solved`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a literal substring pattern for LIKE ... ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// buildListQuery translates a filter into a single SELECT. Each set filter
// adds one AND-ed term, unset filters add nothing. SQLite LIKE folds ASCII
// case only, so terms matched against the lowercased tags column are
// lowercased here.
func buildListQuery(f domain.Filter) (string, []interface{}) {
	query := `SELECT ` + questionColumns + ` FROM questions`
	var conds []string
	args := []interface{}{}

	if f.Search != "" {
		p := likePattern(f.Search)
		conds = append(conds, `(title LIKE ? ESCAPE '\' OR company LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\')`)
		args = append(args, p, p, p, likePattern(strings.ToLower(f.Search)))
	}
	if f.Difficulty != "" {
		conds = append(conds, "difficulty = ?")
		args = append(args, f.Difficulty)
	}
	if f.Company != "" {
		conds = append(conds, "company = ?")
		args = append(args, f.Company)
	}
	if f.Tag != "" {
		conds = append(conds, `tags LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(strings.ToLower(f.Tag)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY solved ASC, id DESC"
	return query, args
}

package domain

// Question represents a tracked interview practice problem
type Question struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Solution    string `json:"solution"`
	Difficulty  string `json:"difficulty"`
	Company     string `json:"company"`
	Tags        string `json:"tags"` // Normalized, see NormalizeTags
	Solved      bool   `json:"solved"`
}

// TagList returns the individual tags of the question.
func (q Question) TagList() []string {
	return SplitTags(q.Tags)
}

// QuestionInput carries the user-editable fields of a question.
// Solved is ignored on create.
type QuestionInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Solution    string `json:"solution" validate:"required"`
	Difficulty  string `json:"difficulty" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Tags        string `json:"tags" validate:"required"`
	Solved      bool   `json:"solved"`
}

// Filter narrows a question listing. Empty fields are not applied.
type Filter struct {
	Search     string `json:"q,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Company    string `json:"company,omitempty"`
	Tag        string `json:"tag,omitempty"`
}

// IsEmpty reports whether no filter term is set.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Difficulty == "" && f.Company == "" && f.Tag == ""
}

// FilterOptions lists the values offered by the listing filters.
type FilterOptions struct {
	Companies    []string `json:"companies"`
	Tags         []string `json:"tags"`
	Difficulties []string `json:"difficulties"` // Stored values, standard or not
}

// Difficulties are the labels shown in the fixed difficulty breakdown.
var Difficulties = []string{"Easy", "Medium", "Hard"}

// DifficultyChoices returns the standard labels followed by any other
// non-empty values in extra, so a stored difficulty can always be selected.
func DifficultyChoices(extra ...string) []string {
	choices := append([]string{}, Difficulties...)
	for _, d := range extra {
		if d == "" || contains(choices, d) {
			continue
		}
		choices = append(choices, d)
	}
	return choices
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

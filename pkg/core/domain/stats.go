package domain

// Stats summarises the whole question set
type Stats struct {
	Total        int64            `json:"total"`
	Solved       int64            `json:"solved"`
	Unsolved     int64            `json:"unsolved"`
	ByDifficulty map[string]int64 `json:"by_difficulty"`
}

// DifficultyCount is one bar of the difficulty chart
type DifficultyCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Buckets maps the fixed Easy/Medium/Hard labels to their counts.
// Difficulties outside these labels are not included.
func (s Stats) Buckets() []DifficultyCount {
	out := make([]DifficultyCount, 0, len(Difficulties))
	for _, label := range Difficulties {
		out = append(out, DifficultyCount{Label: label, Count: s.ByDifficulty[label]})
	}
	return out
}

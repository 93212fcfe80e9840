package domain

// Pack is a pest-treatment service category, fixed for a session.
type Pack struct {
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Duration string   `json:"duration"`
	Details  []string `json:"details,omitempty"`
}

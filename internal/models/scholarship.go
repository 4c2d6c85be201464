package models

// Requirements carries the numeric eligibility thresholds of a domestic
// scholarship.
type Requirements struct {
	Percentage float64 `json:"percentage"`
	Income     float64 `json:"income"`
}

type DomesticScholarship struct {
	Name            string       `json:"scholarship_name"`
	Description     string       `json:"description"`
	Location        string       `json:"location"`
	Deadline        string       `json:"deadline"`
	Amount          string       `json:"amount"`
	ApplicationLink string       `json:"application_link"`
	Requirements    Requirements `json:"requirements"`
}

type InternationalScholarship struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Deadline        string `json:"deadline"`
	Amount          string `json:"amount"`
	Location        string `json:"location"`
	ApplicationLink string `json:"application_link"`
}

// SearchHit is a scholarship name matched by keyword or fuzzy search.
type SearchHit struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

package filter

import (
	"fmt"
	"strings"

	"scholarhub/internal/dataset"
	"scholarhub/internal/models"
)

// International dataset columns.
const (
	ColIntlName        = "Scholarship Name"
	ColIntlDescription = "Description"
	ColIntlDeadline    = "Deadline"
	ColIntlAmount      = "Amount"
	ColIntlLocation    = "Location"
	ColIntlLink        = "Link"
	ColIntlYears       = "Years"
)

// FilterInternational keeps the rows whose Years list mentions the requested
// year. Without a year every row is returned.
func FilterInternational(t *dataset.Table, c Criteria) Result[models.InternationalScholarship] {
	res := Result[models.InternationalScholarship]{Matches: []models.InternationalScholarship{}}
	if t == nil {
		return res
	}

	year := ""
	if v, ok := c["year"]; ok && !isUnset(v) {
		if s, ok := toText(v); ok {
			year = strings.TrimSpace(s)
		}
	}
	if year != "" && !t.HasColumn(ColIntlYears) {
		year = ""
	}

	for i, row := range t.Rows {
		if year != "" {
			years, _ := row.Get(ColIntlYears)
			if !strings.Contains(years, year) {
				continue
			}
		}
		s, err := projectInternational(row)
		if err != nil {
			res.skip(i, err.Error())
			continue
		}
		res.Matches = append(res.Matches, s)
	}
	return res
}

func projectInternational(row dataset.Row) (models.InternationalScholarship, error) {
	name, _ := row.Get(ColIntlName)
	if name == "" {
		return models.InternationalScholarship{}, fmt.Errorf("missing %s", ColIntlName)
	}
	return models.InternationalScholarship{
		Name:            name,
		Description:     valueOr(row, ColIntlDescription, "No description available"),
		Deadline:        valueOr(row, ColIntlDeadline, "Contact institution"),
		Amount:          valueOr(row, ColIntlAmount, "Variable"),
		Location:        valueOr(row, ColIntlLocation, "International"),
		ApplicationLink: valueOr(row, ColIntlLink, "#"),
	}, nil
}

func valueOr(row dataset.Row, column, def string) string {
	if v, _ := row.Get(column); v != "" {
		return v
	}
	return def
}

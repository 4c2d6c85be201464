package filter

import (
	"fmt"
	"strconv"
	"strings"

	"scholarhub/internal/dataset"
	"scholarhub/internal/models"
)

// Domestic dataset columns.
const (
	ColEducation  = "Education Qualification"
	ColGender     = "Gender"
	ColCommunity  = "Community"
	ColReligion   = "Religion"
	ColExService  = "Exservice-men"
	ColDisability = "Disability"
	ColSports     = "Sports"
	ColPercentage = "Annual-Percentage"
	ColIncome     = "Income"
	ColOutcome    = "Outcome"
	ColName       = "Name"
)

type matchKind int

const (
	matchText matchKind = iota
	matchFlag
	// matchCeiling keeps rows whose cell is <= the supplied number.
	matchCeiling
)

type criterion struct {
	key    string
	column string
	kind   matchKind
}

var domesticCriteria = []criterion{
	{"education", ColEducation, matchText},
	{"gender", ColGender, matchText},
	{"community", ColCommunity, matchText},
	{"religion", ColReligion, matchText},
	{"isExServiceman", ColExService, matchFlag},
	{"hasDisability", ColDisability, matchFlag},
	{"hasSportsAchievements", ColSports, matchFlag},
	{"annualPercentage", ColPercentage, matchCeiling},
	{"income", ColIncome, matchCeiling},
}

// constraint is a criterion bound to the value supplied in a request.
type constraint struct {
	column string
	kind   matchKind
	text   string
	num    float64
}

// test reports whether row satisfies the constraint. An error means the cell
// could not be interpreted and the row should be skipped.
func (c constraint) test(row dataset.Row) (bool, error) {
	cell, _ := row.Get(c.column)
	switch c.kind {
	case matchCeiling:
		if cell == "" {
			return false, nil
		}
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return false, fmt.Errorf("%s: non-numeric value %q", c.column, cell)
		}
		return f <= c.num, nil
	default:
		return sameText(cell, c.text), nil
	}
}

// domesticConstraints binds recognized criteria to the columns the table
// actually has. Unknown keys, null sentinels and non-numeric values for
// numeric criteria are ignored.
func domesticConstraints(t *dataset.Table, c Criteria) []constraint {
	var out []constraint
	for _, cr := range domesticCriteria {
		v, ok := c[cr.key]
		if !ok || isUnset(v) || !t.HasColumn(cr.column) {
			continue
		}
		switch cr.kind {
		case matchCeiling:
			n, ok := toNumber(v)
			if !ok {
				continue
			}
			out = append(out, constraint{column: cr.column, kind: cr.kind, num: n})
		case matchFlag:
			out = append(out, constraint{column: cr.column, kind: cr.kind, text: toFlag(v)})
		default:
			s, ok := toText(v)
			if !ok {
				continue
			}
			out = append(out, constraint{column: cr.column, kind: cr.kind, text: s})
		}
	}
	return out
}

// FilterDomestic returns the offered scholarships in t that satisfy every
// recognized criterion.
func FilterDomestic(t *dataset.Table, c Criteria) Result[models.DomesticScholarship] {
	res := Result[models.DomesticScholarship]{Matches: []models.DomesticScholarship{}}
	if t == nil {
		return res
	}
	constraints := domesticConstraints(t, c)
	hasOutcome := t.HasColumn(ColOutcome)

rows:
	for i, row := range t.Rows {
		for _, con := range constraints {
			ok, err := con.test(row)
			if err != nil {
				res.skip(i, err.Error())
				continue rows
			}
			if !ok {
				continue rows
			}
		}
		if hasOutcome && !isOffered(row) {
			continue
		}
		s, err := projectDomestic(row)
		if err != nil {
			res.skip(i, err.Error())
			continue
		}
		res.Matches = append(res.Matches, s)
	}
	return res
}

func isOffered(row dataset.Row) bool {
	v, _ := row.Get(ColOutcome)
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f == 1
	}
	switch strings.ToLower(v) {
	case "yes", "true":
		return true
	}
	return false
}

// optionalNumber parses a numeric cell; empty or missing cells read as zero.
func optionalNumber(row dataset.Row, column string) (float64, error) {
	v, _ := row.Get(column)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: non-numeric value %q", column, v)
	}
	return f, nil
}

func projectDomestic(row dataset.Row) (models.DomesticScholarship, error) {
	var out models.DomesticScholarship

	name, _ := row.Get(ColName)
	if name == "" {
		return out, fmt.Errorf("missing %s", ColName)
	}
	percentage, err := optionalNumber(row, ColPercentage)
	if err != nil {
		return out, err
	}
	income, err := optionalNumber(row, ColIncome)
	if err != nil {
		return out, err
	}

	var parts []string
	labelled := []struct{ label, column string }{
		{"Education", ColEducation},
		{"Gender", ColGender},
		{"Community", ColCommunity},
		{"Religion", ColReligion},
	}
	for _, l := range labelled {
		if v, _ := row.Get(l.column); v != "" {
			parts = append(parts, l.label+": "+v)
		}
	}
	// Zero-valued requirements are left out of the description.
	if percentage != 0 {
		v, _ := row.Get(ColPercentage)
		parts = append(parts, "Annual Percentage: "+v)
	}
	if income != 0 {
		v, _ := row.Get(ColIncome)
		parts = append(parts, "Income: "+v)
	}
	flags := []struct{ column, text string }{
		{ColExService, "Ex-Serviceman"},
		{ColDisability, "Person with Disability"},
		{ColSports, "Sports Achievement"},
	}
	for _, f := range flags {
		if v, _ := row.Get(f.column); v == "Yes" {
			parts = append(parts, f.text)
		}
	}

	var eligibility []string
	if percentage != 0 {
		eligibility = append(eligibility, "Minimum percentage required: "+formatDecimal(percentage)+"%")
	}
	if income != 0 {
		eligibility = append(eligibility, "Minimum family income required: "+formatDecimal(income)+" Lakhs")
	}
	if len(eligibility) > 0 {
		parts = append(parts, "Eligibility Requirements: "+strings.Join(eligibility, ", "))
	}

	out = models.DomesticScholarship{
		Name:            name,
		Description:     strings.Join(parts, ", "),
		Location:        "India",
		Deadline:        "Contact institution",
		Amount:          "Variable",
		ApplicationLink: "#",
		Requirements:    models.Requirements{Percentage: percentage, Income: income},
	}
	return out, nil
}

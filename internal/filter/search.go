package filter

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"scholarhub/internal/dataset"
	"scholarhub/internal/models"
)

// FuzzyThreshold is the minimum Jaro-Winkler similarity for a name to count
// as a fuzzy hit.
const FuzzyThreshold = 0.85

type SearchResult struct {
	Domestic      []models.SearchHit `json:"domestic"`
	International []models.SearchHit `json:"international"`
}

// Search looks for query in both datasets. A row is a hit when any cell
// contains the query (case-insensitive) or its name is a close fuzzy match.
// limit <= 0 means no limit.
func Search(ds *dataset.Datasets, query string, limit int) SearchResult {
	res := SearchResult{Domestic: []models.SearchHit{}, International: []models.SearchHit{}}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || ds == nil {
		return res
	}
	metric := metrics.NewJaroWinkler()
	res.Domestic = searchTable(ds.Domestic, ColName, q, metric, limit)
	res.International = searchTable(ds.International, ColIntlName, q, metric, limit)
	return res
}

func searchTable(t *dataset.Table, nameColumn, q string, metric strutil.StringMetric, limit int) []models.SearchHit {
	hits := []models.SearchHit{}
	if t == nil {
		return hits
	}
	seen := map[string]bool{}
	for _, row := range t.Rows {
		name, _ := row.Get(nameColumn)
		if name == "" || seen[name] {
			continue
		}
		lname := strings.ToLower(name)

		score := strutil.Similarity(q, lname, metric)
		if strings.Contains(lname, q) {
			score = 1
		} else if score < FuzzyThreshold && !rowContains(row, q) {
			continue
		}
		seen[name] = true
		hits = append(hits, models.SearchHit{Name: name, Score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func rowContains(row dataset.Row, q string) bool {
	for _, v := range row {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

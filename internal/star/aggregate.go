package star

import (
	"sort"

	"github.com/hpungsan/starred/internal/errors"
)

// SortMode controls within-group ordering.
type SortMode string

const (
	SortByDate  SortMode = "date"  // default: ascending fetch order (newest star first)
	SortByName  SortMode = "name"  // ascending repository name
	SortByStars SortMode = "stars" // descending star count, stable on ties
)

// ParseSortMode validates a sort mode string.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortByDate, SortByName, SortByStars:
		return SortMode(s), nil
	}
	return "", errors.NewInvalidRequest("sort must be one of: date, name, stars")
}

// List is the aggregated view of a fetched star set: language keys in
// lexicographic ascending order, per-language records in the selected sort
// order, and the grand total.
type List struct {
	Languages []string
	Groups    map[string][]Record
	Total     int
}

// Aggregate groups records by language and sorts each group by mode.
// Records without a language land in LanguageOthers. Descriptions are
// sanitized on the way in; input records are not mutated.
func Aggregate(records []Record, mode SortMode) *List {
	groups := make(map[string][]Record)
	for _, r := range records {
		if r.Language == "" {
			r.Language = LanguageOthers
		}
		r.Description = Sanitize(r.Description)
		groups[r.Language] = append(groups[r.Language], r)
	}

	languages := make([]string, 0, len(groups))
	for lang := range groups {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	for _, lang := range languages {
		sortGroup(groups[lang], mode)
	}

	return &List{
		Languages: languages,
		Groups:    groups,
		Total:     len(records),
	}
}

// sortGroup orders one language group in place. Stable sorts keep the
// relative fetch order among equal keys.
func sortGroup(group []Record, mode SortMode) {
	switch mode {
	case SortByName:
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Name < group[j].Name
		})
	case SortByStars:
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Stars > group[j].Stars
		})
	default: // SortByDate
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Order < group[j].Order
		})
	}
}

package star

import "sort"

// SnapshotEntry is the reduced (name, URL) projection of one record.
type SnapshotEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SnapshotGroup is one language's entries in fetch order.
type SnapshotGroup struct {
	Language string          `json:"language"`
	Repos    []SnapshotEntry `json:"repos"`
}

// Snapshot is the per-language (name, URL) projection used for change
// detection between runs. Groups are in lexicographic language order;
// entries within a group keep fetch order so the snapshot is stable
// across sort modes. Description, owner, and star-count changes are
// deliberately invisible to it.
type Snapshot struct {
	Groups []SnapshotGroup `json:"groups"`
}

// TakeSnapshot builds a snapshot from records in fetch order.
func TakeSnapshot(records []Record) *Snapshot {
	byLang := make(map[string][]SnapshotEntry)
	for _, r := range records {
		lang := r.Language
		if lang == "" {
			lang = LanguageOthers
		}
		byLang[lang] = append(byLang[lang], SnapshotEntry{Name: r.Name, URL: r.URL})
	}

	languages := make([]string, 0, len(byLang))
	for lang := range byLang {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	snap := &Snapshot{Groups: make([]SnapshotGroup, 0, len(languages))}
	for _, lang := range languages {
		snap.Groups = append(snap.Groups, SnapshotGroup{Language: lang, Repos: byLang[lang]})
	}
	return snap
}

// Total returns the number of entries across all groups.
func (s *Snapshot) Total() int {
	total := 0
	for _, g := range s.Groups {
		total += len(g.Repos)
	}
	return total
}

// Equal reports exact structural equality with other.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if other == nil {
		return false
	}
	if len(s.Groups) != len(other.Groups) {
		return false
	}
	for i, g := range s.Groups {
		og := other.Groups[i]
		if g.Language != og.Language || len(g.Repos) != len(og.Repos) {
			return false
		}
		for j, r := range g.Repos {
			if r != og.Repos[j] {
				return false
			}
		}
	}
	return true
}

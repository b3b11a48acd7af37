package star

import (
	"sort"
	"testing"
)

func TestParseSortMode(t *testing.T) {
	for _, valid := range []string{"date", "name", "stars"} {
		mode, err := ParseSortMode(valid)
		if err != nil {
			t.Errorf("ParseSortMode(%q) error: %v", valid, err)
		}
		if string(mode) != valid {
			t.Errorf("ParseSortMode(%q) = %q", valid, mode)
		}
	}

	if _, err := ParseSortMode("popularity"); err == nil {
		t.Error("ParseSortMode(popularity) = nil error, want error")
	}
}

func TestAggregate_Empty(t *testing.T) {
	list := Aggregate(nil, SortByDate)

	if list.Total != 0 {
		t.Errorf("Total = %d, want 0", list.Total)
	}
	if len(list.Languages) != 0 {
		t.Errorf("Languages = %v, want empty", list.Languages)
	}
}

func TestAggregate_GroupingCompleteness(t *testing.T) {
	records := []Record{
		{Name: "hugo", Language: "Go", Order: 0},
		{Name: "flask", Language: "Python", Order: 1},
		{Name: "gin", Language: "Go", Order: 2},
		{Name: "dotfiles", Language: "", Order: 3},
		{Name: "redis", Language: "C", Order: 4},
	}

	list := Aggregate(records, SortByDate)

	if list.Total != len(records) {
		t.Errorf("Total = %d, want %d", list.Total, len(records))
	}

	// Every record appears in exactly one group.
	seen := make(map[string]int)
	grouped := 0
	for _, lang := range list.Languages {
		for _, r := range list.Groups[lang] {
			seen[r.Name]++
			grouped++
		}
	}
	if grouped != len(records) {
		t.Errorf("grouped %d records, want %d", grouped, len(records))
	}
	for _, r := range records {
		if seen[r.Name] != 1 {
			t.Errorf("record %q appears %d times, want 1", r.Name, seen[r.Name])
		}
	}
}

func TestAggregate_OthersFallback(t *testing.T) {
	list := Aggregate([]Record{{Name: "dotfiles", Language: ""}}, SortByDate)

	group, ok := list.Groups[LanguageOthers]
	if !ok || len(group) != 1 {
		t.Fatalf("Groups[%q] = %v, want one record", LanguageOthers, group)
	}
	if group[0].Name != "dotfiles" {
		t.Errorf("record = %q, want dotfiles", group[0].Name)
	}
}

func TestAggregate_LanguageOrder(t *testing.T) {
	records := []Record{
		{Name: "a", Language: "Rust"},
		{Name: "b", Language: "C++"},
		{Name: "c", Language: "go"}, // lowercase sorts after uppercase
		{Name: "d", Language: "Go"},
		{Name: "e", Language: ""},
	}

	list := Aggregate(records, SortByDate)

	if !sort.StringsAreSorted(list.Languages) {
		t.Errorf("Languages not sorted: %v", list.Languages)
	}
	// Case-sensitive default string ordering: "Go" < "Others" < "Rust" < "go"
	want := []string{"C++", "Go", "Others", "Rust", "go"}
	if len(list.Languages) != len(want) {
		t.Fatalf("Languages = %v, want %v", list.Languages, want)
	}
	for i, lang := range want {
		if list.Languages[i] != lang {
			t.Errorf("Languages[%d] = %q, want %q", i, list.Languages[i], lang)
		}
	}
}

func TestAggregate_SortByDate(t *testing.T) {
	records := []Record{
		{Name: "third", Language: "Go", Order: 2},
		{Name: "first", Language: "Go", Order: 0},
		{Name: "second", Language: "Go", Order: 1},
	}

	list := Aggregate(records, SortByDate)

	group := list.Groups["Go"]
	for i := 1; i < len(group); i++ {
		if group[i-1].Order > group[i].Order {
			t.Errorf("group not ascending by Order at %d: %v", i, group)
		}
	}
	if group[0].Name != "first" {
		t.Errorf("group[0] = %q, want first", group[0].Name)
	}
}

func TestAggregate_SortByName(t *testing.T) {
	records := []Record{
		{Name: "zsh", Language: "Shell", Order: 0},
		{Name: "bash", Language: "Shell", Order: 1},
		{Name: "fish", Language: "Shell", Order: 2},
	}

	list := Aggregate(records, SortByName)

	group := list.Groups["Shell"]
	for i := 1; i < len(group); i++ {
		if group[i-1].Name > group[i].Name {
			t.Errorf("group not ascending by Name at %d: %v", i, group)
		}
	}
}

func TestAggregate_SortByStars_StableTies(t *testing.T) {
	records := []Record{
		{Name: "low", Language: "Go", Stars: 10, Order: 0},
		{Name: "tie-a", Language: "Go", Stars: 50, Order: 1},
		{Name: "tie-b", Language: "Go", Stars: 50, Order: 2},
		{Name: "high", Language: "Go", Stars: 99, Order: 3},
	}

	list := Aggregate(records, SortByStars)

	group := list.Groups["Go"]
	names := []string{group[0].Name, group[1].Name, group[2].Name, group[3].Name}
	want := []string{"high", "tie-a", "tie-b", "low"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("group order = %v, want %v", names, want)
			break
		}
	}
}

// Scenario: three records, stars sort, one without language.
func TestAggregate_StarsWithOthers(t *testing.T) {
	records := []Record{
		{Name: "a", Language: "Go", Stars: 10, Order: 1},
		{Name: "b", Language: "Go", Stars: 20, Order: 0},
		{Name: "c", Language: "", Stars: 5, Order: 2},
	}

	list := Aggregate(records, SortByStars)

	if list.Total != 3 {
		t.Errorf("Total = %d, want 3", list.Total)
	}
	goGroup := list.Groups["Go"]
	if len(goGroup) != 2 || goGroup[0].Name != "b" || goGroup[1].Name != "a" {
		t.Errorf("Groups[Go] = %v, want [b a]", goGroup)
	}
	others := list.Groups[LanguageOthers]
	if len(others) != 1 || others[0].Name != "c" {
		t.Errorf("Groups[Others] = %v, want [c]", others)
	}
}

func TestAggregate_SanitizesDescriptions(t *testing.T) {
	records := []Record{
		{Name: "x", Language: "Go", Description: "a<b>\nc"},
	}

	list := Aggregate(records, SortByDate)

	got := list.Groups["Go"][0].Description
	if got != "a&lt;b&gt;c" {
		t.Errorf("Description = %q, want %q", got, "a&lt;b&gt;c")
	}
	// Input slice is not mutated.
	if records[0].Description != "a<b>\nc" {
		t.Errorf("input mutated: %q", records[0].Description)
	}
}

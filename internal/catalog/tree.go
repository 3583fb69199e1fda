package catalog

import (
	"sort"
	"strings"
)

// Color is a selectable product color.
type Color struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Tree is the gender → group → subcategory taxonomy plus the flat color
// and size vocabularies. Subcategories keep insertion order.
type Tree struct {
	Categories map[string]map[string][]string `json:"categories"`
	Colors     []Color                        `json:"colors"`
	Sizes      []string                       `json:"sizes"`
}

func NewTree() *Tree {
	return &Tree{
		Categories: map[string]map[string][]string{},
		Colors:     []Color{},
		Sizes:      []string{},
	}
}

func (t *Tree) normalize() {
	if t.Categories == nil {
		t.Categories = map[string]map[string][]string{}
	}
	for gender, groups := range t.Categories {
		if groups == nil {
			t.Categories[gender] = map[string][]string{}
			continue
		}
		for group, subs := range groups {
			if subs == nil {
				groups[group] = []string{}
			}
		}
	}
	if t.Colors == nil {
		t.Colors = []Color{}
	}
	if t.Sizes == nil {
		t.Sizes = []string{}
	}
}

func (t *Tree) AddGender(gender string) {
	t.normalize()
	if _, ok := t.Categories[gender]; !ok {
		t.Categories[gender] = map[string][]string{}
	}
}

func (t *Tree) AddGroup(gender, group string) {
	t.AddGender(gender)
	if _, ok := t.Categories[gender][group]; !ok {
		t.Categories[gender][group] = []string{}
	}
}

func (t *Tree) AddSubcategory(gender, group, sub string) {
	t.AddGroup(gender, group)
	for _, existing := range t.Categories[gender][group] {
		if existing == sub {
			return
		}
	}
	t.Categories[gender][group] = append(t.Categories[gender][group], sub)
}

func (t *Tree) RemoveGender(gender string) {
	delete(t.Categories, gender)
}

func (t *Tree) RemoveGroup(gender, group string) {
	if groups, ok := t.Categories[gender]; ok {
		delete(groups, group)
	}
}

func (t *Tree) RemoveSubcategory(gender, group, sub string) {
	groups, ok := t.Categories[gender]
	if !ok {
		return
	}
	subs, ok := groups[group]
	if !ok {
		return
	}
	kept := subs[:0:0]
	for _, s := range subs {
		if s != sub {
			kept = append(kept, s)
		}
	}
	groups[group] = kept
}

func (t *Tree) AddColor(c Color) {
	t.normalize()
	for _, existing := range t.Colors {
		if existing.Value == c.Value {
			return
		}
	}
	t.Colors = append(t.Colors, c)
}

func (t *Tree) RemoveColor(value string) {
	kept := t.Colors[:0:0]
	for _, c := range t.Colors {
		if c.Value != value {
			kept = append(kept, c)
		}
	}
	t.Colors = kept
}

func (t *Tree) AddSize(size string) {
	t.normalize()
	for _, existing := range t.Sizes {
		if existing == size {
			return
		}
	}
	t.Sizes = append(t.Sizes, size)
}

func (t *Tree) RemoveSize(size string) {
	kept := t.Sizes[:0:0]
	for _, s := range t.Sizes {
		if s != size {
			kept = append(kept, s)
		}
	}
	t.Sizes = kept
}

// Genders lists the genders in lexical order.
func (t *Tree) Genders() []string {
	return sortedKeys(t.Categories)
}

// Groups lists the groups under gender in lexical order.
func (t *Tree) Groups(gender string) []string {
	return sortedKeys(t.Categories[gender])
}

// Subcategories lists the subcategories of a group in lexical order.
func (t *Tree) Subcategories(gender, group string) []string {
	subs := t.Categories[gender][group]
	out := make([]string, len(subs))
	copy(out, subs)
	sort.Strings(out)
	return out
}

// Paths flattens the tree into every fully-qualified path.
func (t *Tree) Paths() []Path {
	var out []Path
	for _, gender := range t.Genders() {
		for _, group := range t.Groups(gender) {
			for _, sub := range t.Categories[gender][group] {
				out = append(out, Path{Gender: gender, Group: group, Subcategory: sub})
			}
		}
	}
	return out
}

// Contains reports whether p names an existing subcategory.
func (t *Tree) Contains(p Path) bool {
	for _, sub := range t.Categories[p.Gender][p.Group] {
		if sub == p.Subcategory {
			return true
		}
	}
	return false
}

// GroupMatch is one group's subcategories that matched a search.
type GroupMatch struct {
	Gender        string   `json:"gender"`
	Group         string   `json:"group"`
	Subcategories []string `json:"subcategories"`
}

// Search keeps, per group, the subcategories whose "gender group sub"
// contains token case-insensitively. Groups without a match are omitted.
func (t *Tree) Search(token string) []GroupMatch {
	needle := strings.ToLower(strings.TrimSpace(token))
	var out []GroupMatch
	for _, gender := range t.Genders() {
		for _, group := range t.Groups(gender) {
			var hits []string
			for _, sub := range t.Categories[gender][group] {
				haystack := strings.ToLower(gender + " " + group + " " + sub)
				if strings.Contains(haystack, needle) {
					hits = append(hits, sub)
				}
			}
			if len(hits) > 0 {
				out = append(out, GroupMatch{Gender: gender, Group: group, Subcategories: hits})
			}
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

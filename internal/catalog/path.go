package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

// Path is a fully-qualified category reference.
type Path struct {
	Gender      string `json:"gender"`
	Group       string `json:"group"`
	Subcategory string `json:"subcategory"`
}

// String renders the legacy space-joined, lower-cased form.
func (p Path) String() string {
	return strings.ToLower(strings.Join([]string{p.Gender, p.Group, p.Subcategory}, " "))
}

func (p Path) Validate() error {
	if strings.TrimSpace(p.Gender) == "" || strings.TrimSpace(p.Group) == "" || strings.TrimSpace(p.Subcategory) == "" {
		return fmt.Errorf("category path needs gender, group and subcategory")
	}
	for _, label := range p.levels() {
		if err := ValidateLabel(label); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLabel rejects labels the space-joined path form cannot carry.
// Multi-word labels are written with a hyphen, e.g. "spor-giyim".
func ValidateLabel(label string) error {
	if strings.IndexFunc(label, unicode.IsSpace) >= 0 {
		return fmt.Errorf("category label %q must not contain whitespace", label)
	}
	return nil
}

func (p Path) levels() []string {
	return []string{p.Gender, p.Group, p.Subcategory}
}

// ParsePath parses a single "gender group subcategory" string.
func ParsePath(raw string) (Path, error) {
	tokens := strings.Fields(strings.ToLower(raw))
	if len(tokens) != 3 {
		return Path{}, fmt.Errorf("category path %q must have exactly three parts", raw)
	}
	return Path{Gender: tokens[0], Group: tokens[1], Subcategory: tokens[2]}, nil
}

// ParseLegacyPaths splits a space-joined tag string back into paths by
// chunking tokens in threes. Labels that contain spaces cannot round-trip.
func ParseLegacyPaths(raw string) ([]Path, error) {
	tokens := strings.Fields(strings.ToLower(raw))
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens)%3 != 0 {
		return nil, fmt.Errorf("category %q does not split into gender/group/subcategory triples", raw)
	}
	paths := make([]Path, 0, len(tokens)/3)
	for i := 0; i < len(tokens); i += 3 {
		paths = append(paths, Path{Gender: tokens[i], Group: tokens[i+1], Subcategory: tokens[i+2]})
	}
	return paths, nil
}

// JoinLegacy renders paths back into the single legacy tag string.
func JoinLegacy(paths []Path) string {
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

// Matches reports whether a product path satisfies filter. The filter's
// tokens are compared level by level: one token names a gender, two a
// group, three a subcategory.
func Matches(product Path, filter string) bool {
	ft := strings.Fields(strings.ToLower(filter))
	if len(ft) == 0 || len(ft) > 3 {
		return false
	}
	levels := product.levels()
	for i, token := range ft {
		if strings.ToLower(strings.TrimSpace(levels[i])) != token {
			return false
		}
	}
	return true
}

// MatchesAny reports whether any product path satisfies any filter. An
// empty filter set matches everything.
func MatchesAny(product []Path, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		for _, p := range product {
			if Matches(p, f) {
				return true
			}
		}
	}
	return false
}

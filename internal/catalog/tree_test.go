package catalog

import (
	"reflect"
	"testing"
)

func TestAddSubcategoryCreatesParentsOnce(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.AddSubcategory("kadın", "giyim", "elbise")
	tree.AddSubcategory("kadın", "giyim", "elbise")
	tree.AddSubcategory("kadın", "giyim", "etek")

	if got := tree.Genders(); !reflect.DeepEqual(got, []string{"kadın"}) {
		t.Fatalf("unexpected genders %v", got)
	}
	if got := tree.Groups("kadın"); !reflect.DeepEqual(got, []string{"giyim"}) {
		t.Fatalf("unexpected groups %v", got)
	}
	if got := tree.Subcategories("kadın", "giyim"); !reflect.DeepEqual(got, []string{"elbise", "etek"}) {
		t.Fatalf("duplicate insert must be a no-op, got %v", got)
	}
}

func TestAddGroupKeepsExistingChildren(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.AddSubcategory("erkek", "ayakkabı", "bot")
	tree.AddGroup("erkek", "ayakkabı")
	tree.AddGender("erkek")

	if !tree.Contains(Path{Gender: "erkek", Group: "ayakkabı", Subcategory: "bot"}) {
		t.Fatalf("re-adding parents must not drop children")
	}
}

func TestRemoveCascades(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.AddSubcategory("kadın", "giyim", "elbise")
	tree.AddSubcategory("kadın", "aksesuar", "çanta")
	tree.AddSubcategory("erkek", "giyim", "gömlek")

	tree.RemoveGroup("kadın", "giyim")
	if len(tree.Subcategories("kadın", "giyim")) != 0 {
		t.Fatalf("removing a group must drop its subcategories")
	}
	if got := tree.Groups("kadın"); !reflect.DeepEqual(got, []string{"aksesuar"}) {
		t.Fatalf("sibling group should survive, got %v", got)
	}

	tree.RemoveGender("kadın")
	if got := tree.Genders(); !reflect.DeepEqual(got, []string{"erkek"}) {
		t.Fatalf("unexpected genders after cascade %v", got)
	}
	for _, p := range tree.Paths() {
		if p.Gender == "kadın" {
			t.Fatalf("path %v survived gender removal", p)
		}
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.AddSubcategory("kadın", "giyim", "elbise")
	before := tree.Paths()

	tree.RemoveGender("çocuk")
	tree.RemoveGroup("çocuk", "giyim")
	tree.RemoveGroup("kadın", "ayakkabı")
	tree.RemoveSubcategory("kadın", "giyim", "pantolon")
	tree.RemoveSubcategory("kadın", "yok", "pantolon")

	if !reflect.DeepEqual(tree.Paths(), before) {
		t.Fatalf("absent removals changed the tree: %v", tree.Paths())
	}
}

func TestColorsAndSizes(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.AddColor(Color{Label: "Siyah", Value: "#000000"})
	tree.AddColor(Color{Label: "Black", Value: "#000000"})
	tree.AddSize("M")
	tree.AddSize("M")
	tree.AddSize("L")

	if len(tree.Colors) != 1 || tree.Colors[0].Label != "Siyah" {
		t.Fatalf("expected first color to stick, got %+v", tree.Colors)
	}
	if !reflect.DeepEqual(tree.Sizes, []string{"M", "L"}) {
		t.Fatalf("unexpected sizes %v", tree.Sizes)
	}

	tree.RemoveColor("#ffffff")
	tree.RemoveColor("#000000")
	tree.RemoveSize("XL")
	tree.RemoveSize("M")
	if len(tree.Colors) != 0 || !reflect.DeepEqual(tree.Sizes, []string{"L"}) {
		t.Fatalf("unexpected vocabularies colors=%v sizes=%v", tree.Colors, tree.Sizes)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.AddSubcategory("kadın", "giyim", "elbise")
	tree.AddSubcategory("kadın", "giyim", "etek")
	tree.AddSubcategory("erkek", "giyim", "gömlek")
	tree.AddSubcategory("erkek", "ayakkabı", "bot")

	got := tree.Search("ELB")
	want := []GroupMatch{{Gender: "kadın", Group: "giyim", Subcategories: []string{"elbise"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected search result %+v", got)
	}

	if got := tree.Search("giyim"); len(got) != 2 {
		t.Fatalf("a group token should match every subcategory of both genders, got %+v", got)
	}
	if got := tree.Search("yok"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

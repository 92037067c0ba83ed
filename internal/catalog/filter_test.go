package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func titles(books []Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestFilter_NeutralInputsAreIdentity(t *testing.T) {
	base := SampleBooks()

	for _, category := range []string{AllCategories, ""} {
		got := Filter(base, "", category)
		if diff := cmp.Diff(base, got); diff != "" {
			t.Errorf("Filter with neutral predicates changed the collection (-want +got):\n%s", diff)
		}
	}
}

func TestFilter_WhitespaceSearchIsNeutral(t *testing.T) {
	base := SampleBooks()
	got := Filter(base, "   \t ", AllCategories)
	if diff := cmp.Diff(base, got); diff != "" {
		t.Errorf("whitespace-only search should be neutral (-want +got):\n%s", diff)
	}
}

func TestFilter_SearchMatchesTitleOrAuthorCaseInsensitive(t *testing.T) {
	base := SampleBooks()

	got := Filter(base, "atomic", AllCategories)
	want := []string{"Atomic Habits"}
	if diff := cmp.Diff(want, titles(got)); diff != "" {
		t.Errorf("search 'atomic' (-want +got):\n%s", diff)
	}

	// author match, mixed case
	got = Filter(base, "WILDE", AllCategories)
	want = []string{"The Picture of Dorian Gray"}
	if diff := cmp.Diff(want, titles(got)); diff != "" {
		t.Errorf("search 'WILDE' (-want +got):\n%s", diff)
	}
}

func TestFilter_CategoryEquality(t *testing.T) {
	base := SampleBooks()

	got := Filter(base, "", "Business")
	want := []string{"The Psychology of Money", "Company of One"}
	if diff := cmp.Diff(want, titles(got)); diff != "" {
		t.Errorf("category Business (-want +got):\n%s", diff)
	}

	if got := Filter(base, "", "Design"); len(got) != 0 {
		t.Errorf("expected empty result for unpopulated category, got %v", titles(got))
	}
}

func TestFilter_PredicatesCompose(t *testing.T) {
	base := SampleBooks()

	got := Filter(base, "money", "Business")
	want := []string{"The Psychology of Money"}
	if diff := cmp.Diff(want, titles(got)); diff != "" {
		t.Errorf("combined predicates (-want +got):\n%s", diff)
	}

	// each predicate alone matches something, intersection is empty
	if got := Filter(base, "atomic", "Business"); len(got) != 0 {
		t.Errorf("expected empty intersection, got %v", titles(got))
	}
}

func TestFilter_PreservesOrderAndSubsequence(t *testing.T) {
	base := SampleBooks()
	got := Filter(base, "the", AllCategories)

	// every returned element satisfies the predicate and appears in base
	// order
	lastIdx := -1
	for _, g := range got {
		found := false
		for i, b := range base {
			if b.ID == g.ID {
				if i <= lastIdx {
					t.Fatalf("order not preserved around %q", g.Title)
				}
				lastIdx = i
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("result %q not in base collection", g.Title)
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	base := SampleBooks()
	once := Filter(base, "o", "Self-Help")
	twice := Filter(once, "o", "Self-Help")
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("filter not idempotent (-once +twice):\n%s", diff)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	base := SampleBooks()
	snapshot := SampleBooks()
	_ = Filter(base, "atomic", "Business")
	if diff := cmp.Diff(snapshot, base); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

package gridview

import "testing"

func TestTextContains(t *testing.T) {
	keep := TextContains(func(p person) string { return p.Name })("AR")

	if !keep(person{Name: "carol"}) {
		t.Fatal("expected case-insensitive substring match")
	}
	if keep(person{Name: "bob"}) {
		t.Fatal("expected no match")
	}
}

func TestTextPrefix(t *testing.T) {
	keep := TextPrefix(func(p person) string { return p.Name })("ca")

	if !keep(person{Name: "Carol"}) {
		t.Fatal("expected case-insensitive prefix match")
	}
	if keep(person{Name: "oscar"}) {
		t.Fatal("substring is not a prefix")
	}
}

func TestFuzzy(t *testing.T) {
	factory := Fuzzy(func(p person) string { return p.Name }, 2)

	t.Run("substring still matches", func(t *testing.T) {
		if !factory("aro")(person{Name: "carol"}) {
			t.Fatal("expected substring hit")
		}
	})

	t.Run("typo within distance matches", func(t *testing.T) {
		if !factory("corol")(person{Name: "carol"}) {
			t.Fatal("expected one-edit typo to match")
		}
	})

	t.Run("far-off query misses", func(t *testing.T) {
		if factory("zzzzzzz")(person{Name: "carol"}) {
			t.Fatal("expected miss beyond the edit budget")
		}
	})
}

func TestEquals(t *testing.T) {
	keep := Equals(func(p person) string { return p.Name })("bob")

	if !keep(person{Name: "bob"}) {
		t.Fatal("expected exact match")
	}
	if keep(person{Name: "Bob"}) {
		t.Fatal("Equals is case-sensitive")
	}
}

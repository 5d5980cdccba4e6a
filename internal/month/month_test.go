package month

import "testing"

func TestParse(t *testing.T) {
	m, err := Parse("2020-05")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Year != 2020 || m.Mon != 5 {
		t.Errorf("Expected 2020-05, got %v", m)
	}
	if m.String() != "2020-05" {
		t.Errorf("Expected string 2020-05, got %s", m.String())
	}
}

func TestParseRejectsBadLabels(t *testing.T) {
	for _, s := range []string{"", "2020", "2020-13", "2020-00", "20-01", "2020-1", "2020/01", "abcd-ef"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}
}

func TestNext(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2020-05", "2020-06"},
		{"2020-12", "2021-01"},
		{"2024-11", "2024-12"},
	}
	for _, c := range cases {
		if got := MustParse(c.in).Next().String(); got != c.want {
			t.Errorf("Next(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestOrdering(t *testing.T) {
	a := MustParse("2020-12")
	b := MustParse("2021-01")
	if !a.Before(b) {
		t.Error("Expected 2020-12 before 2021-01")
	}
	if !b.After(a) {
		t.Error("Expected 2021-01 after 2020-12")
	}
	if a.Compare(a) != 0 {
		t.Error("Expected equal months to compare 0")
	}
}

package display

import "testing"

func TestTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"whole_milk", "Whole Milk"},
		{"", ""},
		{"ALREADY CAPS", "Already Caps"},
		{"back_room", "Back Room"},
		{"semi-skimmed_milk", "Semi Skimmed Milk"},
		{"  spaced   out  ", "Spaced Out"},
		{"single", "Single"},
	}

	for _, c := range cases {
		got := Title(c.in)
		if got != c.want {
			t.Errorf("Title(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		status string
		want   Severity
	}{
		{"Out", SeverityCritical},
		{"Out Of Stock", SeverityCritical},
		{"Shelf Empty", SeverityCritical},
		{"Critical", SeverityCritical},
		{"Low", SeverityWarning},
		{"Running Low", SeverityWarning},
		{"Plenty", SeverityNormal},
		{"", SeverityNormal},
	}

	for _, c := range cases {
		got := Classify(c.status)
		if got != c.want {
			t.Errorf("Classify(%q) = %q, want %q", c.status, got, c.want)
		}
	}
}

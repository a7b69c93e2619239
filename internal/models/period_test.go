package models

import "testing"

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods {
		got, err := ParsePeriod(string(p))
		if err != nil {
			t.Errorf("ParsePeriod(%q) error: %v", p, err)
		}
		if got != p {
			t.Errorf("ParsePeriod(%q) = %q", p, got)
		}
	}

	if _, err := ParsePeriod("14d"); err == nil {
		t.Error("ParsePeriod(14d) should fail")
	}
	if _, err := ParsePeriod(""); err == nil {
		t.Error("ParsePeriod() should fail on empty input")
	}
}

func TestPeriodLabel(t *testing.T) {
	cases := map[Period]string{
		Period7d:  "week",
		Period30d: "month",
		Period90d: "quarter",
	}
	for p, want := range cases {
		if got := p.Label(); got != want {
			t.Errorf("%s.Label() = %q, want %q", p, got, want)
		}
	}
}

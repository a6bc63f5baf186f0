package bot

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseKeyValues(t *testing.T) {
	values, rest := ParseKeyValues("pages=10, copies=2 color=bw oops")

	want := map[string]string{"pages": "10", "copies": "2", "color": "bw"}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("%s = %q, want %q", k, values[k], v)
		}
	}
	if len(values) != len(want) {
		t.Errorf("got %d values, want %d", len(values), len(want))
	}
	if len(rest) != 1 || rest[0] != "oops" {
		t.Errorf("rest = %v", rest)
	}
}

func TestValidateCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 25 ", 25, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"2.5", 0, true},
		{"abc", 0, true},
		{"10001", 0, true},
	}
	for _, tt := range tests {
		got, err := ValidateCount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ValidateCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseJobID(t *testing.T) {
	if id, err := parseJobID("#42"); err != nil || id != 42 {
		t.Errorf("parseJobID(#42) = %d, %v", id, err)
	}
	if _, err := parseJobID("0"); err == nil {
		t.Error("expected error for id 0")
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(decimal.RequireFromString("45.7")); got != "₹45.70" {
		t.Errorf("FormatMoney = %q", got)
	}
}

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEstimate_Preset(t *testing.T) {
	out, err := execute(t, "estimate", "--pages", "24", "--preset", "report")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if !strings.Contains(out, "Total:      ₹24.10") {
		t.Errorf("unexpected total:\n%s", out)
	}
	if !strings.Contains(out, "Points:     6") {
		t.Errorf("unexpected points:\n%s", out)
	}
}

func TestEstimate_FlagsOverridePreset(t *testing.T) {
	out, err := execute(t, "estimate", "--pages", "24", "--preset", "report", "--binding", "none", "--json")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	var q struct {
		Total       string `json:"total"`
		BindingCost string `json:"binding_cost"`
	}
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if q.Total != "21.6" {
		t.Errorf("total = %s, want 21.6", q.Total)
	}
}

func TestEstimate_Override(t *testing.T) {
	out, err := execute(t, "estimate", "--pages", "24", "--preset", "report", "--override", "basePerPageBW=2")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if !strings.Contains(out, "Total:      ₹45.70") {
		t.Errorf("unexpected total:\n%s", out)
	}
}

func TestEstimate_Table(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	if err := os.WriteFile(path, []byte("delivery_fee:\n  delivery: 60\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "estimate", "--delivery", "delivery", "--color", "bw", "--sides", "one", "--table", path)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if !strings.Contains(out, "Total:      ₹61.00") {
		t.Errorf("unexpected total:\n%s", out)
	}
}

func TestEstimate_StrictRejectsUnknownValue(t *testing.T) {
	if _, err := execute(t, "estimate", "--color", "sepia", "--strict"); err == nil {
		t.Error("expected error in strict mode")
	}
	if _, err := execute(t, "estimate", "--color", "sepia"); err != nil {
		t.Errorf("lenient mode failed: %v", err)
	}
}

func TestEstimate_BadOverride(t *testing.T) {
	if _, err := execute(t, "estimate", "--override", "basePerPageBW"); err == nil {
		t.Error("expected error for override without value")
	}
	if _, err := execute(t, "estimate", "--override", "discount=0.5"); err == nil {
		t.Error("expected error for unknown override key")
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		points string
		want   []string
	}{
		{"0", []string{"Tier:      Bronze", "Next:      Silver at 100", "0 / 100 to Silver"}},
		{"620", []string{"Tier:      Gold", "Next:      Platinum at 1500", "Progress:  12%"}},
		{"1500", []string{"Tier:      Platinum", "Next:      none", "Top tier reached"}},
	}
	for _, tt := range tests {
		out, err := execute(t, "tier", tt.points)
		if err != nil {
			t.Fatalf("tier %s: %v", tt.points, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("tier %s: missing %q in\n%s", tt.points, w, out)
			}
		}
	}

	if _, err := execute(t, "tier", "lots"); err == nil {
		t.Error("expected error for non-numeric points")
	}
}

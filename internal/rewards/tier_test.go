package rewards

import "testing"

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		points float64
		want   Tier
	}{
		{0, Bronze},
		{99, Bronze},
		{99.75, Bronze},
		{100, Silver},
		{499, Silver},
		{500, Gold},
		{1499, Gold},
		{1500, Platinum},
		{1e6, Platinum},
	}
	for _, tt := range tests {
		if got := TierFor(tt.points).Tier; got != tt.want {
			t.Errorf("TierFor(%v) = %s, want %s", tt.points, got, tt.want)
		}
	}
}

func TestTierFor_NextThreshold(t *testing.T) {
	s := TierFor(120)
	if s.NextAt == nil || *s.NextAt != 500 || s.Next != Gold || s.Floor != 100 {
		t.Errorf("Incorrect standing for 120: %+v", s)
	}

	top := TierFor(2000)
	if top.NextAt != nil || top.Next != "" {
		t.Errorf("Platinum should have no next threshold: %+v", top)
	}
}

func TestProgressFor(t *testing.T) {
	tests := []struct {
		points  float64
		percent int
		span    float64
		detail  string
	}{
		{0, 0, 100, "0 / 100 to Silver"},
		{50, 50, 100, "50 / 100 to Silver"},
		{99.5, 100, 100, "99.50 / 100 to Silver"},
		{300, 50, 400, "200 / 400 to Gold"},
		{501, 0, 1000, "1 / 1000 to Platinum"},
	}
	for _, tt := range tests {
		p := ProgressFor(tt.points)
		if p.Percent != tt.percent || p.Span != tt.span {
			t.Errorf("ProgressFor(%v) = %+v, want percent %d span %v", tt.points, p, tt.percent, tt.span)
		}
		if got := p.Detail(); got != tt.detail {
			t.Errorf("ProgressFor(%v).Detail() = %q, want %q", tt.points, got, tt.detail)
		}
	}

	top := ProgressFor(1500)
	if !top.Top || top.Percent != 100 || top.Span != 0 {
		t.Errorf("Incorrect platinum progress: %+v", top)
	}
}

func TestNewSummary(t *testing.T) {
	s := NewSummary(510, 7, nil)
	if s.Standing.Tier != Gold || s.Orders != 7 || s.Progress.Next != Platinum {
		t.Errorf("Incorrect summary: %+v", s)
	}
}

package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func reportJob() Options {
	return Options{
		Pages:        24,
		Copies:       1,
		ColorMode:    ColorBW,
		Sidedness:    SidedTwo,
		Binding:      BindingSpiral,
		PrintQuality: QualityStandard,
		PaperType:    PaperStandard,
		Finishing:    FinishingNone,
		Delivery:     DeliveryPickup,
	}
}

func TestEstimate_ReportJob(t *testing.T) {
	got := Estimate(reportJob(), DefaultConfig())
	want := decimal.RequireFromString("24.1")
	if !got.Equal(want) {
		t.Errorf("Incorrect estimate, got %s, want %s", got, want)
	}

	if points := RewardPoints(reportJob()); points != 6 {
		t.Errorf("Incorrect reward points, got %v, want 6", points)
	}
}

func TestEstimate_BaseRateOverride(t *testing.T) {
	cfg := DefaultConfig().Apply(Overrides{KeyBasePerPageBW: 2.0})

	got := Estimate(reportJob(), cfg)
	want := decimal.RequireFromString("45.7")
	if !got.Equal(want) {
		t.Errorf("Incorrect estimate, got %s, want %s", got, want)
	}
}

func TestBreakdown_Components(t *testing.T) {
	opts := Options{
		Pages:        10,
		Copies:       3,
		ColorMode:    ColorColor,
		Sidedness:    SidedOne,
		PrintQuality: QualityHigh,
		PaperType:    PaperGlossy,
		Binding:      BindingComb,
		Finishing:    FinishingLaminate,
		Delivery:     DeliveryDelivery,
	}

	q := Breakdown(opts, DefaultConfig())

	tests := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"page cost", q.PageCost, "16.2"}, // 10 * 1.0 * 1 * 1.2 * 1.35
		{"copies cost", q.CopiesCost, "48.6"},
		{"binding", q.BindingCost, "4.5"},
		{"finishing", q.FinishingCost, "250"},
		{"delivery", q.DeliveryCost, "49"},
		{"total", q.Total, "352.1"},
	}
	for _, tt := range tests {
		if !tt.got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}

	if q.Points != 7.5 {
		t.Errorf("Incorrect points, got %v, want 7.5", q.Points)
	}
}

func TestEstimate_ClampsCounts(t *testing.T) {
	base := reportJob()
	base.Pages = 1
	base.Copies = 1
	want := Estimate(base, DefaultConfig())

	for _, n := range []int{0, -1, -100} {
		opts := reportJob()
		opts.Pages = n
		opts.Copies = n
		if got := Estimate(opts, DefaultConfig()); !got.Equal(want) {
			t.Errorf("pages=copies=%d: got %s, want %s", n, got, want)
		}
		if points := RewardPoints(opts); points != 0.25 {
			t.Errorf("pages=copies=%d: got %v points, want 0.25", n, points)
		}
	}
}

func TestEstimate_UnknownValuesPriceAtDefaults(t *testing.T) {
	opts := Options{
		Pages:        4,
		Copies:       2,
		ColorMode:    "sepia",
		Sidedness:    "three",
		PrintQuality: "ultra",
		PaperType:    "cardboard",
		Binding:      "glue",
		Finishing:    "foil",
		Delivery:     "drone",
	}

	// color rate, no discount, neutral multipliers, no extras
	got := Estimate(opts, DefaultConfig())
	if !got.Equal(decimal.NewFromInt(8)) {
		t.Errorf("Incorrect estimate, got %s, want 8", got)
	}
}

func TestEstimate_Monotonic(t *testing.T) {
	cfg := DefaultConfig()
	for _, preset := range PresetNames() {
		opts, _ := ApplyPreset(DefaultOptions(), preset)

		prev := decimal.Zero
		for pages := 1; pages <= 60; pages++ {
			opts.Pages = pages
			got := Estimate(opts, cfg)
			if got.LessThan(prev) {
				t.Fatalf("%s: estimate dropped at pages=%d: %s < %s", preset, pages, got, prev)
			}
			prev = got
		}

		opts.Pages = 7
		prev = decimal.Zero
		for copies := 1; copies <= 60; copies++ {
			opts.Copies = copies
			got := Estimate(opts, cfg)
			if got.LessThan(prev) {
				t.Fatalf("%s: estimate dropped at copies=%d: %s < %s", preset, copies, got, prev)
			}
			prev = got
		}
	}
}

func TestEstimate_NonNegativeTwoDecimals(t *testing.T) {
	cfg := DefaultConfig().Apply(Overrides{
		KeyBasePerPageColor: 0.333,
		KeyBasePerPageBW:    0.127,
	})

	for pages := 1; pages <= 40; pages++ {
		for _, color := range []ColorMode{ColorBW, ColorColor} {
			opts := DefaultOptions()
			opts.Pages = pages
			opts.Copies = 3
			opts.ColorMode = color
			opts.PaperType = PaperGlossy

			got := Estimate(opts, cfg)
			if got.IsNegative() {
				t.Fatalf("negative estimate %s", got)
			}
			if !got.Equal(got.Round(2)) {
				t.Fatalf("estimate %s has more than two decimals", got)
			}
		}
	}
}

func TestEstimate_Idempotent(t *testing.T) {
	cfg := DefaultConfig()
	opts := reportJob()
	opts.Finishing = FinishingHolePunch

	first := Estimate(opts, cfg)
	second := Estimate(opts, cfg)
	if !first.Equal(second) {
		t.Errorf("estimate changed between calls: %s then %s", first, second)
	}
}

func TestRewardPoints_Exact(t *testing.T) {
	tests := []struct {
		pages, copies int
		want          float64
	}{
		{1, 1, 0.25},
		{24, 1, 6},
		{3, 3, 2.25},
		{100, 20, 500},
	}
	for _, tt := range tests {
		opts := Options{Pages: tt.pages, Copies: tt.copies}
		if got := RewardPoints(opts); got != tt.want {
			t.Errorf("RewardPoints(%d, %d) = %v, want %v", tt.pages, tt.copies, got, tt.want)
		}
	}
}

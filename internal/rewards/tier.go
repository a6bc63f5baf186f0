package rewards

import (
	"fmt"
	"math"
)

type Tier string

const (
	Bronze   Tier = "Bronze"
	Silver   Tier = "Silver"
	Gold     Tier = "Gold"
	Platinum Tier = "Platinum"
)

// Threshold is the lowest balance that reaches Tier.
type Threshold struct {
	Tier Tier
	At   float64
}

// Thresholds are ascending; the last tier has no upper bound.
var Thresholds = []Threshold{
	{Bronze, 0},
	{Silver, 100},
	{Gold, 500},
	{Platinum, 1500},
}

// Standing is the tier a balance falls in. NextAt is nil for the top tier.
type Standing struct {
	Tier   Tier     `json:"tier"`
	Floor  float64  `json:"floor"`
	Next   Tier     `json:"next,omitempty"`
	NextAt *float64 `json:"next_at,omitempty"`
}

func TierFor(points float64) Standing {
	idx := 0
	for i, th := range Thresholds {
		if points >= th.At {
			idx = i
		}
	}

	s := Standing{Tier: Thresholds[idx].Tier, Floor: Thresholds[idx].At}
	if idx+1 < len(Thresholds) {
		next := Thresholds[idx+1]
		at := next.At
		s.Next = next.Tier
		s.NextAt = &at
	}
	return s
}

// Progress measures how far a balance has moved through its tier.
type Progress struct {
	Progressed float64 `json:"progressed"`
	Span       float64 `json:"span"`
	Percent    int     `json:"percent"`
	Next       Tier    `json:"next,omitempty"`
	Top        bool    `json:"top"`
}

func ProgressFor(points float64) Progress {
	s := TierFor(points)
	if s.NextAt == nil {
		return Progress{Percent: 100, Top: true}
	}

	span := *s.NextAt - s.Floor
	progressed := points - s.Floor
	percent := int(math.Round(100 * progressed / span))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return Progress{
		Progressed: progressed,
		Span:       span,
		Percent:    percent,
		Next:       s.Next,
	}
}

// Detail renders the progress line shown under the tier bar.
func (p Progress) Detail() string {
	if p.Top {
		return "Top tier reached"
	}
	return fmt.Sprintf("%s / %s to %s", formatPoints(p.Progressed), formatPoints(p.Span), p.Next)
}

// Summary is the rewards view of one customer.
type Summary struct {
	Points      float64      `json:"points"`
	Orders      int          `json:"orders"`
	Standing    Standing     `json:"standing"`
	Progress    Progress     `json:"progress"`
	Redemptions []Redemption `json:"redemptions"`
}

func NewSummary(points float64, orders int, log []Redemption) Summary {
	return Summary{
		Points:      points,
		Orders:      orders,
		Standing:    TierFor(points),
		Progress:    ProgressFor(points),
		Redemptions: log,
	}
}

func formatPoints(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

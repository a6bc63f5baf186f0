package pricing

import "github.com/shopspring/decimal"

// PointsPerPage is the reward rate per printed page, regardless of the
// other job options.
const PointsPerPage = 0.25

// Quote is an estimate with its components. Component amounts are
// unrounded; only Total is rounded to cents.
type Quote struct {
	Pages         int             `json:"pages"`
	Copies        int             `json:"copies"`
	PerPageRate   decimal.Decimal `json:"per_page_rate"`
	SidedFactor   decimal.Decimal `json:"sided_factor"`
	QualityFactor decimal.Decimal `json:"quality_factor"`
	PaperFactor   decimal.Decimal `json:"paper_factor"`
	PageCost      decimal.Decimal `json:"page_cost"`
	CopiesCost    decimal.Decimal `json:"copies_cost"`
	BindingCost   decimal.Decimal `json:"binding_cost"`
	FinishingCost decimal.Decimal `json:"finishing_cost"`
	DeliveryCost  decimal.Decimal `json:"delivery_cost"`
	Total         decimal.Decimal `json:"total"`
	Points        float64         `json:"points"`
}

// Estimate prices a job. It never fails: counts are clamped to at least
// one and unknown option values fall back to their neutral defaults.
func Estimate(opts Options, cfg Config) decimal.Decimal {
	return Breakdown(opts, cfg).Total
}

// Breakdown prices a job and keeps every intermediate amount.
func Breakdown(opts Options, cfg Config) Quote {
	pages := atLeastOne(opts.Pages)
	copies := atLeastOne(opts.Copies)

	rate := cfg.BasePerPageColor
	if opts.ColorMode == ColorBW {
		rate = cfg.BasePerPageBW
	}

	one := decimal.NewFromInt(1)
	sided := one
	if opts.Sidedness == SidedTwo {
		sided = one.Sub(decimal.NewFromFloat(DoubleSidedDiscount))
	}

	q := Quote{
		Pages:         pages,
		Copies:        copies,
		PerPageRate:   decimal.NewFromFloat(rate),
		SidedFactor:   sided,
		QualityFactor: lookup(cfg.Quality, opts.PrintQuality, 1),
		PaperFactor:   lookup(cfg.Paper, opts.PaperType, 1),
		Points:        RewardPoints(opts),
	}

	nCopies := decimal.NewFromInt(int64(copies))

	q.PageCost = decimal.NewFromInt(int64(pages)).
		Mul(q.PerPageRate).
		Mul(q.SidedFactor).
		Mul(q.QualityFactor).
		Mul(q.PaperFactor)
	q.CopiesCost = q.PageCost.Mul(nCopies)
	q.BindingCost = lookup(cfg.BindingPerCopy, opts.Binding, 0).Mul(nCopies)
	q.FinishingCost = lookup(cfg.FinishingFlat, opts.Finishing, 0)
	q.DeliveryCost = lookup(cfg.DeliveryFee, opts.Delivery, 0)

	total := q.CopiesCost.Add(q.BindingCost).Add(q.FinishingCost).Add(q.DeliveryCost)
	if total.IsNegative() {
		total = decimal.Zero
	}
	q.Total = total.Round(2)

	return q
}

// RewardPoints awards PointsPerPage for every printed page.
func RewardPoints(opts Options) float64 {
	return float64(atLeastOne(opts.Pages)) * float64(atLeastOne(opts.Copies)) * PointsPerPage
}

func lookup[K comparable](table map[K]float64, key K, fallback float64) decimal.Decimal {
	if v, ok := table[key]; ok {
		return decimal.NewFromFloat(v)
	}
	return decimal.NewFromFloat(fallback)
}

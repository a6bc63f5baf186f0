package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"printit-bot/internal/pricing"
	"printit-bot/internal/rewards"
	"printit-bot/internal/storage"

	"github.com/shopspring/decimal"
)

const currency = "₹"

func FormatMoney(d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// ParseKeyValues splits "k=v k2=v2" (commas also separate pairs) into a
// map. Tokens without "=" are returned as leftovers.
func ParseKeyValues(text string) (map[string]string, []string) {
	values := make(map[string]string)
	var rest []string

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	})
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			rest = append(rest, f)
			continue
		}
		values[k] = v
	}
	return values, rest
}

func parseJobID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order id %q", s)
	}
	return id, nil
}

func FormatQuote(q pricing.Quote) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧮 Estimate: %s\n", FormatMoney(q.Total))
	fmt.Fprintf(&sb, "📄 %d pages × %d copies\n", q.Pages, q.Copies)
	fmt.Fprintf(&sb, "• Printing: %s\n", FormatMoney(q.CopiesCost.Round(2)))
	if !q.BindingCost.IsZero() {
		fmt.Fprintf(&sb, "• Binding: %s\n", FormatMoney(q.BindingCost.Round(2)))
	}
	if !q.FinishingCost.IsZero() {
		fmt.Fprintf(&sb, "• Finishing: %s\n", FormatMoney(q.FinishingCost.Round(2)))
	}
	if !q.DeliveryCost.IsZero() {
		fmt.Fprintf(&sb, "• Delivery: %s\n", FormatMoney(q.DeliveryCost.Round(2)))
	}
	fmt.Fprintf(&sb, "⭐ Earns %s points", formatPoints(q.Points))
	return sb.String()
}

func FormatOptions(o pricing.Options) string {
	return fmt.Sprintf(
		"📁 %s\n"+
			"%d pages × %d copies, %s, %s-sided\n"+
			"Quality: %s, paper: %s %s %s\n"+
			"Binding: %s, finishing: %s, %s",
		o.FileName,
		o.Pages, o.Copies, o.ColorMode, o.Sidedness,
		o.PrintQuality, o.PaperType, o.PaperSize, o.Orientation,
		o.Binding, o.Finishing, o.Delivery,
	)
}

func FormatJobLine(j storage.Job) string {
	return fmt.Sprintf("#%d %s · %s · %d×%d %s/%s/%s · %s · %s",
		j.ID,
		j.CreatedAt.Format("2006-01-02"),
		j.FileName,
		j.Pages, j.Copies,
		j.ColorMode, j.Sidedness, j.Binding,
		FormatMoney(j.Price),
		j.Status,
	)
}

func FormatAdminJobLine(j storage.Job) string {
	return fmt.Sprintf("%s · user %d · %s/%s",
		FormatJobLine(j), j.UserID, j.PaymentMethod, j.PaymentStatus)
}

func FormatOrderNotification(j storage.Job, username string) string {
	who := strconv.FormatInt(j.UserID, 10)
	if username != "" {
		who = "@" + username
	}
	text := fmt.Sprintf(
		"📦 New order #%d\n\n"+
			"%s\n"+
			"──────────────────\n"+
			"Price: %s\n"+
			"Payment: %s (%s)\n"+
			"Customer: %s\n"+
			"Status: %s\n"+
			"Date: %s",
		j.ID,
		FormatOptions(j.Options()),
		FormatMoney(j.Price),
		j.PaymentMethod, j.PaymentStatus,
		who,
		j.Status,
		j.CreatedAt.Format("02.01.2006 15:04"),
	)
	if j.Address != "" {
		text += "\nAddress: " + j.Address
	}
	return text
}

func FormatRewards(s rewards.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏅 Tier: %s\n", s.Standing.Tier)
	fmt.Fprintf(&sb, "⭐ Points: %s\n", formatPoints(s.Points))
	fmt.Fprintf(&sb, "📦 Orders: %d\n", s.Orders)
	fmt.Fprintf(&sb, "📈 Progress: %d%% (%s)", s.Progress.Percent, s.Progress.Detail())
	if len(s.Redemptions) > 0 {
		sb.WriteString("\n\n🎁 Redeemed:")
		for _, r := range s.Redemptions {
			fmt.Fprintf(&sb, "\n• %s, %s", r.Name, r.At.Format("2006-01-02 15:04"))
		}
	}
	return sb.String()
}

func FormatPriceList(o pricing.Overrides, cfg pricing.Config) string {
	current := map[string]float64{
		pricing.KeyBasePerPageBW:     cfg.BasePerPageBW,
		pricing.KeyBasePerPageColor:  cfg.BasePerPageColor,
		pricing.KeyDeliveryPickup:    cfg.DeliveryFee[pricing.DeliveryPickup],
		pricing.KeyDeliveryDelivery:  cfg.DeliveryFee[pricing.DeliveryDelivery],
		pricing.KeyBindingSpiral:     cfg.BindingPerCopy[pricing.BindingSpiral],
		pricing.KeyFinishingLaminate: cfg.FinishingFlat[pricing.FinishingLaminate],
	}

	var sb strings.Builder
	sb.WriteString("💰 Prices\n")
	for _, k := range pricing.OverrideKeys() {
		mark := ""
		if _, ok := o.Number(k); ok {
			mark = " (override)"
		}
		fmt.Fprintf(&sb, "%s = %s%s\n", k, strconv.FormatFloat(current[k], 'f', -1, 64), mark)
	}
	sb.WriteString("\nChange with /price set key=value, restore with /price reset")
	return sb.String()
}

func FormatStatusCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "• %s: %d\n", k, counts[k])
	}
	return strings.TrimRight(sb.String(), "\n")
}

package pricing

import (
	"math"
	"strconv"
	"strings"
)

type ColorMode string

const (
	ColorBW    ColorMode = "bw"
	ColorColor ColorMode = "color"
)

type Sidedness string

const (
	SidedOne Sidedness = "one"
	SidedTwo Sidedness = "two"
)

type Quality string

const (
	QualityDraft    Quality = "draft"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

type PaperType string

const (
	PaperStandard PaperType = "standard"
	PaperPremium  PaperType = "premium"
	PaperGlossy   PaperType = "glossy"
)

type Binding string

const (
	BindingNone   Binding = "none"
	BindingStaple Binding = "staple"
	BindingSpiral Binding = "spiral"
	BindingComb   Binding = "comb"
)

type Finishing string

const (
	FinishingNone      Finishing = "none"
	FinishingLaminate  Finishing = "laminate"
	FinishingHolePunch Finishing = "hole_punch"
)

type Delivery string

const (
	DeliveryPickup   Delivery = "pickup"
	DeliveryDelivery Delivery = "delivery"
)

// Mode selects how ParseOptions treats malformed input.
type Mode int

const (
	// Lenient clamps counts and keeps unknown enum values, which then
	// price at their table defaults.
	Lenient Mode = iota
	// Strict rejects anything outside the enumerated sets.
	Strict
)

// Options describes one print job as declared by the customer.
type Options struct {
	FileName     string    `json:"file_name"`
	Pages        int       `json:"pages"`
	Copies       int       `json:"copies"`
	ColorMode    ColorMode `json:"color_mode"`
	Sidedness    Sidedness `json:"sidedness"`
	PrintQuality Quality   `json:"print_quality"`
	PaperType    PaperType `json:"paper_type"`
	PaperSize    string    `json:"paper_size"`
	Orientation  string    `json:"orientation"`
	Binding      Binding   `json:"binding"`
	Finishing    Finishing `json:"finishing"`
	Delivery     Delivery  `json:"delivery"`
}

// DefaultOptions mirrors the order form's initial state.
func DefaultOptions() Options {
	return Options{
		FileName:     "Document",
		Pages:        1,
		Copies:       1,
		ColorMode:    ColorColor,
		Sidedness:    SidedTwo,
		PrintQuality: QualityStandard,
		PaperType:    PaperStandard,
		PaperSize:    "A4",
		Orientation:  "portrait",
		Binding:      BindingNone,
		Finishing:    FinishingNone,
		Delivery:     DeliveryPickup,
	}
}

var (
	colorModes = map[ColorMode]bool{ColorBW: true, ColorColor: true}
	sides      = map[Sidedness]bool{SidedOne: true, SidedTwo: true}
	qualities  = map[Quality]bool{QualityDraft: true, QualityStandard: true, QualityHigh: true}
	papers     = map[PaperType]bool{PaperStandard: true, PaperPremium: true, PaperGlossy: true}
	bindings   = map[Binding]bool{BindingNone: true, BindingStaple: true, BindingSpiral: true, BindingComb: true}
	finishings = map[Finishing]bool{FinishingNone: true, FinishingLaminate: true, FinishingHolePunch: true}
	deliveries = map[Delivery]bool{DeliveryPickup: true, DeliveryDelivery: true}
)

var keyAliases = map[string]string{
	"file":          "file",
	"filename":      "file",
	"file_name":     "file",
	"pages":         "pages",
	"copies":        "copies",
	"color":         "color",
	"colormode":     "color",
	"color_mode":    "color",
	"sides":         "sides",
	"sidedness":     "sides",
	"quality":       "quality",
	"printquality":  "quality",
	"print_quality": "quality",
	"paper":         "paper",
	"papertype":     "paper",
	"paper_type":    "paper",
	"size":          "size",
	"papersize":     "size",
	"paper_size":    "size",
	"orientation":   "orientation",
	"binding":       "binding",
	"finishing":     "finishing",
	"delivery":      "delivery",
}

// CanonicalKey maps a user-facing option key to its canonical name.
func CanonicalKey(key string) (string, bool) {
	k, ok := keyAliases[strings.ToLower(strings.TrimSpace(key))]
	return k, ok
}

// ParseOptions builds Options from loosely typed form values. Missing
// keys keep DefaultOptions values; unknown keys are ignored.
func ParseOptions(raw map[string]string, mode Mode) (Options, error) {
	opts := DefaultOptions()

	for key, value := range raw {
		canonical, ok := CanonicalKey(key)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		var err error
		switch canonical {
		case "file":
			if value != "" {
				opts.FileName = value
			}
		case "pages":
			opts.Pages, err = parseCount("pages", value, mode)
		case "copies":
			opts.Copies, err = parseCount("copies", value, mode)
		case "color":
			opts.ColorMode = ColorMode(strings.ToLower(value))
			err = checkEnum("colorMode", value, colorModes[opts.ColorMode], mode)
		case "sides":
			opts.Sidedness = Sidedness(strings.ToLower(value))
			err = checkEnum("sidedness", value, sides[opts.Sidedness], mode)
		case "quality":
			opts.PrintQuality = Quality(strings.ToLower(value))
			err = checkEnum("printQuality", value, qualities[opts.PrintQuality], mode)
		case "paper":
			opts.PaperType = PaperType(strings.ToLower(value))
			err = checkEnum("paperType", value, papers[opts.PaperType], mode)
		case "size":
			if value != "" {
				opts.PaperSize = value
			}
		case "orientation":
			if value != "" {
				opts.Orientation = strings.ToLower(value)
			}
		case "binding":
			opts.Binding = Binding(strings.ToLower(value))
			err = checkEnum("binding", value, bindings[opts.Binding], mode)
		case "finishing":
			opts.Finishing = Finishing(strings.ToLower(value))
			err = checkEnum("finishing", value, finishings[opts.Finishing], mode)
		case "delivery":
			opts.Delivery = Delivery(strings.ToLower(value))
			err = checkEnum("delivery", value, deliveries[opts.Delivery], mode)
		}
		if err != nil {
			return Options{}, err
		}
	}

	return opts, nil
}

// Values renders o as form values keyed by canonical option names.
// ParseOptions(o.Values(), mode) returns o for any valid o.
func (o Options) Values() map[string]string {
	return map[string]string{
		"file":        o.FileName,
		"pages":       strconv.Itoa(o.Pages),
		"copies":      strconv.Itoa(o.Copies),
		"color":       string(o.ColorMode),
		"sides":       string(o.Sidedness),
		"quality":     string(o.PrintQuality),
		"paper":       string(o.PaperType),
		"size":        o.PaperSize,
		"orientation": o.Orientation,
		"binding":     string(o.Binding),
		"finishing":   string(o.Finishing),
		"delivery":    string(o.Delivery),
	}
}

// Validate reports the first field outside the enumerated sets.
func (o Options) Validate() error {
	switch {
	case o.Pages < 1:
		return &InvalidOptionError{Field: "pages", Value: strconv.Itoa(o.Pages)}
	case o.Copies < 1:
		return &InvalidOptionError{Field: "copies", Value: strconv.Itoa(o.Copies)}
	case !colorModes[o.ColorMode]:
		return &InvalidOptionError{Field: "colorMode", Value: string(o.ColorMode)}
	case !sides[o.Sidedness]:
		return &InvalidOptionError{Field: "sidedness", Value: string(o.Sidedness)}
	case !qualities[o.PrintQuality]:
		return &InvalidOptionError{Field: "printQuality", Value: string(o.PrintQuality)}
	case !papers[o.PaperType]:
		return &InvalidOptionError{Field: "paperType", Value: string(o.PaperType)}
	case !bindings[o.Binding]:
		return &InvalidOptionError{Field: "binding", Value: string(o.Binding)}
	case !finishings[o.Finishing]:
		return &InvalidOptionError{Field: "finishing", Value: string(o.Finishing)}
	case !deliveries[o.Delivery]:
		return &InvalidOptionError{Field: "delivery", Value: string(o.Delivery)}
	}
	return nil
}

func parseCount(field, value string, mode Mode) (int, error) {
	if mode == Strict {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return 0, &InvalidOptionError{Field: field, Value: value}
		}
		return n, nil
	}
	return clampCount(value), nil
}

// clampCount coerces a declared count to an integer >= 1.
func clampCount(value string) int {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func checkEnum(field, value string, known bool, mode Mode) error {
	if mode == Strict && !known {
		return &InvalidOptionError{Field: field, Value: value}
	}
	return nil
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

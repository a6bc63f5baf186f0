package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// DoubleSidedDiscount is taken off the per-page cost of two-sided jobs.
// It is deliberately absent from Overrides and price tables.
const DoubleSidedDiscount = 0.10

// Config holds the price constants an estimate is computed from. It is
// a plain value: callers build one per request from the table and the
// admin overrides and pass it into Estimate.
type Config struct {
	BasePerPageBW    float64
	BasePerPageColor float64
	Quality          map[Quality]float64
	Paper            map[PaperType]float64
	BindingPerCopy   map[Binding]float64
	FinishingFlat    map[Finishing]float64
	DeliveryFee      map[Delivery]float64
}

func DefaultConfig() Config {
	return Config{
		BasePerPageBW:    1.0,
		BasePerPageColor: 1.0,
		Quality: map[Quality]float64{
			QualityDraft:    0.9,
			QualityStandard: 1.0,
			QualityHigh:     1.2,
		},
		Paper: map[PaperType]float64{
			PaperStandard: 1.0,
			PaperPremium:  1.2,
			PaperGlossy:   1.35,
		},
		BindingPerCopy: map[Binding]float64{
			BindingNone:   0,
			BindingStaple: 0.25,
			BindingSpiral: 2.5,
			BindingComb:   1.5,
		},
		FinishingFlat: map[Finishing]float64{
			FinishingNone:      0,
			FinishingLaminate:  250.0,
			FinishingHolePunch: 50.0,
		},
		DeliveryFee: map[Delivery]float64{
			DeliveryPickup:   0,
			DeliveryDelivery: 49.0,
		},
	}
}

// Clone returns a deep copy so that applying overrides never mutates a
// shared table.
func (c Config) Clone() Config {
	out := c
	out.Quality = cloneMap(c.Quality)
	out.Paper = cloneMap(c.Paper)
	out.BindingPerCopy = cloneMap(c.BindingPerCopy)
	out.FinishingFlat = cloneMap(c.FinishingFlat)
	out.DeliveryFee = cloneMap(c.DeliveryFee)
	return out
}

func cloneMap[K comparable](m map[K]float64) map[K]float64 {
	out := make(map[K]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Override keys accepted from the admin price form.
const (
	KeyBasePerPageBW     = "basePerPageBW"
	KeyBasePerPageColor  = "basePerPageColor"
	KeyDeliveryPickup    = "deliveryPickup"
	KeyDeliveryDelivery  = "deliveryDelivery"
	KeyBindingSpiral     = "bindingSpiral"
	KeyFinishingLaminate = "finishingLaminate"
)

var overrideKeys = map[string]bool{
	KeyBasePerPageBW:     true,
	KeyBasePerPageColor:  true,
	KeyDeliveryPickup:    true,
	KeyDeliveryDelivery:  true,
	KeyBindingSpiral:     true,
	KeyFinishingLaminate: true,
}

// OverrideKeys lists the overridable constants in a stable order.
func OverrideKeys() []string {
	keys := make([]string, 0, len(overrideKeys))
	for k := range overrideKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Overrides is the JSON-shaped admin override blob. Values are kept as
// decoded so that a malformed entry can be skipped at apply time
// without discarding the rest.
type Overrides map[string]any

// ParseOverrides decodes a stored override blob. An empty blob is an
// empty set of overrides.
func ParseOverrides(data []byte) (Overrides, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Overrides{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var o Overrides
	if err := dec.Decode(&o); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	if o == nil {
		o = Overrides{}
	}
	return o, nil
}

// Set stores a validated numeric override.
func (o Overrides) Set(key, value string) error {
	key = resolveOverrideKey(key)
	if !overrideKeys[key] {
		return fmt.Errorf("unknown price key %q", key)
	}
	v, ok := coerceNumber(value)
	if !ok {
		return fmt.Errorf("price %q for %s is not a number", value, key)
	}
	if v < 0 {
		return fmt.Errorf("price for %s must not be negative", key)
	}
	o[key] = v
	return nil
}

// Number returns the coerced value for key, if present and numeric.
func (o Overrides) Number(key string) (float64, bool) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return 0, false
	}
	return coerceNumber(raw)
}

func resolveOverrideKey(key string) string {
	key = strings.TrimSpace(key)
	for k := range overrideKeys {
		if strings.EqualFold(k, key) {
			return k
		}
	}
	return key
}

// Apply returns a copy of c with the overridable constants replaced.
// Entries that are missing or fail numeric coercion keep c's value.
func (c Config) Apply(o Overrides) Config {
	out := c.Clone()
	if v, ok := o.Number(KeyBasePerPageBW); ok {
		out.BasePerPageBW = v
	}
	if v, ok := o.Number(KeyBasePerPageColor); ok {
		out.BasePerPageColor = v
	}
	if v, ok := o.Number(KeyDeliveryPickup); ok {
		out.DeliveryFee[DeliveryPickup] = v
	}
	if v, ok := o.Number(KeyDeliveryDelivery); ok {
		out.DeliveryFee[DeliveryDelivery] = v
	}
	if v, ok := o.Number(KeyBindingSpiral); ok {
		out.BindingPerCopy[BindingSpiral] = v
	}
	if v, ok := o.Number(KeyFinishingLaminate); ok {
		out.FinishingFlat[FinishingLaminate] = v
	}
	return out
}

func coerceNumber(raw any) (float64, bool) {
	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case float32:
		v = float64(t)
	case int:
		v = float64(t)
	case int64:
		v = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

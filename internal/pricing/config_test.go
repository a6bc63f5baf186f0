package pricing

import "testing"

func TestApply_CoercesOverrides(t *testing.T) {
	o, err := ParseOverrides([]byte(`{
		"basePerPageBW": "2.0",
		"basePerPageColor": 1.5,
		"deliveryDelivery": "abc",
		"bindingSpiral": true,
		"finishingLaminate": "",
		"deliveryPickup": {"v": 1}
	}`))
	if err != nil {
		t.Fatalf("ParseOverrides failed: %v", err)
	}

	def := DefaultConfig()
	cfg := def.Apply(o)

	if cfg.BasePerPageBW != 2.0 {
		t.Errorf("numeric string not applied, got %v", cfg.BasePerPageBW)
	}
	if cfg.BasePerPageColor != 1.5 {
		t.Errorf("JSON number not applied, got %v", cfg.BasePerPageColor)
	}
	if cfg.DeliveryFee[DeliveryDelivery] != 49 {
		t.Errorf("non-numeric string applied, got %v", cfg.DeliveryFee[DeliveryDelivery])
	}
	if cfg.BindingPerCopy[BindingSpiral] != 2.5 {
		t.Errorf("bool applied, got %v", cfg.BindingPerCopy[BindingSpiral])
	}
	if cfg.FinishingFlat[FinishingLaminate] != 250 {
		t.Errorf("empty string applied, got %v", cfg.FinishingFlat[FinishingLaminate])
	}
	if cfg.DeliveryFee[DeliveryPickup] != 0 {
		t.Errorf("object applied, got %v", cfg.DeliveryFee[DeliveryPickup])
	}
}

func TestApply_DoesNotMutateBase(t *testing.T) {
	def := DefaultConfig()
	_ = def.Apply(Overrides{KeyBindingSpiral: 9.0, KeyDeliveryDelivery: 1.0})

	if def.BindingPerCopy[BindingSpiral] != 2.5 || def.DeliveryFee[DeliveryDelivery] != 49 {
		t.Error("Apply mutated the base config")
	}
}

func TestParseOverrides_Empty(t *testing.T) {
	for _, in := range []string{"", "  ", "null"} {
		o, err := ParseOverrides([]byte(in))
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if len(o) != 0 {
			t.Errorf("%q: expected no overrides, got %v", in, o)
		}
	}

	if _, err := ParseOverrides([]byte("{oops")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestOverridesSet(t *testing.T) {
	o := Overrides{}
	if err := o.Set("basepERPageColor", " 3.25 "); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok := o.Number(KeyBasePerPageColor); !ok || v != 3.25 {
		t.Errorf("Incorrect stored value, got %v (%v)", v, ok)
	}

	bad := []struct{ key, value string }{
		{"qualityHigh", "1"},
		{KeyDeliveryPickup, "free"},
		{KeyDeliveryPickup, "-5"},
		{KeyDeliveryPickup, "NaN"},
	}
	for _, tt := range bad {
		if err := o.Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%q, %q) accepted", tt.key, tt.value)
		}
	}
}

func TestOverrideKeys(t *testing.T) {
	keys := OverrideKeys()
	if len(keys) != 6 {
		t.Fatalf("expected 6 keys, got %v", keys)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("keys not sorted: %v", keys)
		}
	}
}

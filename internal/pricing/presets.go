package pricing

import "strings"

// Preset is a named bundle of finishing choices offered on the order form.
type Preset struct {
	Name         string
	ColorMode    ColorMode
	Sidedness    Sidedness
	Binding      Binding
	PrintQuality Quality
	PaperType    PaperType
}

var presets = map[string]Preset{
	"report": {
		Name:         "report",
		ColorMode:    ColorBW,
		Sidedness:    SidedTwo,
		Binding:      BindingSpiral,
		PrintQuality: QualityStandard,
		PaperType:    PaperStandard,
	},
	"handout": {
		Name:         "handout",
		ColorMode:    ColorBW,
		Sidedness:    SidedOne,
		Binding:      BindingStaple,
		PrintQuality: QualityDraft,
		PaperType:    PaperStandard,
	},
	"photos": {
		Name:         "photos",
		ColorMode:    ColorColor,
		Sidedness:    SidedOne,
		Binding:      BindingNone,
		PrintQuality: QualityHigh,
		PaperType:    PaperGlossy,
	},
}

// PresetNames returns the preset names in display order.
func PresetNames() []string {
	return []string{"report", "handout", "photos"}
}

// ApplyPreset overlays the named preset on opts. Counts, file name and
// delivery are left untouched.
func ApplyPreset(opts Options, name string) (Options, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return opts, false
	}
	opts.ColorMode = p.ColorMode
	opts.Sidedness = p.Sidedness
	opts.Binding = p.Binding
	opts.PrintQuality = p.PrintQuality
	opts.PaperType = p.PaperType
	return opts, true
}

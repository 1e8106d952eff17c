package config

import "sort"

var Presets = map[string]*Config{
	"tiny": {
		Size: 5, Algorithm: "bubble", Pattern: "random", Speed: 5,
	},
	"classroom": {
		Size: 12, Algorithm: "bubble", Pattern: "random", Speed: 8,
	},
	"worst-bubble": {
		Size: 20, Algorithm: "bubble", Pattern: "reversed", Speed: 60,
	},
	"worst-quick": {
		Size: 30, Algorithm: "quick", Pattern: "sorted", Speed: 60,
	},
	"nearly-sorted": {
		Size: 40, Algorithm: "bubble", Pattern: "nearly-sorted", Speed: 80,
	},
	"duplicates": {
		Size: 30, Algorithm: "quick", Pattern: "few-unique", Speed: 40,
	},
	"stress": {
		Size: 100, Algorithm: "quick", Pattern: "random", Speed: 100,
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Size = p.Size
	cfg.Algorithm = p.Algorithm
	cfg.Pattern = p.Pattern
	cfg.Speed = p.Speed
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package theme

import (
	"testing"

	"github.com/lamim/replicaforge/pkg/models"
)

func TestSuffixForTheme(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		fallback string
		want     string
	}{
		{"simple label", "Bakery Counter", "variant", "bakery-counter"},
		{"strips manager", "Coffee Shop Manager", "variant", "coffee"},
		{"strips store", "Pet Store Manager", "variant", "pet"},
		{"strips shop", "Flower Shop", "variant", "flower"},
		{"multi word", "Board Game Cafe", "variant", "board-game-cafe"},
		{"all stop words", "Store Shop Manager", "variant", "variant"},
		{"empty fallback defaults", "Store", "", "variant"},
		{"custom fallback", "Shop", "generic", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuffixForTheme(tt.label, tt.fallback); got != tt.want {
				t.Errorf("SuffixForTheme(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestAssignNoRepeatsWithinPool(t *testing.T) {
	themes := []string{"Bakery Counter", "Pizza Restaurant", "Flower Shop", "Music Academy"}
	palettes := DefaultPalettes[:4]

	s := NewSelector(themes, palettes, WithSeed(42))
	identities := s.Assign(4)

	if len(identities) != 4 {
		t.Fatalf("expected 4 identities, got %d", len(identities))
	}

	seenThemes := make(map[string]bool)
	seenPalettes := make(map[string]bool)
	for _, id := range identities {
		if seenThemes[id.ThemeName] {
			t.Errorf("theme %q assigned twice within pool size", id.ThemeName)
		}
		seenThemes[id.ThemeName] = true
		if seenPalettes[id.PaletteLabel] {
			t.Errorf("palette %q assigned twice within pool size", id.PaletteLabel)
		}
		seenPalettes[id.PaletteLabel] = true
	}
}

func TestAssignCyclesBeyondPool(t *testing.T) {
	themes := []string{"Bakery Counter", "Pizza Restaurant"}
	palettes := DefaultPalettes[:2]

	s := NewSelector(themes, palettes, WithSeed(7))
	identities := s.Assign(5)

	if len(identities) != 5 {
		t.Fatalf("expected 5 identities, got %d", len(identities))
	}
	// Unit i beyond the pool repeats unit i-len(pool).
	if identities[2].ThemeName != identities[0].ThemeName {
		t.Errorf("unit 3 theme %q, want cycled %q", identities[2].ThemeName, identities[0].ThemeName)
	}
	if identities[4].ThemeName != identities[0].ThemeName {
		t.Errorf("unit 5 theme %q, want cycled %q", identities[4].ThemeName, identities[0].ThemeName)
	}
}

func TestAssignSeedReproducible(t *testing.T) {
	a := NewSelector(nil, nil, WithSeed(99)).Assign(10)
	b := NewSelector(nil, nil, WithSeed(99)).Assign(10)

	for i := range a {
		if a[i].ThemeName != b[i].ThemeName || a[i].PaletteLabel != b[i].PaletteLabel {
			t.Fatalf("seeded assignments diverge at unit %d: %v vs %v", i+1, a[i], b[i])
		}
	}
}

func TestAssignPopulatesColors(t *testing.T) {
	s := NewSelector(nil, nil, WithSeed(1))
	identities := s.Assign(3)

	for i, id := range identities {
		if id.Colors.Primary == "" || id.Colors.Background == "" || id.Colors.Text == "" {
			t.Errorf("unit %d has incomplete palette: %+v", i+1, id.Colors)
		}
		if id.IDSuffix == "" {
			t.Errorf("unit %d has empty id suffix for theme %q", i+1, id.ThemeName)
		}
	}
}

func TestAssignIndependentShuffles(t *testing.T) {
	// Theme/palette pairing must be shuffle dependent, not positional.
	// With enough seeds at least one produces a pairing different from
	// another seed's.
	themes := []string{"Bakery Counter", "Pizza Restaurant", "Flower Shop"}
	palettes := []models.Palette{
		{Label: "A", Primary: "#111111"},
		{Label: "B", Primary: "#222222"},
		{Label: "C", Primary: "#333333"},
	}

	pairing := func(seed int64) map[string]string {
		out := make(map[string]string)
		for _, id := range NewSelector(themes, palettes, WithSeed(seed)).Assign(3) {
			out[id.ThemeName] = id.PaletteLabel
		}
		return out
	}

	base := pairing(1)
	diverged := false
	for seed := int64(2); seed < 20; seed++ {
		other := pairing(seed)
		for theme, label := range base {
			if other[theme] != label {
				diverged = true
			}
		}
	}
	if !diverged {
		t.Error("theme/palette pairing identical across all seeds")
	}
}

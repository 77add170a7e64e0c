// Package theme assigns a distinct visual identity to each unit of a
// generation batch: a theme label, an id suffix derived from it, and a
// color palette.
package theme

import (
	"math/rand"
	"strings"
	"time"

	"github.com/lamim/replicaforge/pkg/models"
)

// DefaultFallbackSuffix is used when suffix derivation empties a label.
const DefaultFallbackSuffix = "variant"

// suffix words carry no identity and are removed during derivation.
var suffixStopWords = []string{"store", "shop", "manager"}

// Selector hands out theme and palette identities for one batch.
// Themes and palettes are shuffled independently, so the pairing between
// a theme and a palette differs from batch to batch.
type Selector struct {
	themes         []string
	palettes       []models.Palette
	fallbackSuffix string
	rng            *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithSeed fixes the shuffle seed. Useful for reproducible batches and tests.
func WithSeed(seed int64) Option {
	return func(s *Selector) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithFallbackSuffix overrides the suffix used when derivation yields an
// empty string.
func WithFallbackSuffix(suffix string) Option {
	return func(s *Selector) {
		if suffix != "" {
			s.fallbackSuffix = suffix
		}
	}
}

// NewSelector creates a selector over the given pools. Empty pools fall
// back to the built-in defaults.
func NewSelector(themes []string, palettes []models.Palette, opts ...Option) *Selector {
	if len(themes) == 0 {
		themes = DefaultThemes
	}
	if len(palettes) == 0 {
		palettes = DefaultPalettes
	}

	s := &Selector{
		themes:         themes,
		palettes:       palettes,
		fallbackSuffix: DefaultFallbackSuffix,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assign returns identities for units 1..n. Within a batch no theme repeats
// until the whole pool has been consumed; the same holds for palettes.
func (s *Selector) Assign(n int) []models.Identity {
	themes := make([]string, len(s.themes))
	copy(themes, s.themes)
	s.rng.Shuffle(len(themes), func(i, j int) {
		themes[i], themes[j] = themes[j], themes[i]
	})

	palettes := make([]models.Palette, len(s.palettes))
	copy(palettes, s.palettes)
	s.rng.Shuffle(len(palettes), func(i, j int) {
		palettes[i], palettes[j] = palettes[j], palettes[i]
	})

	identities := make([]models.Identity, n)
	for i := 0; i < n; i++ {
		theme := themes[i%len(themes)]
		palette := palettes[i%len(palettes)]
		identities[i] = models.Identity{
			ThemeName:    theme,
			PaletteLabel: palette.Label,
			IDSuffix:     SuffixForTheme(theme, s.fallbackSuffix),
			Colors:       palette,
		}
	}
	return identities
}

// SuffixForTheme derives a DOM id suffix from a theme label: lower-cased,
// spaces replaced with hyphens, generic trade words removed, surrounding
// hyphens trimmed. An empty result falls back to the given fallback.
func SuffixForTheme(label, fallback string) string {
	suffix := strings.ToLower(label)
	suffix = strings.ReplaceAll(suffix, " ", "-")
	for _, word := range suffixStopWords {
		suffix = strings.ReplaceAll(suffix, word, "")
	}
	suffix = strings.Trim(suffix, "-")
	if suffix == "" {
		if fallback == "" {
			return DefaultFallbackSuffix
		}
		return fallback
	}
	return suffix
}

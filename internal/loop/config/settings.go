package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	env "github.com/tomz197/toycatch/internal/config"
)

// ErrInvalidConfiguration is returned when round settings cannot be used.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Difficulty selects the drop speed and spawn interval of a round.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Tuning is the pair of values a difficulty tier controls.
type Tuning struct {
	DropSpeed     float64       // Units per tick while falling
	SpawnInterval time.Duration // Minimum gap between spawns
}

var difficultyTuning = map[Difficulty]Tuning{
	Easy:   {DropSpeed: 1.5, SpawnInterval: 2500 * time.Millisecond},
	Normal: {DropSpeed: 2.0, SpawnInterval: 2000 * time.Millisecond},
	Hard:   {DropSpeed: 2.5, SpawnInterval: 1500 * time.Millisecond},
}

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Normal: "normal",
	Hard:   "hard",
}

// Difficulties lists the tiers from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Normal, Hard}
}

// String returns the tier name.
func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// Tuning returns the drop speed and spawn interval of the tier.
// Unknown tiers fall back to Normal.
func (d Difficulty) Tuning() Tuning {
	if t, ok := difficultyTuning[d]; ok {
		return t
	}
	return difficultyTuning[Normal]
}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	_, ok := difficultyTuning[d]
	return ok
}

// ParseDifficulty parses a tier name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range difficultyNames {
		if n == name {
			return d, nil
		}
	}
	return Normal, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfiguration, s)
}

// MarshalYAML encodes the tier by name.
func (d Difficulty) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML decodes the tier from its name.
func (d *Difficulty) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Dimension picks which side of the player's bounding box the hit radius
// is derived from.
type Dimension int

const (
	DimensionMax Dimension = iota
	DimensionMin
)

// String returns "max" or "min".
func (d Dimension) String() string {
	switch d {
	case DimensionMax:
		return "max"
	case DimensionMin:
		return "min"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// ParseDimension parses "max" or "min".
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max":
		return DimensionMax, nil
	case "min":
		return DimensionMin, nil
	}
	return DimensionMax, fmt.Errorf("%w: unknown hit radius dimension %q", ErrInvalidConfiguration, s)
}

// MarshalYAML encodes the dimension by name.
func (d Dimension) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML decodes the dimension from its name.
func (d *Dimension) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDimension(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// HitRadius derives the player's collision radius from its bounding box.
type HitRadius struct {
	Coefficient float64   `yaml:"coefficient"`
	Dimension   Dimension `yaml:"dimension"`
}

// Hit radius presets.
var (
	HitRadiusClassic  = HitRadius{Coefficient: 0.4, Dimension: DimensionMax}
	HitRadiusEnhanced = HitRadius{Coefficient: 0.45, Dimension: DimensionMax}
	HitRadiusTight    = HitRadius{Coefficient: 0.3, Dimension: DimensionMin}
)

// Of returns the hit radius for a box of the given size.
func (h HitRadius) Of(width, height float64) float64 {
	side := max(width, height)
	if h.Dimension == DimensionMin {
		side = min(width, height)
	}
	return side * h.Coefficient
}

// Settings is the configuration of one round. It is fixed once the round starts.
type Settings struct {
	RoundSeconds int        `yaml:"roundSeconds"`
	Difficulty   Difficulty `yaml:"difficulty"`
	MissPenalty  bool       `yaml:"missPenalty"`
	HitRadius    HitRadius  `yaml:"hitRadius"`
	Seed         int64      `yaml:"seed"` // 0 picks a time-based seed
}

// Default returns the standard round: one minute on normal, with the miss
// penalty and the 0.45×max hit radius.
func Default() Settings {
	return Settings{
		RoundSeconds: DefaultRoundSeconds,
		Difficulty:   Normal,
		MissPenalty:  true,
		HitRadius:    HitRadiusEnhanced,
	}
}

// Validate checks the settings. All failures wrap ErrInvalidConfiguration.
func (s Settings) Validate() error {
	if s.RoundSeconds <= 0 {
		return fmt.Errorf("%w: round duration must be positive, got %d", ErrInvalidConfiguration, s.RoundSeconds)
	}
	if !s.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %d", ErrInvalidConfiguration, int(s.Difficulty))
	}
	if c := s.HitRadius.Coefficient; c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return fmt.Errorf("%w: hit radius coefficient must be positive and finite, got %g", ErrInvalidConfiguration, s.HitRadius.Coefficient)
	}
	if s.HitRadius.Dimension != DimensionMax && s.HitRadius.Dimension != DimensionMin {
		return fmt.Errorf("%w: unknown hit radius dimension %d", ErrInvalidConfiguration, int(s.HitRadius.Dimension))
	}
	return nil
}

// Tuning returns the difficulty tuning of the round.
func (s Settings) Tuning() Tuning {
	return s.Difficulty.Tuning()
}

// RoundDuration returns the round length.
func (s Settings) RoundDuration() time.Duration {
	return time.Duration(s.RoundSeconds) * time.Second
}

// StepRoundSeconds moves the round length to the next longer (steps > 0) or
// shorter (steps < 0) entry of RoundChoices, stopping at either end. A length
// between choices moves to the nearest choice in that direction.
func (s Settings) StepRoundSeconds(steps int) Settings {
	for ; steps > 0; steps-- {
		for _, c := range RoundChoices {
			if c > s.RoundSeconds {
				s.RoundSeconds = c
				break
			}
		}
	}
	for ; steps < 0; steps++ {
		for i := len(RoundChoices) - 1; i >= 0; i-- {
			if c := RoundChoices[i]; c < s.RoundSeconds {
				s.RoundSeconds = c
				break
			}
		}
	}
	return s
}

// Load reads settings from a YAML file. Fields missing from the file keep
// their Default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over Default and validates the result.
func Parse(data []byte) (Settings, error) {
	settings := Default()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("%w: failed to parse settings YAML: %w", ErrInvalidConfiguration, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Environment variables read by FromEnv.
const (
	EnvConfigFile     = "TOYCATCH_CONFIG"
	EnvRoundSeconds   = "TOYCATCH_ROUND_SECONDS"
	EnvDifficulty     = "TOYCATCH_DIFFICULTY"
	EnvMissPenalty    = "TOYCATCH_MISS_PENALTY"
	EnvHitCoefficient = "TOYCATCH_HIT_COEFFICIENT"
	EnvHitDimension   = "TOYCATCH_HIT_DIMENSION"
	EnvSeed           = "TOYCATCH_SEED"
)

// FromEnv overlays the TOYCATCH_* environment variables on base and validates
// the result. Malformed values wrap ErrInvalidConfiguration.
func FromEnv(base Settings) (Settings, error) {
	s := base
	var err error

	if s.RoundSeconds, err = env.GetEnvInt(EnvRoundSeconds, s.RoundSeconds); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if v := env.GetEnv(EnvDifficulty, ""); v != "" {
		if s.Difficulty, err = ParseDifficulty(v); err != nil {
			return Settings{}, err
		}
	}
	if s.MissPenalty, err = env.GetEnvBool(EnvMissPenalty, s.MissPenalty); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if s.HitRadius.Coefficient, err = env.GetEnvFloat(EnvHitCoefficient, s.HitRadius.Coefficient); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if v := env.GetEnv(EnvHitDimension, ""); v != "" {
		if s.HitRadius.Dimension, err = ParseDimension(v); err != nil {
			return Settings{}, err
		}
	}
	seed, err := env.GetEnvInt(EnvSeed, int(s.Seed))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	s.Seed = int64(seed)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Resolve builds the settings for a binary: Default, then the YAML file named
// by TOYCATCH_CONFIG if set, then the environment overrides.
func Resolve() (Settings, error) {
	base := Default()
	if path := env.GetEnv(EnvConfigFile, ""); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Settings{}, err
		}
		base = loaded
	}
	return FromEnv(base)
}

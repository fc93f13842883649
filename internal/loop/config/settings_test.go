package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, time.Minute, s.RoundDuration())
	assert.Equal(t, Tuning{DropSpeed: 2, SpawnInterval: 2 * time.Second}, s.Tuning())
}

func TestStepRoundSeconds(t *testing.T) {
	s := Default()
	assert.Equal(t, 90, s.StepRoundSeconds(1).RoundSeconds)
	assert.Equal(t, 30, s.StepRoundSeconds(-1).RoundSeconds)
	assert.Equal(t, 180, s.StepRoundSeconds(10).RoundSeconds)
	assert.Equal(t, 30, s.StepRoundSeconds(-10).RoundSeconds)
	assert.Equal(t, 60, s.StepRoundSeconds(0).RoundSeconds)

	s.RoundSeconds = 45
	assert.Equal(t, 60, s.StepRoundSeconds(1).RoundSeconds)
	assert.Equal(t, 30, s.StepRoundSeconds(-1).RoundSeconds)

	s.RoundSeconds = 600
	assert.Equal(t, 600, s.StepRoundSeconds(1).RoundSeconds)
	assert.Equal(t, 180, s.StepRoundSeconds(-1).RoundSeconds)
}

func TestDifficultyTiers(t *testing.T) {
	easy, normal, hard := Easy.Tuning(), Normal.Tuning(), Hard.Tuning()
	assert.Less(t, easy.DropSpeed, normal.DropSpeed)
	assert.Less(t, normal.DropSpeed, hard.DropSpeed)
	assert.Greater(t, easy.SpawnInterval, normal.SpawnInterval)
	assert.Greater(t, normal.SpawnInterval, hard.SpawnInterval)

	assert.Equal(t, normal, Difficulty(9).Tuning())
	assert.Equal(t, []Difficulty{Easy, Normal, Hard}, Difficulties())

	d, err := ParseDifficulty(" HARD ")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)

	_, err = ParseDifficulty("nightmare")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestHitRadiusPresets(t *testing.T) {
	// 54x66 swimmer box.
	assert.InDelta(t, 26.4, HitRadiusClassic.Of(54, 66), 1e-9)
	assert.InDelta(t, 29.7, HitRadiusEnhanced.Of(54, 66), 1e-9)
	assert.InDelta(t, 16.2, HitRadiusTight.Of(54, 66), 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero round", func(s *Settings) { s.RoundSeconds = 0 }},
		{"negative round", func(s *Settings) { s.RoundSeconds = -5 }},
		{"unknown difficulty", func(s *Settings) { s.Difficulty = Difficulty(7) }},
		{"zero coefficient", func(s *Settings) { s.HitRadius.Coefficient = 0 }},
		{"NaN coefficient", func(s *Settings) { s.HitRadius.Coefficient = math.NaN() }},
		{"infinite coefficient", func(s *Settings) { s.HitRadius.Coefficient = math.Inf(1) }},
		{"unknown dimension", func(s *Settings) { s.HitRadius.Dimension = Dimension(3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErr  bool
		validate func(*testing.T, Settings)
	}{
		{
			name: "full settings",
			yaml: `
roundSeconds: 90
difficulty: hard
missPenalty: false
hitRadius:
  coefficient: 0.3
  dimension: min
seed: 42
`,
			validate: func(t *testing.T, s Settings) {
				assert.Equal(t, 90, s.RoundSeconds)
				assert.Equal(t, Hard, s.Difficulty)
				assert.False(t, s.MissPenalty)
				assert.Equal(t, HitRadiusTight, s.HitRadius)
				assert.Equal(t, int64(42), s.Seed)
			},
		},
		{
			name: "missing fields keep defaults",
			yaml: "difficulty: easy\n",
			validate: func(t *testing.T, s Settings) {
				assert.Equal(t, Easy, s.Difficulty)
				assert.Equal(t, DefaultRoundSeconds, s.RoundSeconds)
				assert.True(t, s.MissPenalty)
				assert.Equal(t, HitRadiusEnhanced, s.HitRadius)
			},
		},
		{name: "zero round", yaml: "roundSeconds: 0\n", wantErr: true},
		{name: "non-numeric round", yaml: "roundSeconds: soon\n", wantErr: true},
		{name: "unknown difficulty", yaml: "difficulty: brutal\n", wantErr: true},
		{name: "unknown dimension", yaml: "hitRadius:\n  coefficient: 0.4\n  dimension: diagonal\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			tt.validate(t, s)
		})
	}
}

func TestSettingsYAMLRoundTripByName(t *testing.T) {
	data, err := yaml.Marshal(Settings{
		RoundSeconds: 30,
		Difficulty:   Easy,
		HitRadius:    HitRadiusTight,
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "difficulty: easy")
	assert.Contains(t, string(data), "dimension: min")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roundSeconds: 45\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45, s.RoundSeconds)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read settings file")
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvRoundSeconds, "120")
	t.Setenv(EnvDifficulty, "easy")
	t.Setenv(EnvMissPenalty, "false")
	t.Setenv(EnvHitCoefficient, "0.4")
	t.Setenv(EnvHitDimension, "max")
	t.Setenv(EnvSeed, "9")

	s, err := FromEnv(Default())
	require.NoError(t, err)
	assert.Equal(t, 120, s.RoundSeconds)
	assert.Equal(t, Easy, s.Difficulty)
	assert.False(t, s.MissPenalty)
	assert.Equal(t, HitRadiusClassic, s.HitRadius)
	assert.Equal(t, int64(9), s.Seed)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvRoundSeconds, "sixty"},
		{EnvRoundSeconds, "-1"},
		{EnvDifficulty, "insane"},
		{EnvMissPenalty, "sometimes"},
		{EnvHitCoefficient, "big"},
		{EnvHitCoefficient, "NaN"},
		{EnvHitCoefficient, "+Inf"},
		{EnvHitDimension, "avg"},
		{EnvSeed, "random"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv(Default())
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestResolveReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.yaml")
	require.NoError(t, os.WriteFile(path, []byte("difficulty: hard\nroundSeconds: 10\n"), 0o644))
	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvRoundSeconds, "20")

	s, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, Hard, s.Difficulty)
	assert.Equal(t, 20, s.RoundSeconds, "environment overrides the file")
}

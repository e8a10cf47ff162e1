package workload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yannngn/theboys/sim"
)

func TestLoadWorldSpec_ValidYAML_LoadsOverDefaults(t *testing.T) {
	// GIVEN a file overriding a handful of fields
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	yaml := `
seed: 7
horizon: 10000
heroes: 5
bases: 3
hero:
  speed:
    min: 100
    max: 200
mission:
  skills:
    min: 2
    max: 4
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	// WHEN loaded
	spec, err := LoadWorldSpec(path)

	// THEN listed fields are set and the rest keep their defaults
	require.NoError(t, err)
	assert.Equal(t, int64(7), spec.Seed)
	assert.Equal(t, int64(10000), spec.Horizon)
	assert.Equal(t, 5, spec.Heroes)
	assert.Equal(t, 3, spec.Bases)
	assert.Equal(t, IntRange{Min: 100, Max: 200}, spec.Hero.Speed)
	assert.Equal(t, IntRange{Min: 0, Max: 100}, spec.Hero.Patience)
	assert.Equal(t, IntRange{Min: 2, Max: 4}, spec.Mission.Skills)
	assert.Equal(t, 20000, spec.WorldSize)
	assert.Equal(t, sim.DefaultRetryInterval, spec.RetryInterval)
	assert.NoError(t, spec.Validate())
}

func TestParseWorldSpec_UnknownField_Rejected(t *testing.T) {
	_, err := ParseWorldSpec([]byte("heroes: 3\nvillains: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "villains")
}

func TestLoadWorldSpec_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadWorldSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultWorldSpec_IsValid(t *testing.T) {
	spec := DefaultWorldSpec()
	require.NoError(t, spec.Validate())
	assert.Equal(t, int64(525600), spec.Horizon)
	assert.Equal(t, 50, spec.Heroes)
	assert.Equal(t, 8, spec.Bases)
	assert.Equal(t, 5256, spec.Missions)
	assert.Equal(t, int64(4320), spec.ArrivalWindow)
}

func TestWorldSpec_ApplyEnv_OverridesOnlySetVariables(t *testing.T) {
	// GIVEN environment overrides for a top-level and a nested field
	t.Setenv("THEBOYS_HEROES", "12")
	t.Setenv("THEBOYS_HERO_SPEED_MAX", "900")
	t.Setenv("THEBOYS_SEED", "-3")

	// WHEN applied over the defaults
	spec := DefaultWorldSpec()
	require.NoError(t, spec.ApplyEnv())

	// THEN those fields change and nothing else does
	assert.Equal(t, 12, spec.Heroes)
	assert.Equal(t, 900, spec.Hero.Speed.Max)
	assert.Equal(t, 50, spec.Hero.Speed.Min)
	assert.Equal(t, int64(-3), spec.Seed)
	assert.Equal(t, 8, spec.Bases)
}

func TestWorldSpec_ApplyEnv_MalformedValue_ReturnsError(t *testing.T) {
	t.Setenv("THEBOYS_BASES", "many")
	assert.Error(t, DefaultWorldSpec().ApplyEnv())
}

func TestWorldSpec_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorldSpec)
		wantErr string
	}{
		{"zero horizon", func(s *WorldSpec) { s.Horizon = 0 }, "horizon"},
		{"single base", func(s *WorldSpec) { s.Bases = 1 }, "at least 2 bases"},
		{"too many skills", func(s *WorldSpec) { s.NumSkills = 65 }, "num_skills"},
		{"no skills", func(s *WorldSpec) { s.NumSkills = 0 }, "num_skills"},
		{"negative heroes", func(s *WorldSpec) { s.Heroes = -1 }, "heroes"},
		{"zero speed", func(s *WorldSpec) { s.Hero.Speed.Min = 0 }, "hero.speed"},
		{"inverted range", func(s *WorldSpec) { s.Base.Capacity = IntRange{Min: 5, Max: 4} }, "base.capacity"},
		{"hero skills beyond universe", func(s *WorldSpec) { s.Hero.Skills.Max = 11 }, "hero.skills.max"},
		{"mission skills beyond universe", func(s *WorldSpec) { s.Mission.Skills.Min = 11; s.Mission.Skills.Max = 12 }, "mission.skills.min"},
		{"skill-less heroes", func(s *WorldSpec) { s.Hero.Skills.Min = 0 }, "hero.skills.min"},
		{"zero capacity", func(s *WorldSpec) { s.Base.Capacity.Min = 0 }, "base.capacity.min"},
		{"skill-less missions", func(s *WorldSpec) { s.Mission.Skills.Min = 0 }, "mission.skills.min"},
		{"zero retry", func(s *WorldSpec) { s.RetryInterval = 0 }, "retry_interval"},
		{"negative window", func(s *WorldSpec) { s.ArrivalWindow = -1 }, "arrival_window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultWorldSpec()
			tt.mutate(spec)
			err := spec.Validate()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should mention %q", err, tt.wantErr)
		})
	}
}

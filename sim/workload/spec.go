package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Yannngn/theboys/sim"
)

// EnvPrefix prefixes every environment variable that overrides a WorldSpec field.
const EnvPrefix = "THEBOYS_"

// IntRange is an inclusive [Min, Max] range sampled uniformly.
type IntRange struct {
	Min int `yaml:"min" env:"MIN"`
	Max int `yaml:"max" env:"MAX"`
}

// HeroSpec describes how hero attributes are drawn.
type HeroSpec struct {
	Patience IntRange `yaml:"patience" envPrefix:"PATIENCE_"`
	Speed    IntRange `yaml:"speed" envPrefix:"SPEED_"`
	Skills   IntRange `yaml:"skills" envPrefix:"SKILLS_"` // number of distinct skills per hero
}

// BaseSpec describes how base attributes are drawn.
type BaseSpec struct {
	Capacity IntRange `yaml:"capacity" envPrefix:"CAPACITY_"`
}

// MissionSpec describes how mission attributes are drawn.
type MissionSpec struct {
	Skills IntRange `yaml:"skills" envPrefix:"SKILLS_"` // number of distinct required skills
}

// WorldSpec is the top-level description of a generated world.
// Loaded from YAML via LoadWorldSpec, then optionally overlaid from the
// environment via ApplyEnv.
type WorldSpec struct {
	Seed          int64       `yaml:"seed" env:"SEED"`
	Horizon       int64       `yaml:"horizon" env:"HORIZON"`
	WorldSize     int         `yaml:"world_size" env:"WORLD_SIZE"` // coordinates lie in [0, WorldSize]
	NumSkills     int         `yaml:"num_skills" env:"NUM_SKILLS"`
	Heroes        int         `yaml:"heroes" env:"HEROES"`
	Bases         int         `yaml:"bases" env:"BASES"`
	Missions      int         `yaml:"missions" env:"MISSIONS"`
	Hero          HeroSpec    `yaml:"hero" envPrefix:"HERO_"`
	Base          BaseSpec    `yaml:"base" envPrefix:"BASE_"`
	Mission       MissionSpec `yaml:"mission" envPrefix:"MISSION_"`
	ArrivalWindow int64       `yaml:"arrival_window" env:"ARRIVAL_WINDOW"` // first arrivals land in [0, ArrivalWindow]
	RetryInterval int64       `yaml:"retry_interval" env:"RETRY_INTERVAL"`
}

// DefaultWorldSpec returns the one-year, fifty-hero world.
func DefaultWorldSpec() *WorldSpec {
	return &WorldSpec{
		Seed:      42,
		Horizon:   sim.DefaultHorizon,
		WorldSize: 20000,
		NumSkills: 10,
		Heroes:    50,
		Bases:     8,
		Missions:  5256,
		Hero: HeroSpec{
			Patience: IntRange{Min: 0, Max: 100},
			Speed:    IntRange{Min: 50, Max: 5000},
			Skills:   IntRange{Min: 1, Max: 3},
		},
		Base:          BaseSpec{Capacity: IntRange{Min: 3, Max: 10}},
		Mission:       MissionSpec{Skills: IntRange{Min: 6, Max: 10}},
		ArrivalWindow: 4320,
		RetryInterval: sim.DefaultRetryInterval,
	}
}

// LoadWorldSpec reads a YAML world spec. Fields absent from the file keep
// their defaults; unknown fields are rejected.
func LoadWorldSpec(path string) (*WorldSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world spec: %w", err)
	}
	return ParseWorldSpec(data)
}

// ParseWorldSpec decodes YAML bytes over the defaults.
func ParseWorldSpec(data []byte) (*WorldSpec, error) {
	spec := DefaultWorldSpec()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(spec); err != nil {
		return nil, fmt.Errorf("parsing world spec: %w", err)
	}
	return spec, nil
}

// ApplyEnv overrides fields from THEBOYS_* environment variables,
// e.g. THEBOYS_HEROES or THEBOYS_HERO_SPEED_MAX. Unset variables leave
// fields untouched.
func (s *WorldSpec) ApplyEnv() error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("reading environment overrides: %w", err)
	}
	return nil
}

// Validate checks that all fields of the world are valid.
func (s *WorldSpec) Validate() error {
	if s.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", s.Horizon)
	}
	if s.WorldSize < 0 {
		return fmt.Errorf("world_size must be non-negative, got %d", s.WorldSize)
	}
	if s.NumSkills <= 0 || s.NumSkills > sim.MaxSkill {
		return fmt.Errorf("num_skills must be in [1, %d], got %d", sim.MaxSkill, s.NumSkills)
	}
	if s.Heroes < 0 || s.Missions < 0 {
		return fmt.Errorf("heroes and missions must be non-negative, got %d and %d", s.Heroes, s.Missions)
	}
	if s.Bases < 2 {
		return fmt.Errorf("at least 2 bases required so heroes always have a destination, got %d", s.Bases)
	}
	if s.ArrivalWindow < 0 {
		return fmt.Errorf("arrival_window must be non-negative, got %d", s.ArrivalWindow)
	}
	if s.RetryInterval <= 0 {
		return fmt.Errorf("retry_interval must be positive, got %d", s.RetryInterval)
	}
	if err := validateRange("hero.patience", s.Hero.Patience, 0); err != nil {
		return err
	}
	if err := validateRange("hero.speed", s.Hero.Speed, 1); err != nil {
		return err
	}
	if err := validateRange("hero.skills", s.Hero.Skills, 1); err != nil {
		return err
	}
	if err := validateRange("base.capacity", s.Base.Capacity, 1); err != nil {
		return err
	}
	if err := validateRange("mission.skills", s.Mission.Skills, 1); err != nil {
		return err
	}
	if s.Hero.Skills.Max > s.NumSkills {
		return fmt.Errorf("hero.skills.max %d exceeds num_skills %d", s.Hero.Skills.Max, s.NumSkills)
	}
	if s.Mission.Skills.Min > s.NumSkills {
		return fmt.Errorf("mission.skills.min %d exceeds num_skills %d", s.Mission.Skills.Min, s.NumSkills)
	}
	return nil
}

func validateRange(name string, r IntRange, floor int) error {
	if r.Min < floor {
		return fmt.Errorf("%s.min must be >= %d, got %d", name, floor, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s: max %d is below min %d", name, r.Max, r.Min)
	}
	return nil
}

// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Yard      YardConfig      `yaml:"yard"`
	Session   SessionConfig   `yaml:"session"`
	Player    PlayerConfig    `yaml:"player"`
	Flock     FlockConfig     `yaml:"flock"`
	Predators PredatorsConfig `yaml:"predators"`
	Visitor   VisitorConfig   `yaml:"visitor"`
	Feed      FeedConfig      `yaml:"feed"`
	Eggs      EggsConfig      `yaml:"eggs"`
	Score     ScoreConfig     `yaml:"score"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// YardConfig holds play-area geometry. The yard is a square centered on the
// origin. Birds are pulled back inside beyond FenceHalf, accrue out-of-bounds
// grace beyond BoundsHalf, and are hard-clamped at ClampHalf.
type YardConfig struct {
	FenceHalf  float64 `yaml:"fence_half"`
	BoundsHalf float64 `yaml:"bounds_half"`
	ClampHalf  float64 `yaml:"clamp_half"`
	EscapeHalf float64 `yaml:"escape_half"` // carrying predators vanish past this

	Coop CoopConfig `yaml:"coop"`
	Pond PondConfig `yaml:"pond"`
}

// CoopConfig holds the coop footprint, door and nest row.
type CoopConfig struct {
	CenterX     float64 `yaml:"center_x"`
	CenterY     float64 `yaml:"center_y"`
	HalfWidth   float64 `yaml:"half_width"`
	HalfDepth   float64 `yaml:"half_depth"`
	DoorX       float64 `yaml:"door_x"`
	DoorY       float64 `yaml:"door_y"`
	DoorRadius  float64 `yaml:"door_radius"`
	AvoidMargin float64 `yaml:"avoid_margin"`
	NestCount   int     `yaml:"nest_count"`
	NestReach   float64 `yaml:"nest_reach"`
}

// PondConfig holds the duck attractor.
type PondConfig struct {
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	Radius  float64 `yaml:"radius"`
}

// SessionConfig holds session-level timing.
type SessionConfig struct {
	TimeBudget    float64 `yaml:"time_budget"`     // seconds until success
	SafeInterval  float64 `yaml:"safe_interval"`   // cadence of the all-birds-safe bonus
	HighEggTarget int     `yaml:"high_egg_target"` // eggs needed for the completion egg bonus
}

// PlayerConfig holds player movement and action ranges.
type PlayerConfig struct {
	Speed       float64 `yaml:"speed"`
	ScareRadius float64 `yaml:"scare_radius"` // birds within this flee a scare action
}

// FlockConfig holds bird counts and behavior tuning.
type FlockConfig struct {
	Chickens int `yaml:"chickens"`
	Ducks    int `yaml:"ducks"`

	WanderSpeed     float64 `yaml:"wander_speed"`
	FleeMultiplier  float64 `yaml:"flee_multiplier"`  // predator flee speed factor
	ScareMultiplier float64 `yaml:"scare_multiplier"` // player-scare flee speed factor
	AlertRadius     float64 `yaml:"alert_radius"`     // predator distance that triggers fleeing
	FleeCooldown    float64 `yaml:"flee_cooldown"`    // seconds fleeing suppresses other behavior

	WanderMin float64 `yaml:"wander_min"` // heading-change cadence bounds
	WanderMax float64 `yaml:"wander_max"`

	CoopVisitMin float64 `yaml:"coop_visit_min"` // chicken coop-visit cadence bounds
	CoopVisitMax float64 `yaml:"coop_visit_max"`
	CoopStay     float64 `yaml:"coop_stay"`
	PondBias     float64 `yaml:"pond_bias"` // duck heading pull toward the pond

	PerchRadius float64 `yaml:"perch_radius"` // distance at which perching can roll
	PerchChance float64 `yaml:"perch_chance"` // per-frame perch probability
	MaxPerched  int     `yaml:"max_perched"`

	OutGrace float64 `yaml:"out_grace"` // seconds outside bounds before running away
}

// PredatorsConfig holds shared predator tuning plus the per-kind blocks.
type PredatorsConfig struct {
	Hawk PredatorKindConfig `yaml:"hawk"`
	Dog  PredatorKindConfig `yaml:"dog"`

	FleeRadius     float64 `yaml:"flee_radius"`     // distance from threat that ends fleeing
	CaptureRadius  float64 `yaml:"capture_radius"`  // range contact for capture/stalk lock
	CruiseAltitude float64 `yaml:"cruise_altitude"` // flyer idle altitude
	ClimbRate      float64 `yaml:"climb_rate"`
	AvoidRadius    float64 `yaml:"avoid_radius"` // soft nudge away from player/visitor
}

// PredatorKindConfig holds one predator kind.
type PredatorKindConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Speed      float64 `yaml:"speed"`
	CarrySpeed float64 `yaml:"carry_speed"`
	Health     int     `yaml:"health"`
	Flying     bool    `yaml:"flying"`
	StalkTime  float64 `yaml:"stalk_time"` // 0 = immediate capture
	ScareRange float64 `yaml:"scare_range"`
	SpawnMin   float64 `yaml:"spawn_min"`
	SpawnMax   float64 `yaml:"spawn_max"`
}

// VisitorConfig holds the visitor NPC tuning.
type VisitorConfig struct {
	SpawnMin      float64 `yaml:"spawn_min"`
	SpawnMax      float64 `yaml:"spawn_max"`
	WalkSpeed     float64 `yaml:"walk_speed"`
	SitDuration   float64 `yaml:"sit_duration"`
	TreatInterval float64 `yaml:"treat_interval"`
	AttractRadius float64 `yaml:"attract_radius"`
	AttractChance float64 `yaml:"attract_chance"` // per-frame pull roll for birds in radius
	EnterX        float64 `yaml:"enter_x"` // interior x-threshold ending the entering walk
	ExitX         float64 `yaml:"exit_x"`  // x past which a leaving visitor is gone
}

// FeedConfig holds corn-pile parameters.
type FeedConfig struct {
	Charges   int     `yaml:"charges"`
	Lifetime  float64 `yaml:"lifetime"`
	SeekSpeed float64 `yaml:"seek_speed"`
	EatRadius float64 `yaml:"eat_radius"`
}

// EggsConfig holds the nest/egg cycle timing.
type EggsConfig struct {
	LayDelay float64 `yaml:"lay_delay"` // seconds until eggs become available
	Window   float64 `yaml:"window"`    // seconds eggs stay collectable
}

// ScoreConfig holds the signed deltas tied to named events.
type ScoreConfig struct {
	EggCollect       int `yaml:"egg_collect"`
	FullBasket       int `yaml:"full_basket"`
	BirdRanAway      int `yaml:"bird_ran_away"`
	BirdKilled       int `yaml:"bird_killed"`
	PredatorDefeated int `yaml:"predator_defeated"`
	FlockSafeBonus   int `yaml:"flock_safe_bonus"`
	CompletionBase   int `yaml:"completion_base"`
	FullSurvival     int `yaml:"full_survival"`
	HighEggs         int `yaml:"high_eggs"`
	ZeroKills        int `yaml:"zero_kills"`
}

// TelemetryConfig holds telemetry output parameters.
type TelemetryConfig struct {
	FlushEvery int `yaml:"flush_every"` // events between CSV flushes
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ClampHalf32  float32 // world half-extent for the camera fit
	InitialFlock int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// RecomputeDerived refreshes derived values after programmatic changes to
// the loaded configuration.
func (c *Config) RecomputeDerived() {
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ClampHalf32 = float32(c.Yard.ClampHalf)
	c.Derived.InitialFlock = c.Flock.Chickens + c.Flock.Ducks
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

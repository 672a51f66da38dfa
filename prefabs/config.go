package prefabs

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("prefabs: invalid config")

// DefaultConfigName is the embedded tuning table.
const DefaultConfigName = "config.yaml"

// Config is the static tuning table. Distances are px, speeds px/s,
// durations seconds. Fields documented "per tick" are 1/60 s factors.
type Config struct {
	Canvas       CanvasConfig         `yaml:"canvas"`
	Player       PlayerConfig         `yaml:"player"`
	Bullet       BulletConfig         `yaml:"bullet"`
	EnemyBullet  EnemyBulletConfig    `yaml:"enemy_bullet"`
	Enemies      EnemiesConfig        `yaml:"enemies"`
	Spawn        SpawnConfig          `yaml:"spawn"`
	Guardian     GuardianConfig       `yaml:"guardian"`
	Treasure     TreasureConfig       `yaml:"treasure"`
	Experience   ExperienceConfig     `yaml:"experience"`
	HealthPack   HealthPackConfig     `yaml:"health_pack"`
	Score        ScoreConfig          `yaml:"score"`
	Shield       ShieldConfig         `yaml:"shield"`
	Drone        DroneConfig          `yaml:"drone"`
	EnergyField  EnergyFieldConfig    `yaml:"energy_field"`
	GuidedWeapon GuidedWeaponConfig   `yaml:"guided_weapon"`
	Boss         BossConfig           `yaml:"boss"`
	Arena        ArenaConfig          `yaml:"arena"`
	Portal       PortalConfig         `yaml:"portal"`
	Camera       CameraConfig         `yaml:"camera"`
	Chunks       ChunkConfig          `yaml:"chunks"`
	Effects      EffectsConfig        `yaml:"effects"`
	Upgrades     UpgradeConfig        `yaml:"upgrades"`
	Shop         ShopConfig           `yaml:"shop"`
	Palette      map[string]YAMLColor `yaml:"palette"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerConfig struct {
	Size            float64 `yaml:"size"`
	MaxHealth       float64 `yaml:"max_health"`
	Damage          float64 `yaml:"damage"`
	Accel           float64 `yaml:"accel"`
	Friction        float64 `yaml:"friction"` // per tick
	MaxSpeed        float64 `yaml:"max_speed"`
	StopSpeed       float64 `yaml:"stop_speed"`
	ShootCooldown   float64 `yaml:"shoot_cooldown"`
	BulletCount     int     `yaml:"bullet_count"`
	MultishotSpread float64 `yaml:"multishot_spread"`
}

type BulletConfig struct {
	Size             float64 `yaml:"size"`
	Speed            float64 `yaml:"speed"`
	MaxDistance      float64 `yaml:"max_distance"`
	SplitSizeScale   float64 `yaml:"split_size_scale"`
	SplitDamageScale float64 `yaml:"split_damage_scale"`
}

type EnemyBulletConfig struct {
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"`
}

// EnemyConfig describes one wave enemy. Per-wave fields are added
// (wave-1) times.
type EnemyConfig struct {
	Size             float64 `yaml:"size"`
	Speed            float64 `yaml:"speed"`
	Health           float64 `yaml:"health"`
	HealthPerWave    float64 `yaml:"health_per_wave"`
	Damage           float64 `yaml:"damage"`
	DamagePerWave    float64 `yaml:"damage_per_wave"`
	ContactDamage    float64 `yaml:"contact_damage"`
	ShootCooldown    float64 `yaml:"shoot_cooldown"`
	CooldownPerWave  float64 `yaml:"cooldown_per_wave"`
	MinShootCooldown float64 `yaml:"min_shoot_cooldown"`
	KeepDistance     float64 `yaml:"keep_distance"`
	Volley           int     `yaml:"volley"`
	BurstDecay       float64 `yaml:"burst_decay"` // per tick
	ContactKamikaze  bool    `yaml:"contact_kamikaze"`
	FirstShotJitter  float64 `yaml:"first_shot_jitter"`
}

func (e EnemyConfig) HealthAt(wave int) float64 {
	return e.Health + float64(waveSteps(wave))*e.HealthPerWave
}

func (e EnemyConfig) DamageAt(wave int) float64 {
	return e.Damage + float64(waveSteps(wave))*e.DamagePerWave
}

func (e EnemyConfig) CooldownAt(wave int) float64 {
	cd := e.ShootCooldown - float64(waveSteps(wave))*e.CooldownPerWave
	if cd < e.MinShootCooldown {
		cd = e.MinShootCooldown
	}
	return cd
}

func waveSteps(wave int) int {
	if wave < 1 {
		return 0
	}
	return wave - 1
}

type EnemiesConfig struct {
	Normal EnemyConfig `yaml:"normal"`
	Chaser EnemyConfig `yaml:"chaser"`
	Titan  EnemyConfig `yaml:"titan"`
}

type SpawnConfig struct {
	Interval     float64            `yaml:"interval"`
	Distance     float64            `yaml:"distance"`
	Distribution map[string]float64 `yaml:"distribution"`
	TitanMinWave int                `yaml:"titan_min_wave"`
	PackMin      int                `yaml:"pack_min"`
	PackMax      int                `yaml:"pack_max"`
	PackSpread   float64            `yaml:"pack_spread"`
	KillsPerWave int                `yaml:"kills_per_wave"`
}

type GuardianConfig struct {
	EnemyConfig `yaml:",inline"`

	AggroRange     float64 `yaml:"aggro_range"`
	AggroExit      float64 `yaml:"aggro_exit"`
	GuardRange     float64 `yaml:"guard_range"`
	ReturnFraction float64 `yaml:"return_fraction"`
	WanderInterval float64 `yaml:"wander_interval"`
	WanderSpeed    float64 `yaml:"wander_speed"`
}

type TreasureConfig struct {
	Size            float64 `yaml:"size"`
	GuardCount      int     `yaml:"guard_count"`
	GuardDistance   float64 `yaml:"guard_distance"`
	WaveOffsetMin   int     `yaml:"wave_offset_min"`
	WaveOffsetMax   int     `yaml:"wave_offset_max"`
	SpawnDistance   float64 `yaml:"spawn_distance"`
	SpawnJitter     float64 `yaml:"spawn_jitter"`
	GemChance       float64 `yaml:"gem_chance"`
	GemCount        int     `yaml:"gem_count"`
	GemScatter      float64 `yaml:"gem_scatter"`
	HealthPackCount int     `yaml:"health_pack_count"`
	PickupDelay     float64 `yaml:"pickup_delay"`
	MagnetRange     float64 `yaml:"magnet_range"`
	SnapDistance    float64 `yaml:"snap_distance"`
}

type ExperienceConfig struct {
	Base         float64 `yaml:"base"`
	Multiplier   float64 `yaml:"multiplier"`
	GemSize      float64 `yaml:"gem_size"`
	GemValue     float64 `yaml:"gem_value"`
	ValuePerWave float64 `yaml:"value_per_wave"`
	MagnetRange  float64 `yaml:"magnet_range"`
	Speed        float64 `yaml:"speed"`
}

func (e ExperienceConfig) ValueAt(wave int) float64 {
	return e.GemValue + float64(waveSteps(wave))*e.ValuePerWave
}

type HealthPackConfig struct {
	Size               float64 `yaml:"size"`
	DropChance         float64 `yaml:"drop_chance"`
	HealFraction       float64 `yaml:"heal_fraction"`
	RepairDropBonus    float64 `yaml:"repair_drop_bonus"`
	RepairHealFraction float64 `yaml:"repair_heal_fraction"`
	MagnetRange        float64 `yaml:"magnet_range"`
	Speed              float64 `yaml:"speed"`
}

type ScoreConfig struct {
	Enemy           int     `yaml:"enemy"`
	Guardian        int     `yaml:"guardian"`
	Boss            int     `yaml:"boss"`
	GuardianGems    int     `yaml:"guardian_gems"`
	BossGems        int     `yaml:"boss_gems"`
	BossScatter     float64 `yaml:"boss_scatter"`
	GuardianScatter float64 `yaml:"guardian_scatter"`
}

type ShieldConfig struct {
	Distance     float64 `yaml:"distance"`
	Size         float64 `yaml:"size"`
	AngularSpeed float64 `yaml:"angular_speed"`
}

type DroneConfig struct {
	Distance     float64 `yaml:"distance"`
	Size         float64 `yaml:"size"`
	Cooldown     float64 `yaml:"cooldown"`
	AngularSpeed float64 `yaml:"angular_speed"`
	TurnLerp     float64 `yaml:"turn_lerp"` // per tick
	DamageScale  float64 `yaml:"damage_scale"`
}

type EnergyFieldConfig struct {
	Radius          float64 `yaml:"radius"`
	DamagePerSecond float64 `yaml:"damage_per_second"`
	DamagePerLevel  float64 `yaml:"damage_per_level"`
	RadiusScale     float64 `yaml:"radius_scale"`
	MaxRadius       float64 `yaml:"max_radius"`
}

type GuidedWeaponConfig struct {
	BaseCooldown   float64 `yaml:"base_cooldown"`
	CooldownScale  float64 `yaml:"cooldown_scale"`
	BaseDamage     float64 `yaml:"base_damage"`
	DamageScale    float64 `yaml:"damage_scale"`
	LevelsPerExtra int     `yaml:"levels_per_extra"`
	SearchRadius   float64 `yaml:"search_radius"`
	BlastRadius    float64 `yaml:"blast_radius"`
	MissileSize    float64 `yaml:"missile_size"`
	MissileSpeed   float64 `yaml:"missile_speed"`
	TurnRate       float64 `yaml:"turn_rate"`
	Prediction     float64 `yaml:"prediction"`
	MaxDistance    float64 `yaml:"max_distance"`
}

type BossConfig struct {
	Name            string   `yaml:"name"`
	Size            float64  `yaml:"size"`
	Health          float64  `yaml:"health"`
	Wave            int      `yaml:"wave"`
	EnterDuration   float64  `yaml:"enter_duration"`
	EnterOffset     float64  `yaml:"enter_offset"`
	ShakeIntensity  float64  `yaml:"shake_intensity"`
	InitialCooldown float64  `yaml:"initial_cooldown"`
	CooldownMin     float64  `yaml:"cooldown_min"`
	CooldownMax     float64  `yaml:"cooldown_max"`
	SwayAmplitude   float64  `yaml:"sway_amplitude"`
	SwayLerp        float64  `yaml:"sway_lerp"` // per tick
	Pattern         []string `yaml:"pattern"`
	PatternScript   string   `yaml:"pattern_script"`
	ContactDamage   float64  `yaml:"contact_damage"`

	Chasers   BossChaserConfig    `yaml:"chasers"`
	Shockwave BossShockwaveConfig `yaml:"shockwave"`
	Laser     BossLaserConfig     `yaml:"laser"`
}

type BossChaserConfig struct {
	Count    int     `yaml:"count"`
	Interval float64 `yaml:"interval"`
	Burst    float64 `yaml:"burst"`
}

type BossShockwaveConfig struct {
	Charge       float64 `yaml:"charge"`
	MaxRadius    float64 `yaml:"max_radius"`
	ExpandSpeed  float64 `yaml:"expand_speed"`
	Thickness    float64 `yaml:"thickness"`
	Damage       float64 `yaml:"damage"`
	SlowFactor   float64 `yaml:"slow_factor"`
	SlowDuration float64 `yaml:"slow_duration"`
}

type BossLaserConfig struct {
	Lock    float64 `yaml:"lock"`
	Delay   float64 `yaml:"delay"`
	Damage  float64 `yaml:"damage"`
	Width   float64 `yaml:"width"`
	Life    float64 `yaml:"life"`
	FadeIn  float64 `yaml:"fade_in"`
	FadeOut float64 `yaml:"fade_out"`
}

type ArenaConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	FormationRate   float64 `yaml:"formation_rate"`
	DissipationRate float64 `yaml:"dissipation_rate"`
}

type PortalConfig struct {
	Offset float64 `yaml:"offset"`
	Size   float64 `yaml:"size"`
}

type CameraConfig struct {
	Smoothing float64 `yaml:"smoothing"` // per tick
}

type ChunkConfig struct {
	Size          float64 `yaml:"size"`
	ViewDistance  int     `yaml:"view_distance"`
	PruneDistance int     `yaml:"prune_distance"`
	Stars         int     `yaml:"stars"`
}

type EffectsConfig struct {
	HitFlash          float64 `yaml:"hit_flash"`
	ExplosionDuration float64 `yaml:"explosion_duration"`
	ExplosionStages   int     `yaml:"explosion_stages"`
}

type UpgradeConfig struct {
	Choices    int     `yaml:"choices"`
	EpicChance float64 `yaml:"epic_chance"`
	RareChance float64 `yaml:"rare_chance"`
}

type ShopConfig struct {
	MaxStage int `yaml:"max_stage"`
}

// Color looks up a palette entry.
func (c *Config) Color(name string, fallback color.NRGBA) color.NRGBA {
	if c == nil {
		return fallback
	}
	col, ok := c.Palette[name]
	if !ok {
		return fallback
	}
	return col.RGBA8(fallback)
}

// LoadConfig reads and validates a tuning table by name.
func LoadConfig(name string) (*Config, error) {
	if name == "" {
		name = DefaultConfigName
	}
	cfg, err := LoadSpec[Config](name)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &cfg, nil
}

// MustDefaultConfig loads the embedded table and panics on failure. Meant for
// tests and tools.
func MustDefaultConfig() *Config {
	cfg, err := LoadConfig(DefaultConfigName)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"canvas.width", c.Canvas.Width},
		{"canvas.height", c.Canvas.Height},
		{"player.size", c.Player.Size},
		{"player.max_health", c.Player.MaxHealth},
		{"player.max_speed", c.Player.MaxSpeed},
		{"bullet.size", c.Bullet.Size},
		{"bullet.speed", c.Bullet.Speed},
		{"bullet.max_distance", c.Bullet.MaxDistance},
		{"enemy_bullet.speed", c.EnemyBullet.Speed},
		{"enemies.normal.size", c.Enemies.Normal.Size},
		{"enemies.chaser.size", c.Enemies.Chaser.Size},
		{"enemies.titan.size", c.Enemies.Titan.Size},
		{"spawn.interval", c.Spawn.Interval},
		{"guardian.size", c.Guardian.Size},
		{"guardian.aggro_range", c.Guardian.AggroRange},
		{"experience.base", c.Experience.Base},
		{"boss.size", c.Boss.Size},
		{"boss.health", c.Boss.Health},
		{"boss.enter_duration", c.Boss.EnterDuration},
		{"arena.width", c.Arena.Width},
		{"arena.height", c.Arena.Height},
		{"chunks.size", c.Chunks.Size},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be > 0", ErrInvalidConfig, p.name)
		}
	}
	if c.Spawn.KillsPerWave <= 0 {
		return fmt.Errorf("%w: spawn.kills_per_wave must be > 0", ErrInvalidConfig)
	}
	if c.Boss.Wave <= 0 {
		return fmt.Errorf("%w: boss.wave must be > 0", ErrInvalidConfig)
	}
	total := 0.0
	for _, w := range c.Spawn.Distribution {
		if w < 0 {
			return fmt.Errorf("%w: spawn.distribution weights must be >= 0", ErrInvalidConfig)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: spawn.distribution is empty", ErrInvalidConfig)
	}
	if c.Guardian.AggroExit < 1 {
		return fmt.Errorf("%w: guardian.aggro_exit must be >= 1", ErrInvalidConfig)
	}
	if len(c.Boss.Pattern) == 0 {
		return fmt.Errorf("%w: boss.pattern is empty", ErrInvalidConfig)
	}
	if c.Boss.CooldownMax < c.Boss.CooldownMin {
		return fmt.Errorf("%w: boss.cooldown_max < cooldown_min", ErrInvalidConfig)
	}
	return nil
}

package system

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

// SpawnSystem is the spawn director. It spawns wave enemies on a fixed
// interval while no boss encounter is in progress. Treasure events and the
// boss are triggered from advanceWave.
type SpawnSystem struct {
	env *Env
}

func NewSpawnSystem(env *Env) *SpawnSystem {
	return &SpawnSystem{env: env}
}

func (s *SpawnSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	rs := runState(w)
	if rs == nil || rs.GameOver {
		return
	}
	if encounterActive(w, rs) {
		return
	}
	_, pt, ok := playerEntity(w)
	if !ok {
		return
	}

	rs.SpawnTimer -= dt
	if rs.SpawnTimer > 0 {
		return
	}
	rs.SpawnTimer += s.env.Config.Spawn.Interval
	if rs.SpawnTimer < 0 {
		rs.SpawnTimer = s.env.Config.Spawn.Interval
	}

	pos := s.spawnPoint(pt.Pos)
	variant := PickEnemyVariant(s.env, rs.Wave)
	if variant == component.VariantEnemyChaser {
		s.spawnPack(w, pos, rs.Wave)
		return
	}
	if _, err := entity.NewEnemy(w, s.env.Config, variant, rs.Wave, pos, s.env.Rand); err != nil {
		fmt.Printf("spawn: %s: %v\n", variant, err)
	}
}

// encounterActive is true while a boss lives or its portals are waiting.
func encounterActive(w *ecs.World, rs *component.RunState) bool {
	if rs.BossDefeated {
		return true
	}
	active := false
	ecs.ForEach(w, component.BossRuntimeComponent.Kind(), func(e ecs.Entity, rt *component.BossRuntime) {
		if !isDead(w, e) {
			active = true
		}
	})
	return active
}

// spawnPoint picks a point just off one of the four screen edges.
func (s *SpawnSystem) spawnPoint(player cp.Vector) cp.Vector {
	cfg := s.env.Config
	d := cfg.Spawn.Distance
	jx := (s.env.Rand.Float64() - 0.5) * cfg.Canvas.Width
	jy := (s.env.Rand.Float64() - 0.5) * cfg.Canvas.Height
	switch s.env.Rand.IntN(4) {
	case 0:
		return cp.Vector{X: player.X + jx, Y: player.Y - d}
	case 1:
		return cp.Vector{X: player.X + d, Y: player.Y + jy}
	case 2:
		return cp.Vector{X: player.X + jx, Y: player.Y + d}
	default:
		return cp.Vector{X: player.X - d, Y: player.Y + jy}
	}
}

// spawnPack places a ring of chasers around center.
func (s *SpawnSystem) spawnPack(w *ecs.World, center cp.Vector, wave int) {
	cfg := s.env.Config
	n := s.env.randIntRange(cfg.Spawn.PackMin, cfg.Spawn.PackMax)
	if n < 1 {
		n = 1
	}
	step := 2 * math.Pi / float64(n)
	for i := range n {
		angle := step*float64(i) + s.env.Rand.Float64()*0.5
		pos := center.Add(cp.ForAngle(angle).Mult(cfg.Spawn.PackSpread))
		if _, err := entity.NewChaser(w, cfg, wave, pos, cp.Vector{}, false); err != nil {
			fmt.Printf("spawn: chaser pack: %v\n", err)
			return
		}
	}
}

// enemyOrder fixes the iteration order of the weighted distribution.
var enemyOrder = []struct {
	name    string
	variant component.Variant
}{
	{"titan", component.VariantEnemyTitan},
	{"chaser", component.VariantEnemyChaser},
	{"normal", component.VariantEnemyNormal},
}

// PickEnemyVariant draws from the weighted distribution. Titans are left out
// before TitanMinWave.
func PickEnemyVariant(env *Env, wave int) component.Variant {
	cfg := env.Config.Spawn
	total := 0.0
	for _, o := range enemyOrder {
		if o.variant == component.VariantEnemyTitan && wave < cfg.TitanMinWave {
			continue
		}
		total += cfg.Distribution[o.name]
	}
	if total <= 0 {
		return component.VariantEnemyNormal
	}
	r := env.Rand.Float64() * total
	for _, o := range enemyOrder {
		if o.variant == component.VariantEnemyTitan && wave < cfg.TitanMinWave {
			continue
		}
		r -= cfg.Distribution[o.name]
		if r < 0 {
			return o.variant
		}
	}
	return component.VariantEnemyNormal
}

// RollTreasureWave picks the wave of the next treasure event.
func RollTreasureWave(env *Env, wave int) int {
	tc := env.Config.Treasure
	return wave + env.randIntRange(tc.WaveOffsetMin, tc.WaveOffsetMax)
}

// advanceWave bumps the wave counter and fires the thresholds that depend
// on it: the one-time boss trigger and the next treasure event.
func advanceWave(w *ecs.World, env *Env, rs *component.RunState) {
	rs.Wave++
	w.Emit(EventWaveAdvanced, WaveAdvancedEvent{Wave: rs.Wave})

	if rs.Wave == env.Config.Boss.Wave && !rs.BossSpawned {
		if err := TriggerBoss(w, env); err != nil {
			log.Printf("spawn: boss: %v", err)
		}
	}
	if rs.Wave >= rs.NextTreasureWave && !treasureExists(w) && !encounterActive(w, rs) {
		if err := SpawnTreasure(w, env); err != nil {
			log.Printf("spawn: treasure: %v", err)
		}
	}
}

func treasureExists(w *ecs.World) bool {
	found := false
	ecs.ForEach(w, component.TreasureComponent.Kind(), func(e ecs.Entity, _ *component.Treasure) {
		if !isDead(w, e) {
			found = true
		}
	})
	return found
}

// SpawnTreasure places a chest well away from the player with a ring of
// guardians around it and rolls the next treasure wave.
func SpawnTreasure(w *ecs.World, env *Env) error {
	rs := runState(w)
	_, pt, ok := playerEntity(w)
	if rs == nil || !ok {
		return fmt.Errorf("treasure: no run in progress")
	}
	cfg := env.Config
	tc := cfg.Treasure

	angle := env.Rand.Float64() * 2 * math.Pi
	dist := tc.SpawnDistance + env.Rand.Float64()*tc.SpawnJitter
	pos := pt.Pos.Add(cp.ForAngle(angle).Mult(dist))

	chest, err := entity.NewTreasure(w, cfg, pos)
	if err != nil {
		return err
	}
	tr, _ := ecs.Get(w, chest, component.TreasureComponent.Kind())
	for i := range tc.GuardCount {
		a := 2 * math.Pi * float64(i) / float64(tc.GuardCount)
		gp := pos.Add(cp.ForAngle(a).Mult(tc.GuardDistance))
		g, err := entity.NewGuardian(w, cfg, rs.Wave, chest, pos, gp, env.Rand)
		if err != nil {
			return fmt.Errorf("treasure: guardian %d: %w", i, err)
		}
		tr.Guards = append(tr.Guards, uint64(g))
	}
	rs.NextTreasureWave = RollTreasureWave(env, rs.Wave)
	w.Emit(EventTreasureSpawn, pos)
	return nil
}

// TriggerBoss builds the arena around the player, fixes the camera on it
// and spawns the boss above the arena centre. It runs at most once per run.
func TriggerBoss(w *ecs.World, env *Env) error {
	rs := runState(w)
	_, pt, ok := playerEntity(w)
	if rs == nil || !ok {
		return fmt.Errorf("boss: no run in progress")
	}
	if rs.BossSpawned {
		return nil
	}
	cfg := env.Config
	center := pt.Pos

	if _, err := entity.NewArena(w, cfg, center); err != nil {
		return err
	}
	home := center.Sub(cp.Vector{Y: cfg.Canvas.Height / 4})
	boss, err := entity.NewBoss(w, cfg, home)
	if err != nil {
		return err
	}
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, c *component.Camera) {
		c.Fixed = true
		c.Anchor = center
		c.Pos = center
	})
	rs.BossSpawned = true
	rs.BossDefeated = false
	log.Printf("boss: entity=%d spawned at wave %d", boss, rs.Wave)
	w.Emit(EventBossSpawned, BossSpawnedEvent{Name: cfg.Boss.Name, Wave: rs.Wave})
	return nil
}

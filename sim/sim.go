// Package sim drives a run: it owns the world, orders the systems and turns
// in-world events into progression, persistence and UI notifications.
package sim

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
	"github.com/milk9111/voidarena/ecs/system"
	"github.com/milk9111/voidarena/prefabs"
	"github.com/milk9111/voidarena/save"
)

// MaxStep bounds a single tick so a stalled frame cannot tunnel entities.
const MaxStep = 0.1

var (
	ErrStageLocked      = errors.New("sim: stage locked")
	ErrNoPendingLevelUp = errors.New("sim: no pending level up")
	// ErrUnknownUpgrade is also returned for an id that was not offered.
	ErrUnknownUpgrade = system.ErrUnknownUpgrade
)

type Option func(*Simulation)

// WithRand seeds every random roll of the simulation.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulation) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithProfile loads the profile from store and persists it there.
func WithProfile(store save.Store) Option {
	return func(s *Simulation) {
		s.store = store
	}
}

func WithUI(ui UIStateController) Option {
	return func(s *Simulation) {
		s.ui = ui
	}
}

// WithPatternScript overrides the boss pattern script named in the config.
func WithPatternScript(p *system.PatternScript) Option {
	return func(s *Simulation) {
		s.pattern = p
		s.patternSet = true
	}
}

func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *Simulation) {
		if logf != nil {
			s.logf = logf
		}
	}
}

// Simulation is a single player's game session. It is not safe for
// concurrent use; hosts call it from their update loop.
type Simulation struct {
	cfg *prefabs.Config
	rng *rand.Rand
	env *system.Env

	store   save.Store
	profile *save.Profile
	ui      UIStateController
	logf    func(format string, args ...any)

	pattern    *system.PatternScript
	patternSet bool

	world  *ecs.World
	sched  *ecs.Scheduler
	boss   *system.BossSystem
	chunks *system.ChunkSystem
	player ecs.Entity

	running bool
	paused  bool
	// levelUps counts level ups whose card has not been chosen yet.
	levelUps int
	pending  []system.UpgradeID
	ticks    uint64
}

func New(cfg *prefabs.Config, opts ...Option) *Simulation {
	if cfg == nil {
		cfg = prefabs.MustDefaultConfig()
	}
	s := &Simulation{
		cfg:  cfg,
		logf: log.Printf,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.env = system.NewEnv(cfg, s.rng)

	s.profile = save.NewProfile()
	if s.store != nil {
		p, err := save.LoadProfile(s.store)
		if err != nil {
			s.logf("sim: load profile: %v", err)
		} else {
			s.profile = p
		}
	}

	if !s.patternSet {
		s.pattern = s.loadPattern(cfg.Boss.PatternScript)
	}
	s.boss = system.NewBossSystem(s.env, s.pattern)
	s.chunks = system.NewChunkSystem(s.env)
	s.sched = s.buildScheduler()
	return s
}

func (s *Simulation) loadPattern(name string) *system.PatternScript {
	if name == "" {
		return nil
	}
	p, err := system.LoadPatternScript(name)
	if err != nil {
		s.logf("sim: pattern script: %v; using the config pattern", err)
		return nil
	}
	return p
}

func (s *Simulation) buildScheduler() *ecs.Scheduler {
	env := s.env
	return ecs.NewScheduler(
		system.NewPlayerControllerSystem(env),
		system.NewPlayerWeaponSystem(env),
		system.NewOrbitSystem(),
		system.NewDroneSystem(env),
		system.NewGuidedWeaponSystem(env),
		system.NewSpawnSystem(env),
		system.NewEnemyAISystem(env),
		system.NewGuardianAISystem(env),
		s.boss,
		system.NewBulletSystem(env),
		system.NewMissileSystem(env),
		system.NewLaserSystem(env),
		system.NewShockwaveSystem(env),
		system.NewPickupSystem(env),
		system.NewTreasureSystem(env),
		system.NewCombatSystem(env),
		system.NewArenaSystem(env),
		system.NewCameraSystem(env),
		s.chunks,
		system.NewCooldownSystem(),
		system.NewSlowSystem(),
		system.NewTTLSystem(),
		system.NewWhiteFlashSystem(),
		system.NewCleanupSystem(),
	)
}

// StartRun discards any current run and starts a new one on stage.
func (s *Simulation) StartRun(stage int) error {
	if stage < 1 || (s.cfg.Shop.MaxStage > 0 && stage > s.cfg.Shop.MaxStage) || !s.profile.StageUnlocked(stage) {
		return fmt.Errorf("%w: %d", ErrStageLocked, stage)
	}

	w := ecs.NewWorld()
	bonus := s.profile.Bonus()
	player, err := entity.NewPlayer(w, s.cfg, entity.PlayerBonus{
		Health: bonus.Health,
		Speed:  bonus.Speed,
		Damage: bonus.Damage,
	}, cp.Vector{})
	if err != nil {
		return fmt.Errorf("sim: start run: %w", err)
	}
	if _, err := entity.NewCamera(w, s.cfg, cp.Vector{}); err != nil {
		return fmt.Errorf("sim: start run: %w", err)
	}
	if _, err := entity.NewProgression(w, s.cfg); err != nil {
		return fmt.Errorf("sim: start run: %w", err)
	}
	rs := component.RunState{
		ID:     uuid.NewString(),
		Stage:  stage,
		Wave:   1,
		Relics: relicsOf(s.profile),
	}
	rs.NextTreasureWave = system.RollTreasureWave(s.env, rs.Wave)
	if _, err := entity.NewRunState(w, rs); err != nil {
		return fmt.Errorf("sim: start run: %w", err)
	}

	s.world = w
	s.player = player
	s.chunks.Reset()
	s.running = true
	s.paused = false
	s.levelUps = 0
	s.pending = nil
	s.ticks = 0
	s.logf("sim: run %s started on stage %d", rs.ID, stage)
	s.notify(Event{Type: EventRunStarted, Data: RunStartedEvent{ID: rs.ID, Stage: stage}})
	return nil
}

func relicsOf(p *save.Profile) component.Relics {
	return component.Relics{
		BulletSplit:    p.RelicActive(save.RelicBulletSplit),
		GravityCapture: p.RelicActive(save.RelicGravityCapture),
		AdvancedRepair: p.RelicActive(save.RelicAdvancedRepair),
	}
}

// Tick advances the run by dt seconds. It does nothing while paused or
// after the run has ended.
func (s *Simulation) Tick(dt float64, in InputState) {
	if !s.running || s.paused || s.world == nil {
		return
	}
	dt = min(max(dt, 0), MaxStep)

	if input, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind()); ok {
		*input = component.Input{
			Move:           in.Move,
			AimPoint:       in.AimPoint,
			AimStick:       in.AimStick,
			AimStickActive: in.AimStickActive,
			Fire:           in.Fire,
		}
	}
	rs := s.runState()
	if rs != nil {
		rs.Elapsed += dt
	}

	s.sched.Update(s.world, dt)
	s.ticks++
	s.dispatch()

	if rs != nil && rs.GameOver {
		s.running = false
	}
}

// Frame polls in, ticks and hands the resulting snapshot to r.
func (s *Simulation) Frame(dt float64, in InputProvider, r Renderer) {
	var state InputState
	if in != nil {
		state = in.Poll()
	}
	s.Tick(dt, state)
	if r != nil {
		r.Render(s.Snapshot())
	}
}

func (s *Simulation) dispatch() {
	for _, evt := range s.world.Events().Drain() {
		switch evt.Type {
		case system.EventLevelUp:
			s.levelUps++
		case system.EventTreasureOpened:
			if data, ok := evt.Data.(system.TreasureOpenedEvent); ok && data.Coins > 0 {
				s.awardCoins(data.Coins)
			}
		case system.EventStageUnlocked:
			if data, ok := evt.Data.(system.StageUnlockedEvent); ok && s.profile.UnlockStage(data.Stage) {
				s.logf("sim: stage %d unlocked", data.Stage)
				s.persist()
			}
		case system.EventRunEnded:
			if data, ok := evt.Data.(system.RunEndedEvent); ok {
				s.finishRun(data)
			}
		}
		s.notify(Event{Type: evt.Type, Data: evt.Data})
	}
	if s.levelUps > 0 && len(s.pending) == 0 && s.running {
		s.offerUpgrades()
	}
}

func (s *Simulation) offerUpgrades() {
	rs := s.runState()
	if rs == nil || rs.GameOver {
		s.levelUps = 0
		return
	}
	s.pending = system.RollUpgrades(s.env, rs.Relics)
	if len(s.pending) == 0 {
		s.levelUps = 0
		return
	}
	s.paused = true
	level := 0
	if _, p, ok := ecs.Single(s.world, component.ProgressionComponent.Kind()); ok {
		level = p.Level - s.levelUps + 1
	}
	s.notify(Event{Type: EventUpgradeChoice, Data: UpgradeChoiceEvent{Level: level, Choices: slices.Clone(s.pending)}})
}

func (s *Simulation) awardCoins(n int) {
	s.profile.Coins += n
	s.notify(Event{Type: EventCoinsAwarded, Data: CoinsAwardedEvent{Amount: n, Total: s.profile.Coins}})
	s.persist()
}

// finishRun pays out one coin per wave reached and records the run.
func (s *Simulation) finishRun(data system.RunEndedEvent) {
	s.levelUps = 0
	s.pending = nil
	s.paused = false

	rs := s.runState()
	record := save.RunRecord{
		Wave:    data.Wave,
		Score:   data.Score,
		Kills:   data.Kills,
		Victory: data.Victory,
		EndedAt: time.Now(),
	}
	if rs != nil {
		record.ID = rs.ID
		record.Stage = rs.Stage
	}
	s.profile.RecordRun(record)
	s.logf("sim: run %s ended victory=%t wave=%d score=%d kills=%d", record.ID, data.Victory, data.Wave, data.Score, data.Kills)
	s.awardCoins(data.Wave)
}

func (s *Simulation) persist() {
	if s.store == nil {
		return
	}
	if err := s.profile.Save(s.store); err != nil {
		s.logf("sim: save profile: %v", err)
	}
}

func (s *Simulation) notify(evt Event) {
	if s.ui != nil {
		s.ui.Notify(evt)
	}
}

func (s *Simulation) Paused() bool {
	return s.paused
}

// SetPaused pauses or resumes the run. A pending upgrade choice keeps the
// run paused.
func (s *Simulation) SetPaused(paused bool) {
	if !s.running || s.paused == paused {
		return
	}
	if !paused && len(s.pending) > 0 {
		return
	}
	s.paused = paused
	if paused {
		s.notify(Event{Type: EventPaused})
	} else {
		s.notify(Event{Type: EventResumed})
	}
}

// PendingUpgrades returns the cards of the current level up, if any.
func (s *Simulation) PendingUpgrades() []system.UpgradeID {
	return slices.Clone(s.pending)
}

// ChooseUpgrade applies one of the offered cards. Further queued level ups
// are offered right away; otherwise the run resumes.
func (s *Simulation) ChooseUpgrade(id system.UpgradeID) error {
	if len(s.pending) == 0 {
		return ErrNoPendingLevelUp
	}
	if !slices.Contains(s.pending, id) {
		return fmt.Errorf("%w: %s not offered", ErrUnknownUpgrade, id)
	}
	if err := system.ApplyUpgrade(s.world, s.env, s.player, id); err != nil {
		return err
	}
	s.pending = nil
	s.levelUps--
	if s.levelUps > 0 {
		s.offerUpgrades()
		if len(s.pending) > 0 {
			return nil
		}
	}
	s.levelUps = 0
	s.paused = false
	s.notify(Event{Type: EventResumed})
	return nil
}

// ReloadConfig swaps the tuning table between ticks. The boss pattern
// script is recompiled when its name changes.
func (s *Simulation) ReloadConfig(cfg *prefabs.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	prev := s.cfg.Boss.PatternScript
	s.cfg = cfg
	s.env.Config = cfg
	if !s.patternSet && cfg.Boss.PatternScript != prev {
		s.pattern = s.loadPattern(cfg.Boss.PatternScript)
		s.boss.SetPatternScript(s.pattern)
	}
	s.logf("sim: config reloaded")
	return nil
}

// ReloadPatternScript recompiles the current pattern script, keeping the
// old one if the new source fails.
func (s *Simulation) ReloadPatternScript() error {
	name := s.cfg.Boss.PatternScript
	if s.pattern != nil {
		name = s.pattern.Name()
	}
	if name == "" {
		return nil
	}
	p, err := system.LoadPatternScript(name)
	if err != nil {
		return err
	}
	s.pattern = p
	s.boss.SetPatternScript(p)
	return nil
}

func (s *Simulation) Running() bool {
	return s.running
}

// RunState returns a copy of the current scoreboard.
func (s *Simulation) RunState() component.RunState {
	if rs := s.runState(); rs != nil {
		return *rs
	}
	return component.RunState{}
}

func (s *Simulation) runState() *component.RunState {
	if s.world == nil {
		return nil
	}
	_, rs, ok := ecs.Single(s.world, component.RunStateComponent.Kind())
	if !ok {
		return nil
	}
	return rs
}

// Profile exposes the persistent profile for the shop and stage screens.
func (s *Simulation) Profile() *save.Profile {
	return s.profile
}

// SaveProfile persists the profile after an out-of-run change.
func (s *Simulation) SaveProfile() error {
	if s.store == nil {
		return nil
	}
	return s.profile.Save(s.store)
}

func (s *Simulation) Config() *prefabs.Config {
	return s.cfg
}

// World exposes the live world to debug tooling.
func (s *Simulation) World() *ecs.World {
	return s.world
}

// Abandon ends the current run without a result.
func (s *Simulation) Abandon() {
	s.running = false
	s.paused = false
	s.levelUps = 0
	s.pending = nil
}

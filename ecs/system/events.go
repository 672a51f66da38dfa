package system

import "github.com/milk9111/voidarena/ecs/component"

// Event types raised on the world queue during a tick.
const (
	EventLevelUp        = "level_up"
	EventBossSpawned    = "boss_spawned"
	EventBossDefeated   = "boss_defeated"
	EventRunEnded       = "run_ended"
	EventStageUnlocked  = "stage_unlocked"
	EventWaveAdvanced   = "wave_advanced"
	EventTreasureSpawn  = "treasure_spawned"
	EventTreasureLocked = "treasure_locked"
	EventTreasureOpened = "treasure_opened"
	EventPlayerHit      = "player_hit"
	EventEnemyKilled    = "enemy_killed"
	EventPortalChosen   = "portal_chosen"
)

type LevelUpEvent struct {
	Level int
}

type BossSpawnedEvent struct {
	Name string
	Wave int
}

type RunEndedEvent struct {
	Victory bool
	Wave    int
	Score   int
	Kills   int
}

type StageUnlockedEvent struct {
	Stage int
}

type WaveAdvancedEvent struct {
	Wave int
}

type TreasureOpenedEvent struct {
	Coins int
	Gems  bool
}

type PlayerHitEvent struct {
	Damage float64
	Health float64
}

type EnemyKilledEvent struct {
	Variant component.Variant
	Score   int
}

type PortalChosenEvent struct {
	Kind component.PortalKind
}

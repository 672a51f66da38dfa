package component

// Variant is the closed set of entity kinds. Systems and the renderer
// dispatch on it with a switch.
type Variant uint8

const (
	VariantNone Variant = iota
	VariantPlayer
	VariantEnemyNormal
	VariantEnemyChaser
	VariantEnemyTitan
	VariantGuardian
	VariantBoss
	VariantExperienceGem
	VariantHealthPack
	VariantTreasureChest
	VariantPlayerBullet
	VariantEnemyBullet
	VariantMissile
	VariantBossLaser
	VariantBossShockwave
	VariantShield
	VariantDrone
	VariantPortal
	VariantExplosion
)

var variantNames = [...]string{
	VariantNone:          "none",
	VariantPlayer:        "player",
	VariantEnemyNormal:   "normal",
	VariantEnemyChaser:   "chaser",
	VariantEnemyTitan:    "titan",
	VariantGuardian:      "guardian",
	VariantBoss:          "boss",
	VariantExperienceGem: "experience_gem",
	VariantHealthPack:    "health_pack",
	VariantTreasureChest: "treasure_chest",
	VariantPlayerBullet:  "player_bullet",
	VariantEnemyBullet:   "enemy_bullet",
	VariantMissile:       "missile",
	VariantBossLaser:     "boss_laser",
	VariantBossShockwave: "boss_shockwave",
	VariantShield:        "shield",
	VariantDrone:         "drone",
	VariantPortal:        "portal",
	VariantExplosion:     "explosion",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// IsEnemy reports the regular wave enemies (not guardians or the boss).
func (v Variant) IsEnemy() bool {
	return v == VariantEnemyNormal || v == VariantEnemyChaser || v == VariantEnemyTitan
}

// IsHostile reports every variant the player can damage.
func (v Variant) IsHostile() bool {
	return v.IsEnemy() || v == VariantGuardian || v == VariantBoss
}

var VariantComponent = NewComponent[Variant]()

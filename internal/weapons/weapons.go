// Package weapons holds the static, immutable weapon and power-up template
// tables (spec §9 design notes: "Global state... express as immutable
// tables constructed at program start").
package weapons

import (
	"time"

	"github.com/foundrylabs/arenacore/internal/wire"
)

// Template describes one weapon slot's fixed tuning (spec §4.6 WeaponBehavior).
type Template struct {
	Name           string
	Cooldown       float64 // seconds; negative means fires continuously
	DepleteSpeed   float64 // energy per shot, or energy/sec while continuous
	MaxEnergy      float64
	Damage         float64
	SpreadRange    float64 // radians
	Range          float64
	FiresContinuously bool
}

// Slot indices for the fixed 8-weapon loadout (spec GLOSSARY "Weapon slot").
const (
	SlotBlaster wire.WeaponType = iota
	SlotShotgun
	SlotMachineGun
	SlotRocketLauncher
	SlotLightingGun
	SlotPlasmaRifle
	SlotMineLayer
	SlotRailGun
)

// Templates is the fixed table indexed by weapon slot. LightingGun resolves
// the spec's open question: MaxEnergy=200, damage=50, range=900.
var Templates = [wire.NumWeaponSlots]Template{
	SlotBlaster: {
		Name: "Blaster", Cooldown: 0.25, DepleteSpeed: 5, MaxEnergy: 100,
		Damage: 10, SpreadRange: 0.02, Range: 700,
	},
	SlotShotgun: {
		Name: "Shotgun", Cooldown: 0.8, DepleteSpeed: 20, MaxEnergy: 100,
		Damage: 8, SpreadRange: 0.35, Range: 350,
	},
	SlotMachineGun: {
		Name: "MachineGun", Cooldown: -1, DepleteSpeed: 10, MaxEnergy: 150,
		Damage: 6, SpreadRange: 0.05, Range: 600, FiresContinuously: true,
	},
	SlotRocketLauncher: {
		Name: "RocketLauncher", Cooldown: 1.2, DepleteSpeed: 25, MaxEnergy: 100,
		Damage: 60, SpreadRange: 0, Range: 1000,
	},
	SlotLightingGun: {
		Name: "LightingGun", Cooldown: -1, DepleteSpeed: 12, MaxEnergy: 200,
		Damage: 50, SpreadRange: 0, Range: 900, FiresContinuously: true,
	},
	SlotPlasmaRifle: {
		Name: "PlasmaRifle", Cooldown: 0.15, DepleteSpeed: 8, MaxEnergy: 120,
		Damage: 14, SpreadRange: 0.01, Range: 650,
	},
	SlotMineLayer: {
		Name: "MineLayer", Cooldown: 1.5, DepleteSpeed: 30, MaxEnergy: 90,
		Damage: 80, SpreadRange: 0, Range: 50,
	},
	SlotRailGun: {
		Name: "RailGun", Cooldown: 1.8, DepleteSpeed: 50, MaxEnergy: 100,
		Damage: 120, SpreadRange: 0, Range: 1400,
	},
}

// PowerUpEffect describes a collectible power-up's fixed duration (spec §3
// Orb "active power-up... with remaining time").
type PowerUpEffect struct {
	Duration time.Duration
}

// PowerUpEffects is the fixed table of power-up durations (spec §6
// "power-up durations and respawn delays per §3").
var PowerUpEffects = map[wire.PowerUp]PowerUpEffect{
	wire.PowerUpArmor:         {Duration: 15 * time.Second},
	wire.PowerUpRegeneration:  {Duration: 15 * time.Second},
	wire.PowerUpQuadDamage:    {Duration: 10 * time.Second},
	wire.PowerUpSpeed:         {Duration: 12 * time.Second},
	wire.PowerUpInvisibility:  {Duration: 12 * time.Second},
}

// RespawnDelay is the fixed delay before a dead player's orb respawns
// (spec §6 "RespawnDelay = 2 s").
const RespawnDelay = 2 * time.Second

// RespawnRetries bounds how many player-start candidates respawn_player
// tries before giving up for the tick (spec §4.8).
const RespawnRetries = 16

// OrbMaxHealth and OrbSoftCapHealth bound orb health (spec §3 Orb).
const (
	OrbMaxHealth     = 200.0
	OrbSoftCapHealth = 100.0
)

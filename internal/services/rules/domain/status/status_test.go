package status

import (
	"testing"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/building"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/gamemap"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

// fixture is a 4x1 strip: plain, forest, plain, plain. Player 1 (team 1)
// owns a radar at 3,1; player 2 (team 2) owns a radar at 4,1.
func fixture(t *testing.T, p1 player.Player) *gamemap.Map {
	t.Helper()
	cat := catalog.Default()
	p2, err := player.NewBot(2, 2, "bot")
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	team1, err := player.NewTeam(1, "", p1)
	if err != nil {
		t.Fatalf("new team: %v", err)
	}
	team2, err := player.NewTeam(2, "", p2)
	if err != nil {
		t.Fatalf("new team: %v", err)
	}
	radar := func(owner player.ID) building.Building {
		b, err := building.Create(cat, catalog.Radar, owner)
		if err != nil {
			t.Fatalf("create radar: %v", err)
		}
		return b
	}
	m, err := gamemap.New(gamemap.Config{
		Catalog: cat, Width: 4, Height: 1,
		Tiles: []catalog.TileID{catalog.Plain, catalog.Forest, catalog.Plain, catalog.Plain},
		Teams: []player.Team{team1, team2},
		Buildings: map[gamemap.Vector]building.Building{
			gamemap.Vec(3, 1): radar(1),
			gamemap.Vec(4, 1): radar(2),
		},
	})
	if err != nil {
		t.Fatalf("new map: %v", err)
	}
	return m
}

func human(t *testing.T, skills ...skill.Skill) player.Player {
	t.Helper()
	p, err := player.NewHuman(1, 1, "user-1")
	if err != nil {
		t.Fatalf("new human: %v", err)
	}
	return p.SetSkills(skill.NewSet(skills...))
}

func infantry(t *testing.T, owner player.ID, opts ...unit.Option) unit.Unit {
	t.Helper()
	u, err := unit.Create(catalog.Default(), catalog.Infantry, owner, opts...)
	if err != nil {
		t.Fatalf("create infantry: %v", err)
	}
	return u
}

func TestAttackStatusEffect(t *testing.T) {
	m := fixture(t, human(t, skill.AttackIncreaseMinor))
	tests := []struct {
		name     string
		unit     unit.Unit
		position gamemap.Vector
		want     skill.Percent
	}{
		{name: "skill and aura", unit: infantry(t, 1), position: gamemap.Vec(1, 1), want: 20},
		{name: "leader", unit: infantry(t, 1, unit.WithName(1)), position: gamemap.Vec(1, 1), want: 25},
		{name: "poisoned", unit: infantry(t, 1, unit.WithStatusEffect(unit.StatusPoison)), position: gamemap.Vec(1, 1), want: 10},
		{name: "enemy aura is ignored", unit: infantry(t, 2), position: gamemap.Vec(1, 1), want: 0},
		{name: "enemy in own aura", unit: infantry(t, 2), position: gamemap.Vec(2, 1), want: 10},
		{name: "neutral", unit: infantry(t, 0), position: gamemap.Vec(1, 1), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, want := AttackStatusEffect(m, tt.unit, tt.position), skill.Multiplier(tt.want); got != want {
				t.Fatalf("attack = %v, want %v", got, want)
			}
		})
	}
}

func TestStatusIncludesTerrainAndCrystal(t *testing.T) {
	p := human(t, skill.UnitInfantryForestAttackAndDefenseIncrease).SetCrystal(skill.CrystalSuper)
	m := fixture(t, p)
	u := infantry(t, 1)

	// forest +10, crystal +15, radar at distance 1: +10 attack, +5 defense.
	if got, want := AttackStatusEffect(m, u, gamemap.Vec(2, 1)), skill.Multiplier(35); got != want {
		t.Fatalf("attack in forest = %v, want %v", got, want)
	}
	if got, want := DefenseStatusEffect(m, u, gamemap.Vec(2, 1)), skill.Multiplier(30); got != want {
		t.Fatalf("defense in forest = %v, want %v", got, want)
	}
	b, _ := m.BuildingAt(gamemap.Vec(3, 1))
	if got, want := DefenseStatusEffect(m, b, gamemap.Vec(3, 1)), skill.Multiplier(15); got != want {
		t.Fatalf("building defense = %v, want %v", got, want)
	}
}

func TestCover(t *testing.T) {
	m := fixture(t, human(t))
	tests := []struct {
		name     string
		position gamemap.Vector
		entity   catalog.EntityType
		want     int
	}{
		{name: "plain", position: gamemap.Vec(1, 1), entity: catalog.TypeInfantry, want: 10},
		{name: "forest", position: gamemap.Vec(2, 1), entity: catalog.TypeGround, want: 30},
		{name: "building", position: gamemap.Vec(3, 1), entity: catalog.TypeInfantry, want: 10 + BuildingCover},
		{name: "air", position: gamemap.Vec(2, 1), entity: catalog.TypeAir, want: 0},
		{name: "building group", position: gamemap.Vec(3, 1), entity: catalog.TypeBuilding, want: 0},
		{name: "outside", position: gamemap.Vec(9, 1), entity: catalog.TypeInfantry, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cover(m, tt.position, tt.entity); got != tt.want {
				t.Fatalf("cover = %d, want %d", got, tt.want)
			}
		})
	}
}

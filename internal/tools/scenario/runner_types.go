package scenario

import (
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/building"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/gamemap"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

const (
	stepMap          = "map"
	stepPlayer       = "player"
	stepTile         = "tile"
	stepUnit         = "unit"
	stepBuilding     = "building"
	stepExpectDamage = "expect_damage"
	stepExpectCost   = "expect_cost"
	stepExpectRange  = "expect_range"
	stepExpectRadius = "expect_radius"
	stepExpectHash   = "expect_hash"
)

const (
	defaultWidth  = 10
	defaultHeight = 10
)

// Report summarizes one scenario run.
type Report struct {
	Name         string
	Steps        int
	Expectations int
	Failures     int
}

type scenarioState struct {
	width     int
	height    int
	tiles     map[gamemap.Vector]catalog.TileID
	teamOrder []player.TeamID
	players   map[player.TeamID][]player.Player
	units     map[gamemap.Vector]unit.Unit
	buildings map[gamemap.Vector]building.Building

	// built is dropped whenever a setup step changes the state.
	built *gamemap.Map
}

func newScenarioState() *scenarioState {
	return &scenarioState{
		width:     defaultWidth,
		height:    defaultHeight,
		tiles:     map[gamemap.Vector]catalog.TileID{},
		players:   map[player.TeamID][]player.Player{},
		units:     map[gamemap.Vector]unit.Unit{},
		buildings: map[gamemap.Vector]building.Building{},
	}
}

func (s *scenarioState) player(id player.ID) (player.Player, bool) {
	for _, team := range s.teamOrder {
		for _, p := range s.players[team] {
			if p.ID() == id {
				return p, true
			}
		}
	}
	return player.Player{}, false
}

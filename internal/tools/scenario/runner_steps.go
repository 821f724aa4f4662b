package scenario

import (
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/building"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/combat"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/core/encoding"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/gamemap"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

// runStep applies one step. expectation reports whether the step checked an
// expectation rather than changing the setup.
func (r *Runner) runStep(state *scenarioState, step Step) (expectation bool, err error) {
	switch step.Kind {
	case stepMap:
		return false, r.runMapStep(state, step)
	case stepPlayer:
		return false, r.runPlayerStep(state, step)
	case stepTile:
		return false, r.runTileStep(state, step)
	case stepUnit:
		return false, r.runUnitStep(state, step)
	case stepBuilding:
		return false, r.runBuildingStep(state, step)
	case stepExpectDamage:
		return true, r.runExpectDamageStep(state, step)
	case stepExpectCost:
		return true, r.runExpectCostStep(state, step)
	case stepExpectRange:
		return true, r.runExpectRangeStep(state, step)
	case stepExpectRadius:
		return true, r.runExpectRadiusStep(state, step)
	case stepExpectHash:
		return true, r.runExpectHashStep(state, step)
	default:
		return false, r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runMapStep(state *scenarioState, step Step) error {
	width, okW := readInt(step.Args, "width")
	height, okH := readInt(step.Args, "height")
	if !okW || !okH || width <= 0 || height <= 0 {
		return r.failf("map requires a positive width and height")
	}
	state.width, state.height = width, height
	if fill, ok := step.Args["fill"]; ok {
		info, ok := resolveTile(r.cat, fill)
		if !ok {
			return r.failf("unknown tile %v", fill)
		}
		state.tiles = map[gamemap.Vector]catalog.TileID{}
		for y := 1; y <= height; y++ {
			for x := 1; x <= width; x++ {
				state.tiles[gamemap.Vec(x, y)] = info.ID
			}
		}
	}
	state.built = nil
	return nil
}

func (r *Runner) runPlayerStep(state *scenarioState, step Step) error {
	id, ok := readInt(step.Args, "id")
	if !ok {
		return r.failf("player id is required")
	}
	team := player.TeamID(optionalInt(step.Args, "team", id))
	if _, exists := state.player(player.ID(id)); exists {
		return apperrors.WithMetadata(apperrors.CodeInvalidPlayerID, "duplicate player", map[string]string{
			"Player": strconv.Itoa(id),
		})
	}

	var (
		p   player.Player
		err error
	)
	switch kind := optionalString(step.Args, "kind", "human"); kind {
	case "human":
		p, err = player.NewHuman(player.ID(id), team, optionalString(step.Args, "user", "scenario-"+strconv.Itoa(id)))
	case "bot":
		p, err = player.NewBot(player.ID(id), team, optionalString(step.Args, "name", "Bot "+strconv.Itoa(id)))
	default:
		return r.failf("unknown player kind %q", kind)
	}
	if err != nil {
		return err
	}

	skills, err := readSkills(step.Args, "skills")
	if err != nil {
		return r.failf("player %d: %v", id, err)
	}
	active, err := readSkills(step.Args, "active")
	if err != nil {
		return r.failf("player %d: %v", id, err)
	}
	p = p.SetSkills(skills).SetCharge(player.MaxCharge)
	for _, s := range active.Skills() {
		if p, err = p.ActivateSkill(s); err != nil {
			return err
		}
	}
	p = p.SetCharge(optionalInt(step.Args, "charge", 0)).
		SetFunds(optionalInt(step.Args, "funds", 0))
	if crystal, ok := readInt(step.Args, "crystal"); ok {
		p = p.SetCrystal(skill.Crystal(crystal))
	}

	if _, known := state.players[team]; !known {
		state.teamOrder = append(state.teamOrder, team)
	}
	state.players[team] = append(state.players[team], p)
	state.built = nil
	return nil
}

func (r *Runner) runTileStep(state *scenarioState, step Step) error {
	info, ok := resolveTile(r.cat, step.Args["type"])
	if !ok {
		return r.failf("unknown tile %v", step.Args["type"])
	}
	pos, err := readPosition(step.Args)
	if err != nil {
		return r.failf("tile: %v", err)
	}
	state.tiles[pos] = info.ID
	state.built = nil
	return nil
}

func (r *Runner) runUnitStep(state *scenarioState, step Step) error {
	info, ok := resolveUnit(r.cat, step.Args["type"])
	if !ok {
		return r.failf("unknown unit %v", step.Args["type"])
	}
	pos, err := readPosition(step.Args)
	if err != nil {
		return r.failf("unit: %v", err)
	}
	if _, taken := state.units[pos]; taken {
		return duplicatePosition(pos)
	}

	opts := []unit.Option{unit.WithHealth(optionalInt(step.Args, "health", unit.MaxHealth))}
	if fuel, ok := readInt(step.Args, "fuel"); ok {
		opts = append(opts, unit.WithFuel(fuel))
	}
	if name, ok := readInt(step.Args, "name"); ok {
		opts = append(opts, unit.WithName(name))
	}
	if optionalBool(step.Args, "poisoned", false) {
		opts = append(opts, unit.WithStatusEffect(unit.StatusPoison))
	}
	if optionalBool(step.Args, "shield", false) {
		opts = append(opts, unit.WithShield(true))
	}
	if optionalBool(step.Args, "moved", false) {
		opts = append(opts, unit.WithMoved())
	}
	state.units[pos] = unit.New(info, player.ID(optionalInt(step.Args, "player", 0)), opts...)
	state.built = nil
	return nil
}

func (r *Runner) runBuildingStep(state *scenarioState, step Step) error {
	info, ok := resolveBuilding(r.cat, step.Args["type"])
	if !ok {
		return r.failf("unknown building %v", step.Args["type"])
	}
	pos, err := readPosition(step.Args)
	if err != nil {
		return r.failf("building: %v", err)
	}
	if _, taken := state.buildings[pos]; taken {
		return duplicatePosition(pos)
	}
	opts := []building.Option{}
	if health, ok := readInt(step.Args, "health"); ok {
		opts = append(opts, building.WithHealth(health))
	}
	if _, ok := step.Args["skills"]; ok {
		skills, err := readSkills(step.Args, "skills")
		if err != nil {
			return r.failf("building: %v", err)
		}
		opts = append(opts, building.WithSkills(skills))
	}
	b, err := building.New(info, player.ID(optionalInt(step.Args, "player", 0)), opts...)
	if err != nil {
		return err
	}
	state.buildings[pos] = b
	state.built = nil
	return nil
}

func (r *Runner) runExpectDamageStep(state *scenarioState, step Step) error {
	from, err := readVector(step.Args, "from")
	if err != nil {
		return r.failf("expect_damage: %v", err)
	}
	to, err := readVector(step.Args, "to")
	if err != nil {
		return r.failf("expect_damage: %v", err)
	}
	m, err := r.mapFor(state)
	if err != nil {
		return err
	}

	luck := combat.NoLuck
	if roll, ok := readFloat(step.Args, "luck"); ok {
		luck = combat.LuckFactor(roll)
	}
	prediction, ok := combat.Predict(m, from, to, luck, optionalBool(step.Args, "counter", false))
	if optionalBool(step.Args, "none", false) {
		if ok {
			return r.assertf("expected no attack from %s to %s, got %d damage", from, to, prediction.Damage)
		}
		return nil
	}
	if !ok {
		return r.assertf("expected an attack from %s to %s", from, to)
	}
	want, ok := readInt(step.Args, "damage")
	if !ok {
		return r.failf("expect_damage: damage is required")
	}
	r.trace().Str("from", from.String()).Str("to", to.String()).Int("damage", prediction.Damage).Str("weapon", prediction.Weapon).Msg("damage")
	if prediction.Damage != want {
		return r.assertf("damage from %s to %s = %d, want %d", from, to, prediction.Damage, want)
	}
	if weapon := requiredString(step.Args, "weapon"); weapon != "" && weapon != prediction.Weapon {
		return r.assertf("weapon from %s to %s = %q, want %q", from, to, prediction.Weapon, weapon)
	}
	return nil
}

func (r *Runner) runExpectCostStep(state *scenarioState, step Step) error {
	var skills, active skill.Set
	if id, ok := readInt(step.Args, "player"); ok {
		p, found := state.player(player.ID(id))
		if !found {
			return r.failf("expect_cost: unknown player %d", id)
		}
		skills, active = p.Skills(), p.ActiveSkills()
	}

	var (
		got  float64
		name string
	)
	switch {
	case step.Args["unit"] != nil:
		info, ok := resolveUnit(r.cat, step.Args["unit"])
		if !ok {
			return r.failf("unknown unit %v", step.Args["unit"])
		}
		got, name = skill.UnitCost(info, skills, active), info.Name
	case step.Args["building"] != nil:
		info, ok := resolveBuilding(r.cat, step.Args["building"])
		if !ok {
			return r.failf("unknown building %v", step.Args["building"])
		}
		got, name = skill.BuildingCost(info, skills), info.Name
	default:
		return r.failf("expect_cost requires unit or building")
	}

	if optionalBool(step.Args, "blocked", false) {
		if !math.IsInf(got, 1) {
			return r.assertf("cost of %s = %s, want blocked", name, formatCost(got))
		}
		return nil
	}
	want, ok := readInt(step.Args, "cost")
	if !ok {
		return r.failf("expect_cost: cost is required")
	}
	if got != float64(want) {
		return r.assertf("cost of %s = %s, want %d", name, formatCost(got), want)
	}
	return nil
}

func (r *Runner) runExpectRangeStep(state *scenarioState, step Step) error {
	u, pos, skills, active, err := r.unitAt(state, step, stepExpectRange)
	if err != nil {
		return err
	}
	got, ok := skill.UnitRange(u.Info(), skills, active)
	if optionalBool(step.Args, "none", false) {
		if ok {
			return r.assertf("range of %s at %s = %d-%d, want none", u.Info().Name, pos, got.Min, got.Max)
		}
		return nil
	}
	minRange, okMin := readInt(step.Args, "min")
	maxRange, okMax := readInt(step.Args, "max")
	if !okMin || !okMax {
		return r.failf("expect_range requires min and max")
	}
	if !ok {
		return r.assertf("%s at %s has no range, want %d-%d", u.Info().Name, pos, minRange, maxRange)
	}
	if got.Min != minRange || got.Max != maxRange {
		return r.assertf("range of %s at %s = %d-%d, want %d-%d", u.Info().Name, pos, got.Min, got.Max, minRange, maxRange)
	}
	return nil
}

func (r *Runner) runExpectRadiusStep(state *scenarioState, step Step) error {
	u, pos, skills, active, err := r.unitAt(state, step, stepExpectRadius)
	if err != nil {
		return err
	}
	want, ok := readInt(step.Args, "radius")
	if !ok {
		return r.failf("expect_radius: radius is required")
	}
	if got := skill.UnitRadius(u.Info(), skills, active); got != want {
		return r.assertf("radius of %s at %s = %d, want %d", u.Info().Name, pos, got, want)
	}
	return nil
}

func (r *Runner) runExpectHashStep(state *scenarioState, step Step) error {
	want := requiredString(step.Args, "hash")
	if want == "" {
		return r.failf("expect_hash: hash is required")
	}
	m, err := r.mapFor(state)
	if err != nil {
		return err
	}
	got, err := encoding.MapHash(m)
	if err != nil {
		return fmt.Errorf("hash map: %w", err)
	}
	r.trace().Str("hash", got).Msg("state hash")
	if got != want {
		return r.assertf("state hash = %s, want %s", got, want)
	}
	return nil
}

func (r *Runner) unitAt(state *scenarioState, step Step, kind string) (unit.Unit, gamemap.Vector, skill.Set, skill.Set, error) {
	pos, err := readVector(step.Args, "at")
	if err != nil {
		return unit.Unit{}, pos, skill.Set{}, skill.Set{}, r.failf("%s: %v", kind, err)
	}
	m, err := r.mapFor(state)
	if err != nil {
		return unit.Unit{}, pos, skill.Set{}, skill.Set{}, err
	}
	u, ok := m.UnitAt(pos)
	if !ok {
		return unit.Unit{}, pos, skill.Set{}, skill.Set{}, r.failf("%s: no unit at %s", kind, pos)
	}
	var skills, active skill.Set
	if p, ok := m.PlayerOf(u.Player()); ok {
		skills, active = p.Skills(), p.ActiveSkills()
	}
	return u, pos, skills, active, nil
}

// mapFor builds the map described by the setup steps so far.
func (r *Runner) mapFor(state *scenarioState) (*gamemap.Map, error) {
	if state.built != nil {
		return state.built, nil
	}
	teams := make([]player.Team, 0, len(state.teamOrder))
	for _, id := range state.teamOrder {
		team, err := player.NewTeam(id, "", state.players[id]...)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	var tiles []catalog.TileID
	if len(state.tiles) > 0 {
		fill := r.cat.Tiles()[0].ID
		tiles = make([]catalog.TileID, 0, state.width*state.height)
		for y := 1; y <= state.height; y++ {
			for x := 1; x <= state.width; x++ {
				id, ok := state.tiles[gamemap.Vec(x, y)]
				if !ok {
					id = fill
				}
				tiles = append(tiles, id)
			}
		}
		for pos := range state.tiles {
			if pos.X < 1 || pos.Y < 1 || pos.X > state.width || pos.Y > state.height {
				return nil, apperrors.WithMetadata(apperrors.CodePositionOutOfBounds, "tile is outside the map", map[string]string{
					"Position": pos.String(),
				})
			}
		}
	}

	m, err := gamemap.New(gamemap.Config{
		Catalog:   r.cat,
		Width:     state.width,
		Height:    state.height,
		Tiles:     tiles,
		Teams:     teams,
		Units:     state.units,
		Buildings: state.buildings,
	})
	if err != nil {
		return nil, err
	}
	state.built = m
	return m, nil
}

func duplicatePosition(pos gamemap.Vector) error {
	return apperrors.WithMetadata(apperrors.CodeDuplicatePosition, "position is already taken", map[string]string{
		"Position": pos.String(),
	})
}

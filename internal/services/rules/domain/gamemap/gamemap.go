// Package gamemap is the read surface over a match: tiles, units, buildings
// and the team structure they are resolved against.
package gamemap

import (
	"sort"
	"strconv"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/building"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

// Config describes the initial state of a map. Tiles are row-major; an
// empty slice fills the map with the first tile of the catalog.
type Config struct {
	Catalog   *catalog.Catalog
	Width     int
	Height    int
	Tiles     []catalog.TileID
	Teams     []player.Team
	Units     map[Vector]unit.Unit
	Buildings map[Vector]building.Building
}

// Map is immutable. With* methods return an updated copy that shares
// untouched state with the receiver.
type Map struct {
	cat       *catalog.Catalog
	width     int
	height    int
	tiles     []*catalog.TileInfo
	teams     []player.Team
	units     map[Vector]unit.Unit
	buildings map[Vector]building.Building
}

// New validates cfg and builds a map.
func New(cfg Config) (*Map, error) {
	if cfg.Catalog == nil {
		return nil, apperrors.New(apperrors.CodeInvalidEntry, "map without catalog")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidEntry, "map size must be positive")
	}
	m := &Map{
		cat:       cfg.Catalog,
		width:     cfg.Width,
		height:    cfg.Height,
		units:     make(map[Vector]unit.Unit, len(cfg.Units)),
		buildings: make(map[Vector]building.Building, len(cfg.Buildings)),
	}
	if err := m.loadTiles(cfg.Tiles); err != nil {
		return nil, err
	}
	seenTeams := make(map[player.TeamID]bool, len(cfg.Teams))
	seenPlayers := make(map[player.ID]bool)
	for _, team := range cfg.Teams {
		if seenTeams[team.ID()] {
			return nil, apperrors.New(apperrors.CodeInvalidPlayerID, "team "+strconv.Itoa(int(team.ID()))+" defined twice")
		}
		seenTeams[team.ID()] = true
		for _, p := range team.Players() {
			if seenPlayers[p.ID()] {
				return nil, apperrors.WithMetadata(apperrors.CodeInvalidPlayerID, "player defined twice", map[string]string{
					"ID": strconv.Itoa(int(p.ID())),
				})
			}
			seenPlayers[p.ID()] = true
		}
	}
	m.teams = append([]player.Team(nil), cfg.Teams...)
	sort.Slice(m.teams, func(i, j int) bool { return m.teams[i].ID() < m.teams[j].ID() })

	for v, u := range cfg.Units {
		if err := m.checkPlacement(v, u.Player()); err != nil {
			return nil, err
		}
		m.units[v] = u
	}
	for v, b := range cfg.Buildings {
		if err := m.checkPlacement(v, b.Player()); err != nil {
			return nil, err
		}
		m.buildings[v] = b
	}
	return m, nil
}

func (m *Map) loadTiles(ids []catalog.TileID) error {
	size := m.width * m.height
	if len(ids) == 0 {
		tiles := m.cat.Tiles()
		if len(tiles) == 0 {
			return apperrors.New(apperrors.CodeUnknownTile, "catalog has no tiles")
		}
		ids = make([]catalog.TileID, size)
		for i := range ids {
			ids[i] = tiles[0].ID
		}
	}
	if len(ids) != size {
		return apperrors.New(apperrors.CodeInvalidEntry, "map needs "+strconv.Itoa(size)+" tiles, got "+strconv.Itoa(len(ids)))
	}
	m.tiles = make([]*catalog.TileInfo, size)
	for i, id := range ids {
		info, err := m.cat.RequireTile(id)
		if err != nil {
			return err
		}
		m.tiles[i] = info
	}
	return nil
}

func (m *Map) checkPlacement(v Vector, owner player.ID) error {
	if !m.Contains(v) {
		return apperrors.WithMetadata(apperrors.CodePositionOutOfBounds, "position "+v.String()+" is outside the map", map[string]string{
			"Position": v.String(),
		})
	}
	if owner != player.Neutral {
		if _, ok := m.Player(owner); !ok {
			return apperrors.WithMetadata(apperrors.CodeUnknownPlayer, "unknown player "+strconv.Itoa(int(owner)), map[string]string{
				"ID": strconv.Itoa(int(owner)),
			})
		}
	}
	return nil
}

func (m *Map) Catalog() *catalog.Catalog {
	return m.cat
}

func (m *Map) Size() (width, height int) {
	return m.width, m.height
}

// Contains reports whether v lies on the map.
func (m *Map) Contains(v Vector) bool {
	return v.X >= 1 && v.Y >= 1 && v.X <= m.width && v.Y <= m.height
}

// Tile returns the tile id at v.
func (m *Map) Tile(v Vector) (catalog.TileID, bool) {
	info, ok := m.TileInfo(v)
	if !ok {
		return 0, false
	}
	return info.ID, true
}

func (m *Map) TileInfo(v Vector) (*catalog.TileInfo, bool) {
	if !m.Contains(v) {
		return nil, false
	}
	return m.tiles[(v.Y-1)*m.width+(v.X-1)], true
}

func (m *Map) UnitAt(v Vector) (unit.Unit, bool) {
	u, ok := m.units[v]
	return u, ok
}

func (m *Map) BuildingAt(v Vector) (building.Building, bool) {
	b, ok := m.buildings[v]
	return b, ok
}

// Placed pairs an entity with its position.
type Placed[T any] struct {
	Position Vector
	Value    T
}

// Units returns every unit ordered by position.
func (m *Map) Units() []Placed[unit.Unit] {
	return placed(m.units)
}

// Buildings returns every building ordered by position.
func (m *Map) Buildings() []Placed[building.Building] {
	return placed(m.buildings)
}

func placed[T any](entities map[Vector]T) []Placed[T] {
	out := make([]Placed[T], 0, len(entities))
	for v, e := range entities {
		out = append(out, Placed[T]{Position: v, Value: e})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position.Less(out[j].Position) })
	return out
}

func (m *Map) Teams() []player.Team {
	return append([]player.Team(nil), m.teams...)
}

func (m *Map) Team(id player.TeamID) (player.Team, bool) {
	for _, team := range m.teams {
		if team.ID() == id {
			return team, true
		}
	}
	return player.Team{}, false
}

// Player finds a player across all teams.
func (m *Map) Player(id player.ID) (player.Player, bool) {
	for _, team := range m.teams {
		if p, ok := team.Player(id); ok {
			return p, true
		}
	}
	return player.Player{}, false
}

// PlayerOf resolves the owner of an entity. Neutral entities have none.
func (m *Map) PlayerOf(owner player.ID) (player.Player, bool) {
	if owner == player.Neutral {
		return player.Player{}, false
	}
	return m.Player(owner)
}

// MatchesTeam reports whether both players fight on the same side. The
// neutral player matches only itself.
func (m *Map) MatchesTeam(a, b player.ID) bool {
	if a == b {
		return true
	}
	pa, okA := m.PlayerOf(a)
	pb, okB := m.PlayerOf(b)
	return okA && okB && pa.Team() == pb.Team()
}

// IsOpponent reports whether a and b are on different sides and neither is
// neutral.
func (m *Map) IsOpponent(a, b player.ID) bool {
	if a == player.Neutral || b == player.Neutral {
		return false
	}
	return !m.MatchesTeam(a, b)
}

// WithUnit places u at v, replacing any unit there.
func (m *Map) WithUnit(v Vector, u unit.Unit) (*Map, error) {
	if err := m.checkPlacement(v, u.Player()); err != nil {
		return nil, err
	}
	next := m.clone()
	next.units = cloneEntities(m.units)
	next.units[v] = u
	return next, nil
}

// WithoutUnit removes the unit at v.
func (m *Map) WithoutUnit(v Vector) *Map {
	if _, ok := m.units[v]; !ok {
		return m
	}
	next := m.clone()
	next.units = cloneEntities(m.units)
	delete(next.units, v)
	return next
}

// WithBuilding places b at v, replacing any building there.
func (m *Map) WithBuilding(v Vector, b building.Building) (*Map, error) {
	if err := m.checkPlacement(v, b.Player()); err != nil {
		return nil, err
	}
	next := m.clone()
	next.buildings = cloneEntities(m.buildings)
	next.buildings[v] = b
	return next, nil
}

// WithPlayer replaces the player with the same id in its team. A player id
// already seated in another team is rejected.
func (m *Map) WithPlayer(p player.Player) (*Map, error) {
	if existing, ok := m.Player(p.ID()); ok && existing.Team() != p.Team() {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidPlayerID, "player already belongs to team "+strconv.Itoa(int(existing.Team())), map[string]string{
			"ID": strconv.Itoa(int(p.ID())),
		})
	}
	for i, team := range m.teams {
		if team.ID() != p.Team() {
			continue
		}
		next := m.clone()
		next.teams = append([]player.Team(nil), m.teams...)
		next.teams[i] = team.SetPlayer(p)
		return next, nil
	}
	return nil, apperrors.WithMetadata(apperrors.CodeUnknownPlayer, "unknown team "+strconv.Itoa(int(p.Team())), map[string]string{
		"ID": strconv.Itoa(int(p.ID())),
	})
}

func (m *Map) clone() *Map {
	c := *m
	return &c
}

func cloneEntities[T any](entities map[Vector]T) map[Vector]T {
	out := make(map[Vector]T, len(entities)+1)
	for v, e := range entities {
		out[v] = e
	}
	return out
}

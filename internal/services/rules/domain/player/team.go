package player

import (
	"sort"
	"strconv"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
)

// Team groups players that share victory conditions.
type Team struct {
	id      TeamID
	name    string
	players []Player
}

// NewTeam builds a team. Every player must belong to id and appear once.
func NewTeam(id TeamID, name string, players ...Player) (Team, error) {
	team := Team{id: id, name: name}
	for _, p := range players {
		if p.team != id {
			return Team{}, apperrors.WithMetadata(apperrors.CodeInvalidPlayerID, "player belongs to another team", map[string]string{
				"ID":   strconv.Itoa(int(p.id)),
				"Team": strconv.Itoa(int(id)),
			})
		}
		if team.HasPlayer(p.id) {
			return Team{}, apperrors.WithMetadata(apperrors.CodeInvalidPlayerID, "duplicate player", map[string]string{
				"ID": strconv.Itoa(int(p.id)),
			})
		}
		team = team.SetPlayer(p)
	}
	return team, nil
}

func (t Team) ID() TeamID {
	return t.id
}

func (t Team) Name() string {
	return t.name
}

// Player returns the member with the given id.
func (t Team) Player(id ID) (Player, bool) {
	i := t.index(id)
	if i < 0 {
		return Player{}, false
	}
	return t.players[i], true
}

// HasPlayer reports whether id is a member.
func (t Team) HasPlayer(id ID) bool {
	return t.index(id) >= 0
}

// Players returns the members ordered by id.
func (t Team) Players() []Player {
	return append([]Player(nil), t.players...)
}

// SetPlayer returns a copy with p added or replaced.
func (t Team) SetPlayer(p Player) Team {
	players := append([]Player(nil), t.players...)
	if i := t.index(p.id); i >= 0 {
		players[i] = p
	} else {
		players = append(players, p)
		sort.Slice(players, func(i, j int) bool { return players[i].id < players[j].id })
	}
	t.players = players
	return t
}

// RemovePlayer returns a copy without the given member.
func (t Team) RemovePlayer(id ID) Team {
	i := t.index(id)
	if i < 0 {
		return t
	}
	players := make([]Player, 0, len(t.players)-1)
	players = append(players, t.players[:i]...)
	players = append(players, t.players[i+1:]...)
	t.players = players
	return t
}

func (t Team) index(id ID) int {
	for i, p := range t.players {
		if p.id == id {
			return i
		}
	}
	return -1
}

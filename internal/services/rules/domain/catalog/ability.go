package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
)

// Ability is a unit capability flag.
type Ability uint8

const (
	AbilityCapture Ability = iota
	AbilityHeal
	AbilitySupply
	AbilityCreateBuildings
	AbilityCreateTracks
	AbilityRescue
	AbilitySabotage
	AbilityUnfold
	AbilityAccessBuildings
	AbilityMoveAndAct
	AbilityHeavyEquipment
	abilityCount
)

var abilityNames = [abilityCount]string{
	"capture",
	"heal",
	"supply",
	"createBuildings",
	"createTracks",
	"rescue",
	"sabotage",
	"unfold",
	"accessBuildings",
	"moveAndAct",
	"heavyEquipment",
}

func (a Ability) String() string {
	if a >= abilityCount {
		return fmt.Sprintf("ability(%d)", uint8(a))
	}
	return abilityNames[a]
}

// ParseAbility resolves an ability by its stable name.
func ParseAbility(name string) (Ability, bool) {
	for i, candidate := range abilityNames {
		if candidate == name {
			return Ability(i), true
		}
	}
	return 0, false
}

// Abilities is a fixed-size set of Ability flags.
type Abilities uint16

// NewAbilities builds a set from the given flags.
func NewAbilities(abilities ...Ability) Abilities {
	var set Abilities
	for _, a := range abilities {
		set |= 1 << checkAbility("catalog.NewAbilities", a)
	}
	return set
}

// Has reports whether the set contains a. An undeclared ability is a
// contract violation and panics.
func (s Abilities) Has(a Ability) bool {
	return s&(1<<checkAbility("catalog.Abilities.Has", a)) != 0
}

// List returns the contained abilities in declaration order.
func (s Abilities) List() []Ability {
	var out []Ability
	for a := Ability(0); a < abilityCount; a++ {
		if s&(1<<a) != 0 {
			out = append(out, a)
		}
	}
	return out
}

// MarshalJSON encodes the set as a sorted list of ability names.
func (s Abilities) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, abilityCount)
	for _, a := range s.List() {
		names = append(names, a.String())
	}
	sort.Strings(names)
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of ability names.
func (s *Abilities) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set Abilities
	for _, name := range names {
		a, ok := ParseAbility(name)
		if !ok {
			return fmt.Errorf("unknown ability %q", name)
		}
		set |= 1 << a
	}
	*s = set
	return nil
}

func checkAbility(function string, a Ability) Ability {
	if a >= abilityCount {
		panic(apperrors.Unreachable(function, a))
	}
	return a
}

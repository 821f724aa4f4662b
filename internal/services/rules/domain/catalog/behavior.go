package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
)

// Behavior is a building capability flag.
type Behavior uint8

const (
	BehaviorCapturable Behavior = iota
	BehaviorBank
	BehaviorHeal
	BehaviorSupply
	BehaviorCreateUnits
	BehaviorResearch
	BehaviorAura
	behaviorCount
)

var behaviorNames = [behaviorCount]string{
	"capturable",
	"bank",
	"heal",
	"supply",
	"createUnits",
	"research",
	"aura",
}

func (b Behavior) String() string {
	if b >= behaviorCount {
		return fmt.Sprintf("behavior(%d)", uint8(b))
	}
	return behaviorNames[b]
}

// Behaviors is a fixed-size set of Behavior flags.
type Behaviors uint8

// NewBehaviors builds a set from the given flags.
func NewBehaviors(behaviors ...Behavior) Behaviors {
	var set Behaviors
	for _, b := range behaviors {
		set |= 1 << checkBehavior("catalog.NewBehaviors", b)
	}
	return set
}

// Has reports whether the set contains b. An undeclared behavior panics.
func (s Behaviors) Has(b Behavior) bool {
	return s&(1<<checkBehavior("catalog.Behaviors.Has", b)) != 0
}

// MarshalJSON encodes the set as a sorted list of behavior names.
func (s Behaviors) MarshalJSON() ([]byte, error) {
	var names []string
	for b := Behavior(0); b < behaviorCount; b++ {
		if s&(1<<b) != 0 {
			names = append(names, b.String())
		}
	}
	sort.Strings(names)
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of behavior names.
func (s *Behaviors) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set Behaviors
	for _, name := range names {
		found := false
		for i, candidate := range behaviorNames {
			if candidate == name {
				set |= 1 << Behavior(i)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown building behavior %q", name)
		}
	}
	*s = set
	return nil
}

func checkBehavior(function string, b Behavior) Behavior {
	if b >= behaviorCount {
		panic(apperrors.Unreachable(function, b))
	}
	return b
}

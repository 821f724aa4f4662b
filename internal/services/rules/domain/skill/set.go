package skill

import (
	"encoding/json"
	"sort"
)

// Set is an immutable, sorted collection of distinct skills. The zero value
// is the empty set. Iteration always follows code order, which keeps every
// aggregate bit-identical across runs.
type Set struct {
	skills []Skill
}

// NewSet builds a set, dropping duplicates.
func NewSet(skills ...Skill) Set {
	if len(skills) == 0 {
		return Set{}
	}
	sorted := append([]Skill(nil), skills...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return Set{skills: out}
}

// Len returns the number of skills.
func (s Set) Len() int {
	return len(s.skills)
}

// Has reports whether skill is in the set.
func (s Set) Has(skill Skill) bool {
	i := sort.Search(len(s.skills), func(i int) bool { return s.skills[i] >= skill })
	return i < len(s.skills) && s.skills[i] == skill
}

// Skills returns a copy of the members in code order.
func (s Set) Skills() []Skill {
	if len(s.skills) == 0 {
		return nil
	}
	return append([]Skill(nil), s.skills...)
}

// Add returns a set that also contains skill.
func (s Set) Add(skill Skill) Set {
	if s.Has(skill) {
		return s
	}
	return NewSet(append(s.Skills(), skill)...)
}

// Remove returns a set without skill.
func (s Set) Remove(skill Skill) Set {
	if !s.Has(skill) {
		return s
	}
	out := make([]Skill, 0, len(s.skills)-1)
	for _, candidate := range s.skills {
		if candidate != skill {
			out = append(out, candidate)
		}
	}
	if len(out) == 0 {
		return Set{}
	}
	return Set{skills: out}
}

// Union returns the members of either set.
func (s Set) Union(other Set) Set {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return other
	}
	return NewSet(append(s.Skills(), other.skills...)...)
}

// Intersect returns the members of both sets.
func (s Set) Intersect(other Set) Set {
	var out []Skill
	for _, skill := range s.skills {
		if other.Has(skill) {
			out = append(out, skill)
		}
	}
	return Set{skills: out}
}

// SubsetOf reports whether every member is also in other.
func (s Set) SubsetOf(other Set) bool {
	for _, skill := range s.skills {
		if !other.Has(skill) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold the same members.
func (s Set) Equal(other Set) bool {
	if len(s.skills) != len(other.skills) {
		return false
	}
	for i := range s.skills {
		if s.skills[i] != other.skills[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted list of codes.
func (s Set) MarshalJSON() ([]byte, error) {
	if len(s.skills) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(s.skills)
}

// UnmarshalJSON decodes a list of codes.
func (s *Set) UnmarshalJSON(data []byte) error {
	var skills []Skill
	if err := json.Unmarshal(data, &skills); err != nil {
		return err
	}
	*s = NewSet(skills...)
	return nil
}

// Package player models match participants and teams as immutable values.
package player

import (
	"strconv"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
)

// ID identifies a player within a match. Zero is the neutral owner.
type ID int

// Neutral owns unclaimed buildings and structures.
const Neutral ID = 0

// TeamID identifies a team within a match.
type TeamID int

// Kind distinguishes the player variants.
type Kind int

const (
	KindHuman Kind = iota + 1
	KindBot
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindHuman:
		return "human"
	case KindBot:
		return "bot"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

const (
	// ChargeUnit is the charge needed for one skill charge.
	ChargeUnit = 1500
	// MaxCharges caps the number of stored charges.
	MaxCharges = 10
	// MaxCharge is the charge ceiling.
	MaxCharge = ChargeUnit * MaxCharges
)

// Player is an immutable match participant. Mutators return updated copies.
type Player struct {
	id      ID
	team    TeamID
	kind    Kind
	userID  string
	name    string
	funds   int
	skills  skill.Set
	active  skill.Set
	charge  int
	crystal skill.Crystal
	stats   Statistics
}

// NewHuman creates a player bound to an external user identity.
func NewHuman(id ID, team TeamID, userID string) (Player, error) {
	if err := validateID(id); err != nil {
		return Player{}, err
	}
	return Player{id: id, team: team, kind: KindHuman, userID: userID}, nil
}

// NewBot creates a computer-controlled player.
func NewBot(id ID, team TeamID, name string) (Player, error) {
	if err := validateID(id); err != nil {
		return Player{}, err
	}
	return Player{id: id, team: team, kind: KindBot, name: name}, nil
}

// NewPlaceholder creates an unclaimed player slot.
func NewPlaceholder(id ID, team TeamID) (Player, error) {
	if err := validateID(id); err != nil {
		return Player{}, err
	}
	return Player{id: id, team: team, kind: KindPlaceholder}, nil
}

func validateID(id ID) error {
	if id <= Neutral {
		return apperrors.WithMetadata(apperrors.CodeInvalidPlayerID, "player id must be positive", map[string]string{
			"ID": strconv.Itoa(int(id)),
		})
	}
	return nil
}

func (p Player) ID() ID { return p.id }
func (p Player) Team() TeamID { return p.team }
func (p Player) Kind() Kind { return p.kind }
func (p Player) UserID() string { return p.userID }
func (p Player) Name() string { return p.name }
func (p Player) Funds() int { return p.funds }
func (p Player) Skills() skill.Set { return p.skills }
func (p Player) ActiveSkills() skill.Set { return p.active }
func (p Player) Charge() int { return p.charge }
func (p Player) Crystal() skill.Crystal { return p.crystal }
func (p Player) Statistics() Statistics { return p.stats }
func (p Player) IsHuman() bool { return p.kind == KindHuman }
func (p Player) IsBot() bool { return p.kind == KindBot }
func (p Player) IsPlaceholder() bool { return p.kind == KindPlaceholder }
func (p Player) HasSkill(s skill.Skill) bool { return p.skills.Has(s) }
func (p Player) IsActive(s skill.Skill) bool { return p.active.Has(s) }

// Charges returns the number of whole charges available.
func (p Player) Charges() int {
	return p.charge / ChargeUnit
}

// SetFunds returns a copy with funds set, clamped at zero.
func (p Player) SetFunds(funds int) Player {
	p.funds = max(0, funds)
	return p
}

// ModifyFunds returns a copy with funds changed by delta, clamped at zero.
func (p Player) ModifyFunds(delta int) Player {
	return p.SetFunds(saturatingAdd(p.funds, delta))
}

// SetSkills replaces the unlocked skills. Active skills that are no longer
// unlocked are dropped.
func (p Player) SetSkills(skills skill.Set) Player {
	p.skills = skills
	p.active = p.active.Intersect(skills)
	return p
}

// ActivateSkill turns on the power of an unlocked skill and spends its
// charges.
func (p Player) ActivateSkill(s skill.Skill) (Player, error) {
	if !p.skills.Has(s) {
		return p, apperrors.WithMetadata(apperrors.CodeSkillNotUnlocked, "skill is not unlocked", map[string]string{
			"Skill": strconv.Itoa(int(s)),
		})
	}
	cost := skill.ConfigOf(s).Charges * ChargeUnit
	if p.charge < cost {
		return p, apperrors.WithMetadata(apperrors.CodeInsufficientCharge, "not enough charge", map[string]string{
			"Skill":  strconv.Itoa(int(s)),
			"Charge": strconv.Itoa(p.charge),
			"Cost":   strconv.Itoa(cost),
		})
	}
	p.charge -= cost
	p.active = p.active.Add(s)
	return p, nil
}

// ResetActiveSkills returns a copy without active powers.
func (p Player) ResetActiveSkills() Player {
	p.active = skill.Set{}
	return p
}

// SetCharge returns a copy with charge clamped to [0, MaxCharge].
func (p Player) SetCharge(charge int) Player {
	p.charge = min(MaxCharge, max(0, charge))
	return p
}

// ModifyCharge returns a copy with charge changed by delta.
func (p Player) ModifyCharge(delta int) Player {
	return p.SetCharge(saturatingAdd(p.charge, delta))
}

// SetCrystal returns a copy holding c. Zero removes the crystal.
func (p Player) SetCrystal(c skill.Crystal) Player {
	p.crystal = c
	return p
}

// ModifyStatistic returns a copy with one counter changed by delta.
func (p Player) ModifyStatistic(stat Stat, delta int) Player {
	p.stats = p.stats.modify(stat, delta)
	return p
}

// SetStatistics returns a copy with all counters replaced.
func (p Player) SetStatistics(stats Statistics) Player {
	p.stats = stats.clamp()
	return p
}

// ToBot converts the player into a bot, keeping its match state.
func (p Player) ToBot(name string) Player {
	p.kind = KindBot
	p.name = name
	p.userID = ""
	return p
}

// ToHuman converts the player into a human bound to userID.
func (p Player) ToHuman(userID string) Player {
	p.kind = KindHuman
	p.userID = userID
	p.name = ""
	return p
}

// ToPlaceholder releases the slot, keeping its match state.
func (p Player) ToPlaceholder() Player {
	p.kind = KindPlaceholder
	p.userID = ""
	p.name = ""
	return p
}

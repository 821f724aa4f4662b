package player

import (
	"math"
	"testing"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
)

func mustHuman(t *testing.T, id ID, team TeamID) Player {
	t.Helper()
	p, err := NewHuman(id, team, "user-1")
	if err != nil {
		t.Fatalf("new human: %v", err)
	}
	return p
}

func TestConstructorsRejectNeutralID(t *testing.T) {
	if _, err := NewHuman(0, 1, "u"); apperrors.CodeOf(err) != apperrors.CodeInvalidPlayerID {
		t.Fatalf("NewHuman error = %v", err)
	}
	if _, err := NewBot(-1, 1, "AI"); apperrors.CodeOf(err) != apperrors.CodeInvalidPlayerID {
		t.Fatalf("NewBot error = %v", err)
	}
	if _, err := NewPlaceholder(0, 1); apperrors.CodeOf(err) != apperrors.CodeInvalidPlayerID {
		t.Fatalf("NewPlaceholder error = %v", err)
	}
}

func TestFundsAreClamped(t *testing.T) {
	p := mustHuman(t, 1, 1).SetFunds(500)
	if got := p.ModifyFunds(-800).Funds(); got != 0 {
		t.Fatalf("funds = %d, want 0", got)
	}
	if got := p.ModifyFunds(250).Funds(); got != 750 {
		t.Fatalf("funds = %d, want 750", got)
	}
	if p.Funds() != 500 {
		t.Fatal("ModifyFunds mutated the receiver")
	}
	if got := p.ModifyFunds(math.MaxInt).Funds(); got != math.MaxInt {
		t.Fatalf("ModifyFunds(MaxInt) = %d, want %d", got, math.MaxInt)
	}
	if got := p.ModifyFunds(math.MinInt).Funds(); got != 0 {
		t.Fatalf("ModifyFunds(MinInt) = %d, want 0", got)
	}
}

func TestChargeIsClamped(t *testing.T) {
	p := mustHuman(t, 1, 1)
	tests := []struct {
		delta int
		want  int
	}{
		{delta: -10, want: 0},
		{delta: 2 * ChargeUnit, want: 2 * ChargeUnit},
		{delta: MaxCharge * 3, want: MaxCharge},
		{delta: math.MaxInt, want: MaxCharge},
		{delta: math.MinInt, want: 0},
	}
	for _, tc := range tests {
		if got := p.ModifyCharge(tc.delta).Charge(); got != tc.want {
			t.Fatalf("ModifyCharge(%d) = %d, want %d", tc.delta, got, tc.want)
		}
	}
	if got := p.SetCharge(MaxCharge).ModifyCharge(math.MinInt).Charge(); got != 0 {
		t.Fatalf("ModifyCharge(MinInt) from full = %d, want 0", got)
	}
	if got := p.SetCharge(MaxCharge).ModifyCharge(math.MaxInt).Charge(); got != MaxCharge {
		t.Fatalf("ModifyCharge(MaxInt) from full = %d, want %d", got, MaxCharge)
	}
	if got := p.SetCharge(2*ChargeUnit + 10).Charges(); got != 2 {
		t.Fatalf("Charges() = %d, want 2", got)
	}
}

func TestActivateSkill(t *testing.T) {
	p := mustHuman(t, 1, 1).SetSkills(skill.NewSet(skill.AttackIncreaseMinor))

	if _, err := p.ActivateSkill(skill.DefenseIncreaseMinor); apperrors.CodeOf(err) != apperrors.CodeSkillNotUnlocked {
		t.Fatalf("error = %v, want %v", err, apperrors.CodeSkillNotUnlocked)
	}
	if _, err := p.ActivateSkill(skill.AttackIncreaseMinor); apperrors.CodeOf(err) != apperrors.CodeInsufficientCharge {
		t.Fatalf("error = %v, want %v", err, apperrors.CodeInsufficientCharge)
	}

	cost := skill.ConfigOf(skill.AttackIncreaseMinor).Charges * ChargeUnit
	charged := p.SetCharge(cost + 100)
	active, err := charged.ActivateSkill(skill.AttackIncreaseMinor)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !active.IsActive(skill.AttackIncreaseMinor) {
		t.Fatal("expected active skill")
	}
	if active.Charge() != 100 {
		t.Fatalf("charge = %d, want 100", active.Charge())
	}
	if charged.IsActive(skill.AttackIncreaseMinor) {
		t.Fatal("ActivateSkill mutated the receiver")
	}
	if active.ResetActiveSkills().ActiveSkills().Len() != 0 {
		t.Fatal("expected no active skills after reset")
	}
}

func TestSetSkillsDropsStaleActiveSkills(t *testing.T) {
	p := mustHuman(t, 1, 1).SetSkills(skill.NewSet(skill.AttackIncreaseMinor)).SetCharge(MaxCharge)
	p, err := p.ActivateSkill(skill.AttackIncreaseMinor)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	p = p.SetSkills(skill.NewSet(skill.DefenseIncreaseMinor))
	if p.ActiveSkills().Len() != 0 {
		t.Fatalf("active = %v, want empty", p.ActiveSkills().Skills())
	}
}

func TestStatisticsAreClamped(t *testing.T) {
	p := mustHuman(t, 1, 1).ModifyStatistic(StatDamage, 40).ModifyStatistic(StatDamage, -100)
	if got := p.Statistics().Damage; got != 0 {
		t.Fatalf("damage = %d, want 0", got)
	}
	p = p.ModifyStatistic(StatOneShots, 2)
	if got := p.Statistics().OneShots; got != 2 {
		t.Fatalf("one shots = %d, want 2", got)
	}
	p = p.ModifyStatistic(StatOneShots, math.MaxInt)
	if got := p.Statistics().OneShots; got != math.MaxInt {
		t.Fatalf("one shots = %d, want %d", got, math.MaxInt)
	}
	if got := p.ModifyStatistic(StatOneShots, math.MinInt).Statistics().OneShots; got != 0 {
		t.Fatalf("one shots = %d, want 0", got)
	}
	p = p.SetStatistics(Statistics{LostUnits: -3, CreatedUnits: 4})
	if s := p.Statistics(); s.LostUnits != 0 || s.CreatedUnits != 4 {
		t.Fatalf("statistics = %+v", s)
	}
}

func TestUnknownStatisticPanics(t *testing.T) {
	defer func() {
		if _, ok := recover().(*apperrors.Error); !ok {
			t.Fatal("expected *apperrors.Error panic")
		}
	}()
	mustHuman(t, 1, 1).ModifyStatistic(Stat(99), 1)
}

func TestKindConversionsKeepState(t *testing.T) {
	p := mustHuman(t, 2, 1).SetFunds(900)
	bot := p.ToBot("Bot")
	if !bot.IsBot() || bot.Name() != "Bot" || bot.UserID() != "" || bot.Funds() != 900 {
		t.Fatalf("bot = %+v", bot)
	}
	human := bot.ToHuman("user-2")
	if !human.IsHuman() || human.UserID() != "user-2" || human.Name() != "" {
		t.Fatalf("human = %+v", human)
	}
	placeholder := human.ToPlaceholder()
	if !placeholder.IsPlaceholder() || placeholder.ID() != 2 || placeholder.Funds() != 900 {
		t.Fatalf("placeholder = %+v", placeholder)
	}
}

func TestTeam(t *testing.T) {
	p2 := mustHuman(t, 2, 7)
	p1 := mustHuman(t, 1, 7)
	team, err := NewTeam(7, "Red", p2, p1)
	if err != nil {
		t.Fatalf("new team: %v", err)
	}
	players := team.Players()
	if len(players) != 2 || players[0].ID() != 1 || players[1].ID() != 2 {
		t.Fatalf("players = %+v", players)
	}
	updated := team.SetPlayer(p1.SetFunds(300))
	if got, _ := updated.Player(1); got.Funds() != 300 {
		t.Fatalf("funds = %d, want 300", got.Funds())
	}
	if got, _ := team.Player(1); got.Funds() != 0 {
		t.Fatal("SetPlayer mutated the receiver")
	}
	if updated.RemovePlayer(1).HasPlayer(1) {
		t.Fatal("expected player to be removed")
	}
	if _, err := NewTeam(7, "Red", p1, p1); apperrors.CodeOf(err) != apperrors.CodeInvalidPlayerID {
		t.Fatalf("duplicate error = %v", err)
	}
	if _, err := NewTeam(8, "Blue", p1); apperrors.CodeOf(err) != apperrors.CodeInvalidPlayerID {
		t.Fatalf("team mismatch error = %v", err)
	}
}

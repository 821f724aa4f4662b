package i18n

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
)

func TestSkillName(t *testing.T) {
	d := NewDescriber(nil)
	tests := []struct {
		locale string
		skill  skill.Skill
		want   string
	}{
		{locale: "en-US", skill: skill.AttackIncreaseMinor, want: "Sharpshooter"},
		{locale: "fr-FR", skill: skill.AttackIncreaseMinor, want: "Sharpshooter"},
		{locale: "en-US", skill: skill.Skill(999), want: "skill.name.999"},
	}
	for _, tt := range tests {
		if got := d.SkillName(tt.locale, tt.skill); got != tt.want {
			t.Fatalf("SkillName(%s, %d) = %q, want %q", tt.locale, tt.skill, got, tt.want)
		}
	}
	if got := d.SkillName("de-DE", skill.AttackIncreaseMinor); got == "" || got == "skill.name.1" {
		t.Fatalf("german skill name = %q", got)
	}
}

func TestDescribeSkill(t *testing.T) {
	d := NewDescriber(nil)
	tests := []struct {
		name  string
		skill skill.Skill
		kind  skill.Kind
		want  []string
	}{
		{name: "flat attack", skill: skill.AttackIncreaseMinor, kind: skill.Regular, want: []string{"Attack +10%"}},
		{name: "unit scoped", skill: skill.BuyUnitCannon, kind: skill.Regular, want: []string{"Attack +10% (Cannon)", "Unlocks Cannon"}},
		{name: "counter", skill: skill.CounterAttackPower, kind: skill.Power, want: []string{"Counter attacks +50%"}},
		{name: "leader", skill: skill.LeaderAttackIncrease, kind: skill.Regular, want: []string{"Attack +15% for leaders"}},
		{name: "range", skill: skill.ArtilleryRangeIncrease, kind: skill.Regular, want: []string{"Range 2-4 (Artillery)"}},
		{name: "none", skill: skill.UnitAbilitySniperImmediateAction, kind: skill.Regular, want: []string{"No effect"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.DescribeSkill("en-US", tt.skill, tt.kind)
			for _, line := range tt.want {
				if !slices.Contains(got, line) {
					t.Fatalf("DescribeSkill = %q, missing %q", got, line)
				}
			}
		})
	}
}

func TestDescribeSkillIsDeterministic(t *testing.T) {
	d := NewDescriber(nil)
	for _, s := range skill.All() {
		for _, kind := range []skill.Kind{skill.Regular, skill.Power} {
			first := d.DescribeSkill("en-US", s, kind)
			for range 5 {
				if got := d.DescribeSkill("en-US", s, kind); !slices.Equal(got, first) {
					t.Fatalf("DescribeSkill(%d, %v) changed between calls: %q vs %q", s, kind, got, first)
				}
			}
		}
	}
}

func TestRejectionReason(t *testing.T) {
	d := NewDescriber(nil)
	_, err := catalog.Default().RequireUnit(99)
	if got, want := d.RejectionReason("en-US", err), "Unit type 99 does not exist."; got != want {
		t.Fatalf("RejectionReason = %q, want %q", got, want)
	}
	if got := d.RejectionReason("de-DE", apperrors.New(apperrors.CodeNeutralHQ, "x")); got != "Ein Hauptquartier muss einem Spieler gehören." {
		t.Fatalf("german rejection = %q", got)
	}
	if got := d.RejectionReason("en-US", nil); got != "" {
		t.Fatalf("nil error = %q, want empty", got)
	}
}

func TestRejectionStatus(t *testing.T) {
	d := NewDescriber(nil)
	_, unknownUnit := catalog.Default().RequireUnit(99)
	tests := []struct {
		name      string
		err       error
		code      codes.Code
		reason    string
		localized string
	}{
		{
			name:      "unknown unit",
			err:       unknownUnit,
			code:      codes.InvalidArgument,
			reason:    string(apperrors.CodeUnknownUnit),
			localized: "Unit type 99 does not exist.",
		},
		{
			name:      "wrapped skill error",
			err:       fmt.Errorf("activate: %w", apperrors.New(apperrors.CodeSkillNotUnlocked, "locked")),
			code:      codes.FailedPrecondition,
			reason:    string(apperrors.CodeSkillNotUnlocked),
			localized: d.RejectionReason("en-US", apperrors.New(apperrors.CodeSkillNotUnlocked, "locked")),
		},
		{
			name:      "plain error",
			err:       errors.New("boom"),
			code:      codes.Internal,
			reason:    string(apperrors.CodeUnknown),
			localized: "An unexpected error occurred.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := status.Convert(d.RejectionStatus("en-US", tc.err))
			if st.Code() != tc.code {
				t.Fatalf("code = %v, want %v", st.Code(), tc.code)
			}
			var info *errdetails.ErrorInfo
			var localized *errdetails.LocalizedMessage
			for _, detail := range st.Details() {
				switch v := detail.(type) {
				case *errdetails.ErrorInfo:
					info = v
				case *errdetails.LocalizedMessage:
					localized = v
				}
			}
			if info == nil || info.GetReason() != tc.reason || info.GetDomain() != apperrors.Domain {
				t.Fatalf("error info = %v, want reason %s", info, tc.reason)
			}
			if localized == nil || localized.GetMessage() != tc.localized || localized.GetLocale() != "en-US" {
				t.Fatalf("localized message = %v, want %q", localized, tc.localized)
			}
		})
	}
	if d.RejectionStatus("en-US", nil) != nil {
		t.Fatal("nil error produced a status")
	}
}

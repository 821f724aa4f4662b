// Package i18n renders skills and rule rejections for players.
package i18n

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"strconv"

	"golang.org/x/text/message"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	errori18n "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors/i18n"
	i18ncatalog "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/i18n/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
)

// Describer renders localized skill text from a message bundle.
type Describer struct {
	bundle *i18ncatalog.Bundle
}

// NewDescriber returns a describer over bundle. A nil bundle uses the
// embedded catalogs.
func NewDescriber(bundle *i18ncatalog.Bundle) *Describer {
	if bundle == nil {
		bundle = i18ncatalog.Default()
	}
	return &Describer{bundle: bundle}
}

// SkillName returns the display name of s.
func (d *Describer) SkillName(locale string, s skill.Skill) string {
	return d.text(locale, "skill.name."+strconv.Itoa(int(s)))
}

// KindName returns the label of a skill table kind.
func (d *Describer) KindName(locale string, kind skill.Kind) string {
	if kind == skill.Power {
		return d.text(locale, "skill.kind.power")
	}
	return d.text(locale, "skill.kind.regular")
}

// DescribeSkill lists every effect of s for the given kind, one line each.
// Skills without an effect yield a single "no effect" line.
func (d *Describer) DescribeSkill(locale string, s skill.Skill, kind skill.Kind) []string {
	p := d.bundle.Printer(locale)
	var lines []string

	lines = append(lines, d.effectLines(locale, p, "skill.effect.attack", skill.AttackTable(s, kind))...)
	lines = append(lines, d.effectLines(locale, p, "skill.effect.defense", skill.DefenseTable(s, kind))...)

	cost := skill.CostTableOf(s, kind)
	if cost.Modifier != 0 {
		lines = append(lines, p.Sprintf("skill.effect.cost", int(cost.Modifier)))
	}
	for _, id := range sortedKeys(cost.Overrides) {
		lines = append(lines, p.Sprintf("skill.effect.unit_cost", d.unitName(locale, id), cost.Overrides[id]))
	}
	for _, id := range cost.Blocks {
		lines = append(lines, p.Sprintf("skill.effect.block_unit", d.unitName(locale, id)))
	}

	radius := skill.RadiusTable(s, kind)
	for _, id := range sortedKeys(radius.Movement) {
		line := p.Sprintf("skill.effect.radius", radius.Movement[id])
		lines = append(lines, p.Sprintf("skill.effect.scoped", line, d.movementName(locale, id)))
	}
	for _, id := range sortedKeys(radius.Units) {
		line := p.Sprintf("skill.effect.radius", radius.Units[id])
		lines = append(lines, p.Sprintf("skill.effect.scoped", line, d.unitName(locale, id)))
	}

	ranges := skill.RangeTable(s, kind)
	for _, id := range sortedKeys(ranges) {
		line := p.Sprintf("skill.effect.range", ranges[id].Min, ranges[id].Max)
		lines = append(lines, p.Sprintf("skill.effect.scoped", line, d.unitName(locale, id)))
	}

	for _, id := range skill.UnitUnlocksOf(s, kind) {
		lines = append(lines, p.Sprintf("skill.effect.unlock_unit", d.unitName(locale, id)))
	}
	if kind == skill.Regular {
		for _, id := range skill.BuildingUnlocksOf(s) {
			lines = append(lines, p.Sprintf("skill.effect.unlock_building", d.text(locale, "building.name."+strconv.Itoa(int(id)))))
		}
	}
	if v := skill.CounterAttackOf(s, kind); v != 0 {
		lines = append(lines, p.Sprintf("skill.effect.counter", int(v)))
	}
	if v := skill.PoisonOf(s, kind); v != 0 {
		lines = append(lines, p.Sprintf("skill.effect.poison", int(v)))
	}

	if len(lines) == 0 {
		return []string{d.text(locale, "skill.effect.none")}
	}
	return lines
}

func (d *Describer) effectLines(locale string, p *message.Printer, key string, table skill.EffectTable) []string {
	if table.Empty() {
		return nil
	}
	var lines []string
	if table.Flat != 0 {
		lines = append(lines, p.Sprintf(key, int(table.Flat)))
	}
	for _, id := range sortedKeys(table.Units) {
		lines = append(lines, p.Sprintf("skill.effect.scoped", p.Sprintf(key, int(table.Units[id])), d.unitName(locale, id)))
	}
	for _, id := range sortedKeys(table.Movement) {
		lines = append(lines, p.Sprintf("skill.effect.scoped", p.Sprintf(key, int(table.Movement[id])), d.movementName(locale, id)))
	}
	for _, effect := range table.Tiles {
		scope := d.text(locale, "tile.group."+strconv.Itoa(int(effect.Group)))
		if effect.Movement != 0 {
			scope = d.movementName(locale, effect.Movement) + ", " + scope
		}
		lines = append(lines, p.Sprintf("skill.effect.scoped", p.Sprintf(key, int(effect.Value)), scope))
	}
	if table.Leader != 0 {
		lines = append(lines, p.Sprintf("skill.effect.leader", p.Sprintf(key, int(table.Leader))))
	}
	return lines
}

// RejectionReason renders a rules error for players. Errors without a code
// fall back to the generic unknown message.
func (d *Describer) RejectionReason(locale string, err error) string {
	if err == nil {
		return ""
	}
	var metadata map[string]string
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		metadata = appErr.Metadata
	}
	return errori18n.GetCatalog(locale).Format(string(apperrors.CodeOf(err)), metadata)
}

// RejectionStatus converts a rules error into a gRPC status error carrying
// the domain code as ErrorInfo and the localized reason as LocalizedMessage.
// Errors without a domain code become Internal.
func (d *Describer) RejectionStatus(locale string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
	return appErr.ToGRPCStatus(locale, d.RejectionReason(locale, err))
}

func (d *Describer) unitName(locale string, id catalog.UnitID) string {
	return d.text(locale, "unit.name."+strconv.Itoa(int(id)))
}

func (d *Describer) movementName(locale string, id catalog.MovementTypeID) string {
	return d.text(locale, "movement.name."+strconv.Itoa(int(id)))
}

// text returns a plain message, falling back to the base locale and then to
// the key itself.
func (d *Describer) text(locale, key string) string {
	if msg, ok := d.bundle.Message(locale, key); ok {
		return msg
	}
	return key
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

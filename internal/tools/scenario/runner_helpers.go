package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/gamemap"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return ""
}

func readInt(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	return toInt(value)
}

func toInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func readFloat(args map[string]any, key string) (float64, bool) {
	switch typed := args[key].(type) {
	case int:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}

func optionalInt(args map[string]any, key string, fallback int) int {
	if value, ok := readInt(args, key); ok {
		return value
	}
	return fallback
}

func optionalString(args map[string]any, key, fallback string) string {
	if text := requiredString(args, key); text != "" {
		return text
	}
	return fallback
}

func optionalBool(args map[string]any, key string, fallback bool) bool {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
	}
	return fallback
}

// readVector accepts {x, y} sequences and {x = .., y = ..} tables.
func readVector(args map[string]any, key string) (gamemap.Vector, error) {
	switch typed := args[key].(type) {
	case []any:
		if len(typed) != 2 {
			return gamemap.Vector{}, fmt.Errorf("%s must have two coordinates", key)
		}
		x, okX := toInt(typed[0])
		y, okY := toInt(typed[1])
		if !okX || !okY {
			return gamemap.Vector{}, fmt.Errorf("%s coordinates must be integers", key)
		}
		return gamemap.Vec(x, y), nil
	case map[string]any:
		x, okX := readInt(typed, "x")
		y, okY := readInt(typed, "y")
		if !okX || !okY {
			return gamemap.Vector{}, fmt.Errorf("%s requires x and y", key)
		}
		return gamemap.Vec(x, y), nil
	case nil:
		return gamemap.Vector{}, fmt.Errorf("%s is required", key)
	default:
		return gamemap.Vector{}, fmt.Errorf("%s must be a table", key)
	}
}

// readPosition reads placement coordinates from x and y or from at.
func readPosition(args map[string]any) (gamemap.Vector, error) {
	if _, ok := args["at"]; ok {
		return readVector(args, "at")
	}
	x, okX := readInt(args, "x")
	y, okY := readInt(args, "y")
	if !okX || !okY {
		return gamemap.Vector{}, fmt.Errorf("x and y are required")
	}
	return gamemap.Vec(x, y), nil
}

func readSkills(args map[string]any, key string) (skill.Set, error) {
	value, ok := args[key]
	if !ok {
		return skill.Set{}, nil
	}
	list, ok := value.([]any)
	if !ok {
		if m, isMap := value.(map[string]any); isMap && len(m) == 0 {
			return skill.Set{}, nil
		}
		return skill.Set{}, fmt.Errorf("%s must be a list", key)
	}
	skills := make([]skill.Skill, 0, len(list))
	for _, item := range list {
		id, ok := toInt(item)
		if !ok || !skill.Skill(id).Valid() {
			return skill.Set{}, fmt.Errorf("%s: unknown skill %v", key, item)
		}
		skills = append(skills, skill.Skill(id))
	}
	return skill.NewSet(skills...), nil
}

// The resolvers accept a catalog ID or a case-insensitive name.

func resolveUnit(cat *catalog.Catalog, value any) (*catalog.UnitInfo, bool) {
	if id, ok := toInt(value); ok {
		return cat.Unit(catalog.UnitID(id))
	}
	name, _ := value.(string)
	for _, info := range cat.Units() {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return nil, false
}

func resolveBuilding(cat *catalog.Catalog, value any) (*catalog.BuildingInfo, bool) {
	if id, ok := toInt(value); ok {
		return cat.Building(catalog.BuildingID(id))
	}
	name, _ := value.(string)
	for _, info := range cat.Buildings() {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return nil, false
}

func resolveTile(cat *catalog.Catalog, value any) (*catalog.TileInfo, bool) {
	if id, ok := toInt(value); ok {
		return cat.Tile(catalog.TileID(id))
	}
	name, _ := value.(string)
	for _, info := range cat.Tiles() {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return nil, false
}

func formatCost(cost float64) string {
	if math.IsInf(cost, 1) {
		return "blocked"
	}
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

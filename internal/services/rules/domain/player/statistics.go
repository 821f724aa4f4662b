package player

import (
	"math"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
)

// Stat names one match statistics counter.
type Stat int

const (
	StatDamage Stat = iota + 1
	StatDestroyedUnits
	StatDestroyedBuildings
	StatCreatedUnits
	StatCreatedBuildings
	StatLostUnits
	StatLostBuildings
	StatOneShots
	StatCapturedUnits
	StatRescuedUnits
)

// Statistics holds match counters. Every counter is at least zero.
type Statistics struct {
	Damage             int `json:"d"`
	DestroyedUnits     int `json:"du"`
	DestroyedBuildings int `json:"db"`
	CreatedUnits       int `json:"cu"`
	CreatedBuildings   int `json:"cb"`
	LostUnits          int `json:"lu"`
	LostBuildings      int `json:"lb"`
	OneShots           int `json:"os"`
	CapturedUnits      int `json:"cpu"`
	RescuedUnits       int `json:"ru"`
}

func (s Statistics) modify(stat Stat, delta int) Statistics {
	switch stat {
	case StatDamage:
		s.Damage = max(0, saturatingAdd(s.Damage, delta))
	case StatDestroyedUnits:
		s.DestroyedUnits = max(0, saturatingAdd(s.DestroyedUnits, delta))
	case StatDestroyedBuildings:
		s.DestroyedBuildings = max(0, saturatingAdd(s.DestroyedBuildings, delta))
	case StatCreatedUnits:
		s.CreatedUnits = max(0, saturatingAdd(s.CreatedUnits, delta))
	case StatCreatedBuildings:
		s.CreatedBuildings = max(0, saturatingAdd(s.CreatedBuildings, delta))
	case StatLostUnits:
		s.LostUnits = max(0, saturatingAdd(s.LostUnits, delta))
	case StatLostBuildings:
		s.LostBuildings = max(0, saturatingAdd(s.LostBuildings, delta))
	case StatOneShots:
		s.OneShots = max(0, saturatingAdd(s.OneShots, delta))
	case StatCapturedUnits:
		s.CapturedUnits = max(0, saturatingAdd(s.CapturedUnits, delta))
	case StatRescuedUnits:
		s.RescuedUnits = max(0, saturatingAdd(s.RescuedUnits, delta))
	default:
		panic(apperrors.Unreachable("player.Statistics.modify", stat))
	}
	return s
}

func (s Statistics) clamp() Statistics {
	for _, stat := range []Stat{
		StatDamage, StatDestroyedUnits, StatDestroyedBuildings, StatCreatedUnits, StatCreatedBuildings,
		StatLostUnits, StatLostBuildings, StatOneShots, StatCapturedUnits, StatRescuedUnits,
	} {
		s = s.modify(stat, 0)
	}
	return s
}

// saturatingAdd returns a+b, stopping at the int bounds instead of wrapping.
func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

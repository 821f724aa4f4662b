package skill

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
)

func unitInfo(t *testing.T, id catalog.UnitID) *catalog.UnitInfo {
	t.Helper()
	info, ok := catalog.Default().Unit(id)
	if !ok {
		t.Fatalf("unknown unit %d", id)
	}
	return info
}

func tileInfo(t *testing.T, id catalog.TileID) *catalog.TileInfo {
	t.Helper()
	info, ok := catalog.Default().Tile(id)
	if !ok {
		t.Fatalf("unknown tile %d", id)
	}
	return info
}

func TestEveryDeclaredSkillIsClassified(t *testing.T) {
	for _, s := range All() {
		cfg := ConfigOf(s)
		if cfg.Charges <= 0 {
			t.Fatalf("skill %d charges = %d, want > 0", s, cfg.Charges)
		}
		if cfg.Group == 0 {
			t.Fatalf("skill %d has no group", s)
		}
		if CategoryOf(s) == 0 {
			t.Fatalf("skill %d has no category", s)
		}
	}
}

func TestUnknownSkillClassificationPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{name: "config", fn: func() { ConfigOf(Skill(999)) }},
		{name: "category", fn: func() { CategoryOf(Skill(0)) }},
		{name: "attack table kind", fn: func() { AttackTable(AttackIncreaseMinor, Kind(2)) }},
		{name: "defense table kind", fn: func() { DefenseTable(AttackIncreaseMinor, Kind(-1)) }},
		{name: "cost table kind", fn: func() { CostTableOf(AttackIncreaseMinor, Kind(2)) }},
		{name: "radius table kind", fn: func() { RadiusTable(AttackIncreaseMinor, Kind(2)) }},
		{name: "range table kind", fn: func() { RangeTable(AttackIncreaseMinor, Kind(2)) }},
		{name: "unit unlocks kind", fn: func() { UnitUnlocksOf(AttackIncreaseMinor, Kind(2)) }},
		{name: "counter attack kind", fn: func() { CounterAttackOf(AttackIncreaseMinor, Kind(2)) }},
		{name: "poison kind", fn: func() { PoisonOf(AttackIncreaseMinor, Kind(2)) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(*apperrors.Error)
				if !ok {
					t.Fatal("expected *apperrors.Error panic")
				}
				if err.Code != apperrors.CodeUnreachable {
					t.Fatalf("code = %v, want %v", err.Code, apperrors.CodeUnreachable)
				}
				if err.Metadata["Function"] == "" {
					t.Fatal("expected function metadata")
				}
			}()
			tc.fn()
		})
	}
}

func TestSetIsSortedAndDeduplicated(t *testing.T) {
	set := NewSet(LeaderAttackIncrease, AttackIncreaseMinor, LeaderAttackIncrease, BuyUnitCannon)
	want := []Skill{AttackIncreaseMinor, BuyUnitCannon, LeaderAttackIncrease}
	if got := set.Skills(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Skills() = %v, want %v", got, want)
	}
	if !set.Has(BuyUnitCannon) || set.Has(DefenseIncreaseMinor) {
		t.Fatal("unexpected membership")
	}
	added := set.Add(DefenseIncreaseMinor)
	if set.Has(DefenseIncreaseMinor) {
		t.Fatal("Add mutated the receiver")
	}
	if !added.Has(DefenseIncreaseMinor) || added.Len() != 4 {
		t.Fatalf("added = %v", added.Skills())
	}
	removed := added.Remove(AttackIncreaseMinor).Remove(BuyUnitCannon).Remove(LeaderAttackIncrease).Remove(DefenseIncreaseMinor)
	if removed.Len() != 0 || !removed.Equal(Set{}) {
		t.Fatalf("removed = %v, want empty", removed.Skills())
	}
	if !NewSet(BuyUnitCannon).SubsetOf(set) || set.SubsetOf(NewSet(BuyUnitCannon)) {
		t.Fatal("unexpected subset relation")
	}
	if got := set.Intersect(NewSet(BuyUnitCannon, UnlockPowerStation)); !got.Equal(NewSet(BuyUnitCannon)) {
		t.Fatalf("Intersect = %v", got.Skills())
	}
}

func TestSetJSON(t *testing.T) {
	set := NewSet(UnlockPowerStation, AttackIncreaseMinor)
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[1,18]" {
		t.Fatalf("json = %s, want [1,18]", data)
	}
	var decoded Set
	if err := json.Unmarshal([]byte("[18,1,18]"), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(set) {
		t.Fatalf("decoded = %v, want %v", decoded.Skills(), set.Skills())
	}
	empty, _ := json.Marshal(Set{})
	if string(empty) != "[]" {
		t.Fatalf("empty json = %s", empty)
	}
}

func TestAttackEffectCombinesTables(t *testing.T) {
	sniper := unitInfo(t, catalog.Sniper)
	forest := tileInfo(t, catalog.Forest)
	tests := []struct {
		name    string
		skills  Set
		active  Set
		subject Subject
		want    Percent
	}{
		{name: "no skills", want: 0},
		{name: "flat", skills: NewSet(AttackIncreaseMinor), want: 10},
		{name: "flat plus power", skills: NewSet(AttackIncreaseMinor), active: NewSet(AttackIncreaseMinor), want: 30},
		{
			name:    "tile bonus requires matching movement",
			skills:  NewSet(UnitInfantryForestAttackAndDefenseIncrease),
			subject: Subject{Unit: unitInfo(t, catalog.Jeep), Tile: forest},
			want:    0,
		},
		{
			name:    "tile bonus",
			skills:  NewSet(UnitInfantryForestAttackAndDefenseIncrease),
			subject: Subject{Unit: sniper, Tile: forest},
			want:    10,
		},
		{
			name:    "leader only for leaders",
			skills:  NewSet(LeaderAttackIncrease),
			subject: Subject{Unit: sniper},
			want:    0,
		},
		{
			name:    "leader",
			skills:  NewSet(LeaderAttackIncrease),
			active:  NewSet(LeaderAttackIncrease),
			subject: Subject{Unit: sniper, Leader: true},
			want:    45,
		},
		{
			name:    "unit specific power",
			skills:  NewSet(UnitAbilitySniperImmediateAction, AttackIncreaseMinor),
			active:  NewSet(UnitAbilitySniperImmediateAction),
			subject: Subject{Unit: sniper},
			want:    20,
		},
		{
			name:    "movement",
			skills:  NewSet(ShipIncreaseAttackAndRange),
			active:  NewSet(ShipIncreaseAttackAndRange),
			subject: Subject{Unit: unitInfo(t, catalog.Frigate)},
			want:    35,
		},
		{
			name:    "unknown skill is neutral",
			skills:  NewSet(Skill(500)),
			subject: Subject{Unit: sniper},
			want:    0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AttackEffect(tc.skills, tc.active, tc.subject); got != tc.want {
				t.Fatalf("AttackEffect = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDefenseEffect(t *testing.T) {
	jeep := unitInfo(t, catalog.Jeep)
	skills := NewSet(DefenseIncreaseMinor, MovementIncreaseGroundUnitDefenseDecrease)
	if got := DefenseEffect(skills, Set{}, Subject{Unit: jeep}); got != 0 {
		t.Fatalf("DefenseEffect = %d, want 0", got)
	}
	if got := DefenseEffect(skills, NewSet(DefenseIncreaseMinor), Subject{Unit: jeep}); got != 15 {
		t.Fatalf("DefenseEffect = %d, want 15", got)
	}
	if got := DefenseEffect(skills, Set{}, Subject{}); got != 10 {
		t.Fatalf("DefenseEffect without unit = %d, want 10", got)
	}
}

// partitions splits every declared skill into disjoint pairs (A, B) of
// varying sizes.
func partitions() [][2]Set {
	all := All()
	var out [][2]Set
	out = append(out, [2]Set{{}, {}})
	out = append(out, [2]Set{NewSet(all[0]), {}})
	out = append(out, [2]Set{NewSet(all[0]), NewSet(all[1])})
	out = append(out, [2]Set{NewSet(all[0], all[1]), NewSet(all[2], all[3])})
	var odd, even []Skill
	for i, s := range all {
		if i%2 == 0 {
			even = append(even, s)
		} else {
			odd = append(odd, s)
		}
	}
	out = append(out, [2]Set{NewSet(even...), NewSet(odd...)})
	out = append(out, [2]Set{NewSet(all[:3]...), NewSet(all[3:]...)})
	for i := range all {
		rest := append(append([]Skill(nil), all[:i]...), all[i+1:]...)
		out = append(out, [2]Set{NewSet(all[i]), NewSet(rest...)})
	}
	return out
}

func TestPercentModifiersAreAdditive(t *testing.T) {
	subjects := []Subject{
		{},
		{Unit: unitInfo(t, catalog.Infantry), Tile: tileInfo(t, catalog.Forest), Leader: true},
		{Unit: unitInfo(t, catalog.Frigate), Tile: tileInfo(t, catalog.Sea)},
		{Unit: unitInfo(t, catalog.Cannon)},
	}
	for _, pair := range partitions() {
		a, b := pair[0], pair[1]
		union := a.Union(b)
		for _, subject := range subjects {
			for _, activeFromUnion := range []bool{false, true} {
				var activeA, activeB, activeU Set
				if activeFromUnion {
					activeA, activeB, activeU = a, b, union
				}
				if got, want := AttackEffect(union, activeU, subject), AttackEffect(a, activeA, subject)+AttackEffect(b, activeB, subject); got != want {
					t.Fatalf("attack(%v ∪ %v) = %d, want %d", a.Skills(), b.Skills(), got, want)
				}
				if got, want := DefenseEffect(union, activeU, subject), DefenseEffect(a, activeA, subject)+DefenseEffect(b, activeB, subject); got != want {
					t.Fatalf("defense(%v ∪ %v) = %d, want %d", a.Skills(), b.Skills(), got, want)
				}
			}
		}
		if got, want := UnitCostModifier(union, union), UnitCostModifier(a, a)+UnitCostModifier(b, b); got != want {
			t.Fatalf("cost(%v ∪ %v) = %d, want %d", a.Skills(), b.Skills(), got, want)
		}
	}
}

func TestFastPathsMatchGeneralLoop(t *testing.T) {
	subject := Subject{Unit: unitInfo(t, catalog.Infantry), Tile: tileInfo(t, catalog.Forest), Leader: true}
	for _, s := range All() {
		set := NewSet(s)
		var loop Percent
		for _, member := range set.skills {
			loop += attackTables[Regular][member].value(subject)
		}
		if got := attackTables[Regular].sum(set, subject); got != loop {
			t.Fatalf("singleton %d = %d, loop = %d", s, got, loop)
		}
	}
}

func TestQueriesAreDeterministic(t *testing.T) {
	subject := Subject{Unit: unitInfo(t, catalog.Infantry), Tile: tileInfo(t, catalog.Forest), Leader: true}
	skills := NewSet(All()...)
	active := NewSet(AttackIncreaseMinor, LeaderAttackIncrease)
	first := AttackEffect(skills, active, subject)
	cost := UnitCost(unitInfo(t, catalog.Zombie), skills.Remove(BuyUnitBazookaBear), active)
	for i := 0; i < 50; i++ {
		if got := AttackEffect(skills, active, subject); got != first {
			t.Fatalf("AttackEffect changed: %d != %d", got, first)
		}
		if got := UnitCost(unitInfo(t, catalog.Zombie), skills.Remove(BuyUnitBazookaBear), active); got != cost {
			t.Fatalf("UnitCost changed: %v != %v", got, cost)
		}
	}
}

func TestMultiplier(t *testing.T) {
	if got := Multiplier(); got != 1 {
		t.Fatalf("Multiplier() = %v, want 1", got)
	}
	if got := Multiplier(10, -30, 5); got != 0.85 {
		t.Fatalf("Multiplier = %v, want 0.85", got)
	}
}

func TestUnitCost(t *testing.T) {
	infantry := unitInfo(t, catalog.Infantry)
	tests := []struct {
		name   string
		info   *catalog.UnitInfo
		skills Set
		active Set
		want   float64
	}{
		{name: "no skills", info: infantry, want: 200},
		{
			name:   "override with power modifier",
			info:   infantry,
			skills: NewSet(AttackAndDefenseDecreaseEasy, UnlockPowerStation),
			active: NewSet(UnlockPowerStation),
			want:   135,
		},
		{
			name:   "regular modifier",
			info:   unitInfo(t, catalog.Jet),
			skills: NewSet(DecreaseUnitCostAttackAndDefenseDecreaseMinor),
			want:   720,
		},
		{
			name:   "cheapest override wins",
			info:   unitInfo(t, catalog.Zombie),
			skills: NewSet(BuyUnitZombieDefenseDecreaseMajor),
			want:   250,
		},
		{
			name:   "rounding up",
			info:   unitInfo(t, catalog.Pioneer),
			skills: NewSet(DecreaseUnitCostAttackAndDefenseDecreaseMajor),
			active: NewSet(DecreaseUnitCostAttackAndDefenseDecreaseMajor),
			want:   105,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := UnitCost(tc.info, tc.skills, tc.active); got != tc.want {
				t.Fatalf("UnitCost = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUnitCostIsInfiniteWhenBlocked(t *testing.T) {
	rocket := unitInfo(t, catalog.RocketLauncher)
	favorable := NewSet(DecreaseUnitCostAttackAndDefenseDecreaseMajor, DecreaseUnitCostAttackAndDefenseDecreaseMinor, UnlockPowerStation)
	tests := []struct {
		skills Set
		active Set
	}{
		{skills: NewSet(BuyUnitBazookaBear)},
		{skills: favorable.Add(BuyUnitBazookaBear), active: favorable},
		{active: NewSet(BuyUnitBazookaBear)},
	}
	for _, tc := range tests {
		if got := UnitCost(rocket, tc.skills, tc.active); !math.IsInf(got, 1) {
			t.Fatalf("UnitCost(%v, %v) = %v, want +Inf", tc.skills.Skills(), tc.active.Skills(), got)
		}
		if CanBuildUnit(rocket, tc.skills, tc.active) {
			t.Fatal("blocked unit must not be buildable")
		}
	}
}

func TestBuildingCost(t *testing.T) {
	c := catalog.Default()
	hq, _ := c.Building(catalog.HQ)
	shelter, _ := c.Building(catalog.Shelter)
	house, _ := c.Building(catalog.House)
	power, _ := c.Building(catalog.PowerStation)
	tests := []struct {
		name   string
		info   *catalog.BuildingInfo
		skills Set
		want   float64
	}{
		{name: "hq ignores skills", info: hq, skills: NewSet(All()...), want: float64(hq.Cost)},
		{name: "free shelter", info: shelter, skills: NewSet(BuyUnitZombieDefenseDecreaseMajor), want: 0},
		{name: "shelter base", info: shelter, want: 500},
		{name: "override", info: house, skills: NewSet(HealVehiclesAttackDecrease), want: 80},
		{name: "no override", info: house, skills: NewSet(AttackIncreaseMinor), want: 100},
		{name: "power station", info: power, skills: NewSet(UnlockPowerStation), want: 1000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildingCost(tc.info, tc.skills); got != tc.want {
				t.Fatalf("BuildingCost = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUnitRange(t *testing.T) {
	artillery := unitInfo(t, catalog.Artillery)
	tests := []struct {
		name   string
		info   *catalog.UnitInfo
		skills Set
		active Set
		want   catalog.Range
		ok     bool
	}{
		{name: "catalog", info: artillery, want: catalog.Range{Min: 2, Max: 3}, ok: true},
		{name: "regular", info: artillery, skills: NewSet(ArtilleryRangeIncrease), want: catalog.Range{Min: 2, Max: 4}, ok: true},
		{name: "power first", info: artillery, skills: NewSet(ArtilleryRangeIncrease), active: NewSet(ArtilleryRangeIncrease), want: catalog.Range{Min: 2, Max: 5}, ok: true},
		{name: "power for direct unit", info: unitInfo(t, catalog.Frigate), active: NewSet(ShipIncreaseAttackAndRange), want: catalog.Range{Min: 1, Max: 2}, ok: true},
		{name: "direct unit", info: unitInfo(t, catalog.Infantry), skills: NewSet(ArtilleryRangeIncrease), ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := UnitRange(tc.info, tc.skills, tc.active)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("UnitRange = %v, %v, want %v, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestUnitRadius(t *testing.T) {
	jeep := unitInfo(t, catalog.Jeep)
	infantry := unitInfo(t, catalog.Infantry)
	bear := unitInfo(t, catalog.BazookaBear)
	skills := NewSet(MovementIncreaseGroundUnitDefenseDecrease, BuyUnitBazookaBear)
	tests := []struct {
		name   string
		info   *catalog.UnitInfo
		skills Set
		active Set
		want   int
	}{
		{name: "base", info: jeep, want: 6},
		{name: "regular", info: jeep, skills: skills, want: 7},
		{name: "power replaces regular", info: jeep, skills: skills, active: NewSet(MovementIncreaseGroundUnitDefenseDecrease), want: 8},
		{name: "regular misses infantry", info: infantry, skills: skills, want: 3},
		{name: "power infantry", info: infantry, skills: skills, active: NewSet(MovementIncreaseGroundUnitDefenseDecrease), want: 4},
		{name: "power bonuses add up", info: bear, skills: skills, active: skills, want: 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := UnitRadius(tc.info, tc.skills, tc.active); got != tc.want {
				t.Fatalf("UnitRadius = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestUnlocks(t *testing.T) {
	cannon := unitInfo(t, catalog.Cannon)
	bear := unitInfo(t, catalog.BazookaBear)
	if CanBuildUnit(cannon, Set{}, Set{}) {
		t.Fatal("cannon requires a skill")
	}
	if !CanBuildUnit(cannon, NewSet(BuyUnitCannon), Set{}) {
		t.Fatal("expected cannon unlock")
	}
	if !CanBuildUnit(bear, NewSet(AttackAndDefenseIncreaseHard), NewSet(AttackAndDefenseIncreaseHard)) {
		t.Fatal("expected power unlock")
	}
	if !CanBuildUnit(unitInfo(t, catalog.Infantry), Set{}, Set{}) {
		t.Fatal("infantry is buildable by default")
	}
	got := UnlockedUnits(NewSet(BuyUnitZombieDefenseDecreaseMajor, BuyUnitCannon), Set{})
	if !reflect.DeepEqual(got, []catalog.UnitID{catalog.Zombie, catalog.Cannon}) {
		t.Fatalf("UnlockedUnits = %v", got)
	}

	c := catalog.Default()
	shelter, _ := c.Building(catalog.Shelter)
	hq, _ := c.Building(catalog.HQ)
	house, _ := c.Building(catalog.House)
	if CanBuildBuilding(shelter, Set{}) || !CanBuildBuilding(shelter, NewSet(BuyUnitZombieDefenseDecreaseMajor)) {
		t.Fatal("unexpected shelter unlock")
	}
	if CanBuildBuilding(hq, NewSet(All()...)) {
		t.Fatal("HQ is never buildable")
	}
	if !CanBuildBuilding(house, Set{}) {
		t.Fatal("house is buildable by default")
	}
}

func TestHasAbilityGrants(t *testing.T) {
	sniper := unitInfo(t, catalog.Sniper)
	skills := NewSet(UnitAbilitySniperImmediateAction)
	if HasAbility(sniper, catalog.AbilityMoveAndAct, skills, Set{}) {
		t.Fatal("grant requires the power")
	}
	if !HasAbility(sniper, catalog.AbilityMoveAndAct, skills, skills) {
		t.Fatal("expected granted ability")
	}
	if !HasAbility(sniper, catalog.AbilityUnfold, Set{}, Set{}) {
		t.Fatal("expected catalog ability")
	}
}

func TestCombatModifiers(t *testing.T) {
	skills := NewSet(CounterAttackPower, PoisonDamageIncrease)
	if got := CounterAttackEffect(skills, Set{}); got != 10 {
		t.Fatalf("CounterAttackEffect = %d, want 10", got)
	}
	if got := CounterAttackEffect(skills, NewSet(CounterAttackPower)); got != 60 {
		t.Fatalf("CounterAttackEffect = %d, want 60", got)
	}
	if got := PoisonEffect(skills, skills); got != 70 {
		t.Fatalf("PoisonEffect = %d, want 70", got)
	}
}

func TestCrystalEffects(t *testing.T) {
	if CrystalAttack(CrystalPower) != 10 || CrystalAttack(CrystalCommand) != 0 || CrystalAttack(0) != 0 {
		t.Fatal("unexpected crystal attack")
	}
	if CrystalDefense(CrystalCommand) != 10 || CrystalDefense(CrystalSuper) != 15 {
		t.Fatal("unexpected crystal defense")
	}
}

func TestDescriptionTablesAreCopies(t *testing.T) {
	table := AttackTable(BuyUnitCannon, Power)
	table.Units[catalog.Cannon] = 999
	if AttackTable(BuyUnitCannon, Power).Units[catalog.Cannon] != 20 {
		t.Fatal("AttackTable leaked internal state")
	}
	if !DefenseTable(BuyUnitCannon, Regular).Empty() {
		t.Fatal("expected empty defense table")
	}
	cost := CostTableOf(BuyUnitBazookaBear, Regular)
	if cost.Overrides[catalog.BazookaBear] != 500 || len(cost.Blocks) != 1 {
		t.Fatalf("cost table = %+v", cost)
	}
	if !CostTableOf(BuyUnitBazookaBear, Power).Empty() {
		t.Fatal("power cost table should be empty")
	}
	if r := RangeTable(ArtilleryRangeIncrease, Regular); r[catalog.RocketLauncher] != (catalog.Range{Min: 3, Max: 6}) {
		t.Fatalf("range table = %v", r)
	}
	if RadiusTable(MovementIncreaseGroundUnitDefenseDecrease, Power).Movement[catalog.MoveSoldier] != 1 {
		t.Fatal("unexpected radius table")
	}
}

package skill

import (
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
)

var attackTables = [2]effectTables{
	Regular: {
		AttackIncreaseMinor:                           {Flat: 10},
		AttackIncreaseMajorDefenseDecreaseMinor:       {Flat: 20},
		DecreaseUnitCostAttackAndDefenseDecreaseMinor: {Flat: -5},
		DecreaseUnitCostAttackAndDefenseDecreaseMajor: {Flat: -15},
		AttackAndDefenseIncreaseHard:                  {Flat: 10},
		AttackAndDefenseDecreaseEasy:                  {Flat: -10},
		BuyUnitCannon:                                 {Units: map[catalog.UnitID]Percent{catalog.Cannon: 10}},
		ShipIncreaseAttackAndRange:                    {Movement: map[catalog.MovementTypeID]Percent{catalog.MoveShip: 10}},
		HealVehiclesAttackDecrease:                    {Movement: map[catalog.MovementTypeID]Percent{catalog.MoveTires: -5, catalog.MoveTread: -5}},
		UnitInfantryForestAttackAndDefenseIncrease: {Tiles: []TileEffect{
			{Group: catalog.GroupForest, Movement: catalog.MoveSoldier, Value: 10},
		}},
		LeaderAttackIncrease: {Leader: 15},
	},
	Power: {
		AttackIncreaseMinor:                           {Flat: 20},
		AttackIncreaseMajorDefenseDecreaseMinor:       {Flat: 20},
		DecreaseUnitCostAttackAndDefenseDecreaseMinor: {Flat: 10},
		AttackAndDefenseIncreaseHard:                  {Flat: 10},
		BuyUnitCannon:                                 {Units: map[catalog.UnitID]Percent{catalog.Cannon: 20}},
		BuyUnitBazookaBear:                            {Units: map[catalog.UnitID]Percent{catalog.BazookaBear: 25}},
		UnitAbilitySniperImmediateAction:              {Units: map[catalog.UnitID]Percent{catalog.Sniper: 10}},
		ShipIncreaseAttackAndRange:                    {Movement: map[catalog.MovementTypeID]Percent{catalog.MoveShip: 25}},
		HealVehiclesAttackDecrease:                    {Movement: map[catalog.MovementTypeID]Percent{catalog.MoveTires: 10, catalog.MoveTread: 10}},
		UnitInfantryForestAttackAndDefenseIncrease: {Tiles: []TileEffect{
			{Group: catalog.GroupForest, Movement: catalog.MoveSoldier, Value: 25},
		}},
		LeaderAttackIncrease: {Leader: 30},
	},
}

var defenseTables = [2]effectTables{
	Regular: {
		DefenseIncreaseMinor:                          {Flat: 10},
		AttackIncreaseMajorDefenseDecreaseMinor:       {Flat: -5},
		DecreaseUnitCostAttackAndDefenseDecreaseMinor: {Flat: -5},
		DecreaseUnitCostAttackAndDefenseDecreaseMajor: {Flat: -15},
		AttackAndDefenseIncreaseHard:                  {Flat: 10},
		AttackAndDefenseDecreaseEasy:                  {Flat: -10},
		BuyUnitZombieDefenseDecreaseMajor:             {Flat: -15},
		MovementIncreaseGroundUnitDefenseDecrease:     {Movement: map[catalog.MovementTypeID]Percent{catalog.MoveTires: -10, catalog.MoveTread: -10}},
		UnitInfantryForestAttackAndDefenseIncrease: {Tiles: []TileEffect{
			{Group: catalog.GroupForest, Movement: catalog.MoveSoldier, Value: 10},
		}},
		LeaderAttackIncrease: {Leader: 10},
	},
	Power: {
		DefenseIncreaseMinor:         {Flat: 15},
		AttackAndDefenseIncreaseHard: {Flat: 10},
		UnitInfantryForestAttackAndDefenseIncrease: {Tiles: []TileEffect{
			{Group: catalog.GroupForest, Movement: catalog.MoveSoldier, Value: 25},
		}},
		LeaderAttackIncrease: {Leader: 10},
	},
}

var costModifiers = [2]map[Skill]Percent{
	Regular: {
		DecreaseUnitCostAttackAndDefenseDecreaseMinor: -10,
		DecreaseUnitCostAttackAndDefenseDecreaseMajor: -20,
	},
	Power: {
		DecreaseUnitCostAttackAndDefenseDecreaseMajor: -10,
		UnlockPowerStation:                            -10,
	},
}

var unitCostOverrides = map[Skill]map[catalog.UnitID]int{
	BuyUnitCannon:                     {catalog.Cannon: 1200},
	BuyUnitZombieDefenseDecreaseMajor: {catalog.Zombie: 250},
	BuyUnitBazookaBear:                {catalog.BazookaBear: 500},
	AttackAndDefenseDecreaseEasy:      {catalog.Infantry: 150},
}

var unitBlocks = map[Skill][]catalog.UnitID{
	BuyUnitBazookaBear: {catalog.RocketLauncher},
}

var buildingCostOverrides = map[Skill]map[catalog.BuildingID]int{
	UnlockPowerStation:         {catalog.PowerStation: 1000},
	HealVehiclesAttackDecrease: {catalog.House: 80},
}

var rangeOverrides = [2]map[Skill]map[catalog.UnitID]catalog.Range{
	Regular: {
		ArtilleryRangeIncrease: {
			catalog.Artillery:      {Min: 2, Max: 4},
			catalog.RocketLauncher: {Min: 3, Max: 6},
		},
	},
	Power: {
		ArtilleryRangeIncrease:     {catalog.Artillery: {Min: 2, Max: 5}},
		ShipIncreaseAttackAndRange: {catalog.Frigate: {Min: 1, Max: 2}},
	},
}

// RadiusBonus is one skill's movement radius contribution.
type RadiusBonus struct {
	Movement map[catalog.MovementTypeID]int
	Units    map[catalog.UnitID]int
}

func (b RadiusBonus) value(info *catalog.UnitInfo) (int, bool) {
	movement, movementOK := b.Movement[info.Movement]
	unit, unitOK := b.Units[info.ID]
	return movement + unit, movementOK || unitOK
}

var radiusBonuses = [2]map[Skill]RadiusBonus{
	Regular: {
		MovementIncreaseGroundUnitDefenseDecrease: {Movement: map[catalog.MovementTypeID]int{catalog.MoveTires: 1, catalog.MoveTread: 1}},
	},
	Power: {
		MovementIncreaseGroundUnitDefenseDecrease: {Movement: map[catalog.MovementTypeID]int{
			catalog.MoveTires: 2, catalog.MoveTread: 2, catalog.MoveSoldier: 1,
		}},
		BuyUnitBazookaBear: {Units: map[catalog.UnitID]int{catalog.BazookaBear: 2}},
	},
}

var unitUnlocks = [2]map[Skill][]catalog.UnitID{
	Regular: {
		BuyUnitCannon:                     {catalog.Cannon},
		BuyUnitZombieDefenseDecreaseMajor: {catalog.Zombie},
		BuyUnitBazookaBear:                {catalog.BazookaBear},
	},
	Power: {
		AttackAndDefenseIncreaseHard: {catalog.BazookaBear},
	},
}

var buildingUnlocks = map[Skill][]catalog.BuildingID{
	BuyUnitZombieDefenseDecreaseMajor: {catalog.Shelter},
	UnlockPowerStation:                {catalog.PowerStation},
}

var abilityGrants = [2]map[Skill]map[catalog.UnitID][]catalog.Ability{
	Regular: {},
	Power: {
		UnitAbilitySniperImmediateAction: {catalog.Sniper: {catalog.AbilityMoveAndAct}},
	},
}

var counterAttackModifiers = [2]map[Skill]Percent{
	Regular: {CounterAttackPower: 10},
	Power:   {CounterAttackPower: 50},
}

var poisonModifiers = [2]map[Skill]Percent{
	Regular: {PoisonDamageIncrease: 20},
	Power:   {PoisonDamageIncrease: 50},
}

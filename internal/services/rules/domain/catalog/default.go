package catalog

// Movement types of the default content.
const (
	MoveSoldier MovementTypeID = iota + 1
	MoveTires
	MoveTread
	MoveAir
	MoveLowAltitude
	MoveShip
	MoveAmphibious
)

// Weapons of the default content.
const (
	WeaponRifle WeaponID = iota + 1
	WeaponSniperRifle
	WeaponBazooka
	WeaponHowitzer
	WeaponHeavyCannon
	WeaponHeavyMG
	WeaponAirToAir
	WeaponTorpedo
	WeaponBite
	WeaponCannonShot
	WeaponRocket
)

// Tiles of the default content.
const (
	Plain TileID = iota + 1
	Forest
	Mountain
	Street
	Sea
	Beach
)

// Units of the default content.
const (
	Pioneer UnitID = iota + 1
	Infantry
	Sniper
	Jeep
	TransportHelicopter
	Artillery
	HeavyTank
	Jet
	Frigate
	Zombie
	Cannon
	BazookaBear
	RocketLauncher
	APU
)

// Buildings of the default content.
const (
	HQ BuildingID = iota + 1
	Factory
	House
	Barracks
	Shelter
	ResearchLab
	Radar
	CrashedAirplane
	PowerStation
)

var defaultCatalog = mustNew(DefaultContent())

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

func mustNew(content Content) *Catalog {
	c, err := New(content)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultContent returns a fresh copy of the built-in content records.
func DefaultContent() Content {
	land := map[MovementTypeID]int{MoveSoldier: 1, MoveTires: 1, MoveTread: 1, MoveAir: 1, MoveLowAltitude: 1, MoveAmphibious: 1}
	return Content{
		MovementTypes: []MovementType{
			{ID: MoveSoldier, Name: "Soldier"},
			{ID: MoveTires, Name: "Tires"},
			{ID: MoveTread, Name: "Tread"},
			{ID: MoveAir, Name: "Air", Air: true},
			{ID: MoveLowAltitude, Name: "Low Altitude", Air: true},
			{ID: MoveShip, Name: "Ship"},
			{ID: MoveAmphibious, Name: "Amphibious"},
		},
		Weapons: []Weapon{
			{ID: WeaponRifle, Name: "Rifle", Damage: map[EntityType]int{
				TypeInfantry: 55, TypeAirInfantry: 45, TypeGround: 15, TypeArtillery: 25, TypeLowAltitude: 10, TypeAmphibious: 15,
			}},
			{ID: WeaponSniperRifle, Name: "Sniper Rifle", Supply: 6, Damage: map[EntityType]int{
				TypeInfantry: 95, TypeAirInfantry: 85, TypeGround: 20, TypeArtillery: 30, TypeAmphibious: 20,
			}},
			{ID: WeaponBazooka, Name: "Bazooka", Supply: 4, Damage: map[EntityType]int{
				TypeGround: 75, TypeArtillery: 80, TypeInfantry: 30, TypeAmphibious: 60, TypeShip: 35, TypeStructure: 40, TypeBuilding: 40,
			}},
			{ID: WeaponHowitzer, Name: "Howitzer", Supply: 5, Damage: map[EntityType]int{
				TypeInfantry: 90, TypeAirInfantry: 80, TypeGround: 80, TypeArtillery: 80, TypeAmphibious: 75, TypeShip: 65, TypeStructure: 50, TypeBuilding: 50,
			}},
			{ID: WeaponHeavyCannon, Name: "Heavy Cannon", Supply: 6, Damage: map[EntityType]int{
				TypeGround: 85, TypeArtillery: 90, TypeAmphibious: 80, TypeShip: 45, TypeInfantry: 40, TypeStructure: 55, TypeBuilding: 55,
			}},
			{ID: WeaponHeavyMG, Name: "Heavy MG", Damage: map[EntityType]int{
				TypeInfantry: 80, TypeAirInfantry: 70, TypeGround: 30, TypeArtillery: 40, TypeLowAltitude: 35, TypeAmphibious: 30,
			}},
			{ID: WeaponAirToAir, Name: "Air-to-Air Missile", Supply: 6, Damage: map[EntityType]int{
				TypeAir: 85, TypeLowAltitude: 100,
			}},
			{ID: WeaponTorpedo, Name: "Torpedo", Supply: 4, Damage: map[EntityType]int{
				TypeShip: 90, TypeAmphibious: 75,
			}},
			{ID: WeaponBite, Name: "Bite", Damage: map[EntityType]int{
				TypeInfantry: 60, TypeAirInfantry: 50, TypeGround: 25, TypeArtillery: 30, TypeAmphibious: 25,
			}},
			{ID: WeaponCannonShot, Name: "Cannon Shot", FlatDamage: true, Damage: map[EntityType]int{
				TypeInfantry: 35, TypeAirInfantry: 35, TypeGround: 35, TypeArtillery: 35, TypeAmphibious: 35, TypeShip: 35, TypeStructure: 35, TypeBuilding: 35,
			}},
			{ID: WeaponRocket, Name: "Rocket", Supply: 4, Damage: map[EntityType]int{
				TypeInfantry: 95, TypeAirInfantry: 95, TypeGround: 95, TypeArtillery: 95, TypeAmphibious: 90, TypeShip: 85, TypeStructure: 60, TypeBuilding: 60,
			}},
		},
		Tiles: []TileInfo{
			{ID: Plain, Name: "Plain", Group: GroupPlain, Cover: 10, Costs: land},
			{ID: Forest, Name: "Forest", Group: GroupForest, Cover: 30, Costs: map[MovementTypeID]int{
				MoveSoldier: 1, MoveTires: 3, MoveTread: 2, MoveAir: 1, MoveLowAltitude: 1, MoveAmphibious: 2,
			}},
			{ID: Mountain, Name: "Mountain", Group: GroupMountain, Cover: 40, Costs: map[MovementTypeID]int{
				MoveSoldier: 2, MoveAir: 1, MoveLowAltitude: 1,
			}},
			{ID: Street, Name: "Street", Group: GroupStreet, Cover: 0, Costs: land},
			{ID: Sea, Name: "Sea", Group: GroupSea, Cover: 0, Costs: map[MovementTypeID]int{
				MoveAir: 1, MoveLowAltitude: 1, MoveShip: 1, MoveAmphibious: 1,
			}},
			{ID: Beach, Name: "Beach", Group: GroupBeach, Cover: 5, Costs: map[MovementTypeID]int{
				MoveSoldier: 1, MoveTires: 2, MoveTread: 1, MoveAir: 1, MoveLowAltitude: 1, MoveShip: 2, MoveAmphibious: 1,
			}},
		},
		Units: []UnitInfo{
			{
				ID: Pioneer, Name: "Pioneer", Type: TypeInfantry, Movement: MoveSoldier,
				Cost: 150, Defense: 8, Fuel: 40, Vision: 2, Radius: 3,
				WeaponIDs: []WeaponID{WeaponRifle},
				Abilities: NewAbilities(AbilityCapture, AbilityCreateBuildings, AbilityCreateTracks, AbilityRescue, AbilityAccessBuildings),
				Buildable: true, LeaderName: 1,
			},
			{
				ID: Infantry, Name: "Infantry", Type: TypeInfantry, Movement: MoveSoldier,
				Cost: 200, Defense: 10, Fuel: 50, Vision: 2, Radius: 3,
				WeaponIDs: []WeaponID{WeaponRifle},
				Abilities: NewAbilities(AbilityCapture, AbilityAccessBuildings),
				Buildable: true, LeaderName: 1,
			},
			{
				ID: Sniper, Name: "Sniper", Type: TypeInfantry, Movement: MoveSoldier,
				Cost: 300, Defense: 8, Fuel: 40, Vision: 3, Radius: 3,
				WeaponIDs: []WeaponID{WeaponSniperRifle},
				Abilities: NewAbilities(AbilityCapture, AbilityUnfold, AbilityAccessBuildings),
				Buildable: true, LeaderName: 1,
			},
			{
				ID: Jeep, Name: "Jeep", Type: TypeGround, Movement: MoveTires,
				Cost: 300, Defense: 14, Fuel: 60, Vision: 3, Radius: 6,
				WeaponIDs: []WeaponID{WeaponHeavyMG},
				Abilities: NewAbilities(AbilitySupply, AbilityAccessBuildings),
				Transport: &TransportConfig{Limit: 1, Types: []EntityType{TypeInfantry}},
				Buildable: true, LeaderName: 2,
			},
			{
				ID: TransportHelicopter, Name: "Transport Helicopter", Type: TypeLowAltitude, Movement: MoveLowAltitude,
				Cost: 400, Defense: 12, Fuel: 50, Vision: 3, Radius: 6,
				Abilities: NewAbilities(AbilitySupply),
				Transport: &TransportConfig{Limit: 2, Types: []EntityType{TypeInfantry, TypeGround}},
				Buildable: true, LeaderName: 2,
			},
			{
				ID: Artillery, Name: "Artillery", Type: TypeArtillery, Movement: MoveTread,
				Cost: 450, Defense: 12, Fuel: 40, Vision: 2, Radius: 4,
				Range:     &Range{Min: 2, Max: 3},
				WeaponIDs: []WeaponID{WeaponHowitzer},
				Abilities: NewAbilities(AbilityHeavyEquipment),
				Buildable: true, LeaderName: 2,
			},
			{
				ID: HeavyTank, Name: "Heavy Tank", Type: TypeGround, Movement: MoveTread,
				Cost: 900, Defense: 30, Fuel: 40, Vision: 2, Radius: 3,
				WeaponIDs: []WeaponID{WeaponHeavyCannon, WeaponHeavyMG},
				Abilities: NewAbilities(AbilityHeavyEquipment),
				Buildable: true, LeaderName: 3,
			},
			{
				ID: Jet, Name: "Jet", Type: TypeAir, Movement: MoveAir,
				Cost: 800, Defense: 20, Fuel: 40, Vision: 4, Radius: 7,
				WeaponIDs: []WeaponID{WeaponAirToAir},
				Buildable: true, LeaderName: 3,
			},
			{
				ID: Frigate, Name: "Frigate", Type: TypeShip, Movement: MoveShip,
				Cost: 700, Defense: 22, Fuel: 50, Vision: 3, Radius: 5,
				WeaponIDs: []WeaponID{WeaponTorpedo, WeaponHeavyMG},
				Abilities: NewAbilities(AbilityHeal),
				Buildable: true, LeaderName: 3,
			},
			{
				ID: Zombie, Name: "Zombie", Type: TypeInfantry, Movement: MoveSoldier,
				Cost: 300, Defense: 8, Fuel: 30, Vision: 2, Radius: 3,
				WeaponIDs: []WeaponID{WeaponBite},
				Abilities: NewAbilities(AbilityCapture, AbilityAccessBuildings),
				LeaderName: 1,
			},
			{
				ID: Cannon, Name: "Cannon", Type: TypeArtillery, Movement: MoveTread,
				Cost: 1500, Defense: 20, Fuel: 20, Vision: 2, Radius: 2,
				Range:     &Range{Min: 2, Max: 5},
				WeaponIDs: []WeaponID{WeaponCannonShot},
				Abilities: NewAbilities(AbilityHeavyEquipment),
				LeaderName: 3,
			},
			{
				ID: BazookaBear, Name: "Bazooka Bear", Type: TypeInfantry, Movement: MoveSoldier,
				Cost: 600, Defense: 25, Fuel: 40, Vision: 2, Radius: 4,
				WeaponIDs: []WeaponID{WeaponBazooka},
				Abilities: NewAbilities(AbilityCapture, AbilityAccessBuildings, AbilitySabotage),
				LeaderName: 1,
			},
			{
				ID: RocketLauncher, Name: "Rocket Launcher", Type: TypeArtillery, Movement: MoveTires,
				Cost: 1000, Defense: 12, Fuel: 40, Vision: 2, Radius: 5,
				Range:     &Range{Min: 3, Max: 5},
				WeaponIDs: []WeaponID{WeaponRocket},
				Abilities: NewAbilities(AbilityHeavyEquipment),
				Buildable: true, LeaderName: 2,
			},
			{
				ID: APU, Name: "APU", Type: TypeGround, Movement: MoveTread,
				Cost: 600, Defense: 22, Fuel: 50, Vision: 2, Radius: 5,
				WeaponIDs: []WeaponID{WeaponHeavyMG},
				Abilities: NewAbilities(AbilityMoveAndAct),
				Buildable: true, LeaderName: 2,
			},
		},
		Buildings: []BuildingInfo{
			{
				ID: HQ, Name: "HQ", Type: TypeBuilding, Defense: 20,
				Behaviors: NewBehaviors(BehaviorCapturable, BehaviorBank, BehaviorHeal, BehaviorSupply, BehaviorCreateUnits),
				Units:     []UnitID{Pioneer, Infantry},
				HQ:        true, HQConversion: Barracks,
			},
			{
				ID: Factory, Name: "Factory", Type: TypeBuilding, Cost: 1000, Defense: 15,
				Behaviors: NewBehaviors(BehaviorCapturable, BehaviorBank, BehaviorHeal, BehaviorSupply, BehaviorCreateUnits),
				Units:     []UnitID{Jeep, TransportHelicopter, Artillery, HeavyTank, Jet, Frigate, Cannon, RocketLauncher, APU},
				Buildable: true,
			},
			{
				ID: House, Name: "House", Type: TypeBuilding, Cost: 100, Defense: 10,
				Behaviors: NewBehaviors(BehaviorCapturable, BehaviorBank, BehaviorHeal, BehaviorSupply),
				Buildable: true,
			},
			{
				ID: Barracks, Name: "Barracks", Type: TypeBuilding, Cost: 300, Defense: 15,
				Behaviors: NewBehaviors(BehaviorCapturable, BehaviorBank, BehaviorHeal, BehaviorCreateUnits),
				Units:     []UnitID{Pioneer, Infantry, Sniper, Zombie, BazookaBear},
				Buildable: true,
			},
			{
				ID: Shelter, Name: "Shelter", Type: TypeBuilding, Cost: 500, Defense: 20,
				Behaviors: NewBehaviors(BehaviorCapturable, BehaviorHeal),
			},
			{
				ID: ResearchLab, Name: "Research Lab", Type: TypeBuilding, Cost: 600, Defense: 15,
				Behaviors: NewBehaviors(BehaviorCapturable, BehaviorResearch),
				Buildable: true,
			},
			{
				ID: Radar, Name: "Radar", Type: TypeBuilding, Cost: 800, Defense: 10,
				Behaviors: NewBehaviors(BehaviorCapturable, BehaviorAura),
				Aura:      &Aura{Radius: 2, Attack: 10, Defense: 5},
				Buildable: true,
			},
			{
				ID: CrashedAirplane, Name: "Crashed Airplane", Type: TypeStructure, Defense: 5,
			},
			{
				ID: PowerStation, Name: "Power Station", Type: TypeBuilding, Cost: 1200, Defense: 15,
				Behaviors: NewBehaviors(BehaviorCapturable, BehaviorBank),
			},
		},
	}
}

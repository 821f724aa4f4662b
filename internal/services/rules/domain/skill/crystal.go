package skill

// Crystal is a campaign artifact that grants a flat combat bonus. The zero
// value means no crystal.
type Crystal int

const (
	CrystalPower Crystal = iota + 1
	CrystalHelp
	CrystalPhantom
	CrystalCommand
	CrystalMemory
	CrystalSuper
)

// CrystalAttack returns the attack bonus of c.
func CrystalAttack(c Crystal) Percent {
	switch c {
	case CrystalPower:
		return 10
	case CrystalSuper:
		return 15
	default:
		return 0
	}
}

// CrystalDefense returns the defense bonus of c.
func CrystalDefense(c Crystal) Percent {
	switch c {
	case CrystalCommand:
		return 10
	case CrystalSuper:
		return 15
	default:
		return 0
	}
}

package component

import "github.com/jakecoffman/cp"

// Arena bounds the player during the boss encounter. Formation ramps 0..1
// while forming and back to 0 when dissipating.
type Arena struct {
	Bounds      cp.BB
	Formation   float64
	Dissipating bool
}

var ArenaComponent = NewComponent[Arena]()

type PortalKind uint8

const (
	PortalContinue PortalKind = iota
	PortalMenu
)

func (k PortalKind) String() string {
	if k == PortalMenu {
		return "menu"
	}
	return "continue"
}

type Portal struct {
	Kind PortalKind
}

var PortalComponent = NewComponent[Portal]()

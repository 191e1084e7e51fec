package gear

import (
	"fmt"
	"time"
)

const (
	StatusActive      = "active"
	StatusInInventory = "in_inventory"
	StatusRetired     = "retired"
)

// A Component is a physical part (chain, cassette, tires) tracked across
// its whole life, including time spent off the bike. Mileage fields hold
// the gear's cumulative distance, not the component's own: wear during the
// current install is CurrentMileageKM - MileageAtInstallKM.
type Component struct {
	ID            string
	Name          string
	Brand         string
	Model         string
	Notes         string
	GearID        string
	Status        string
	PurchaseDate  *time.Time
	PurchasePrice float64
	InstalledAt   *time.Time
	RetiredAt     *time.Time
	// MileageAtInstallKM is the gear's cumulative distance when the
	// component went on. Reset on every install.
	MileageAtInstallKM float64
	// CurrentMileageKM is refreshed whenever usage is recomputed and
	// stamped a final time when the component comes off.
	CurrentMileageKM float64
}

// WearKM is the distance ridden during the current install.
func (c *Component) WearKM() float64 {
	return c.CurrentMileageKM - c.MileageAtInstallKM
}

// A ComponentSwap logs one leg of a component changing state on a piece of
// gear. The swap log is append-only.
type ComponentSwap struct {
	ID          string
	ComponentID string
	// OldComponentID links an install leg to the part it replaced. Empty
	// for first installs and for remove/retire legs.
	OldComponentID string
	GearID         string
	Action         string
	Date           time.Time
	// MileageKM is the gear's cumulative distance at swap time.
	MileageKM float64
}

const (
	SwapInstall = "install"
	SwapRemove  = "remove"
	SwapRetire  = "retire"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInInventory, StatusRetired:
		return true
	}
	return false
}

// CanTransition reports whether a component may move between two statuses.
// Retired is terminal.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) || from == to {
		return false
	}
	return from != StatusRetired
}

// Install marks the component active on the given gear and resets both
// mileage marks to the gear's cumulative distance.
func (c *Component) Install(gearID string, at time.Time, mileageKM float64) error {
	if c.Status == StatusRetired {
		return fmt.Errorf("%w: %s", ErrComponentRetired, c.ID)
	}
	if c.Status == StatusActive {
		return fmt.Errorf("component %s already installed on %s", c.ID, c.GearID)
	}
	c.Status = StatusActive
	c.GearID = gearID
	t := at
	c.InstalledAt = &t
	c.MileageAtInstallKM = mileageKM
	c.CurrentMileageKM = mileageKM
	return nil
}

// Remove moves an active component back to inventory, stamping its final
// mileage. The gear association is kept so history stays attributable.
func (c *Component) Remove(at time.Time, mileageKM float64) error {
	if c.Status == StatusRetired {
		return fmt.Errorf("%w: %s", ErrComponentRetired, c.ID)
	}
	if c.Status != StatusActive {
		return fmt.Errorf("%w: %s", ErrNotInstalled, c.ID)
	}
	c.Status = StatusInInventory
	c.InstalledAt = nil
	c.CurrentMileageKM = mileageKM
	return nil
}

// Retire permanently ends the component's service life.
func (c *Component) Retire(at time.Time, mileageKM float64) error {
	if c.Status == StatusRetired {
		return fmt.Errorf("%w: %s", ErrComponentRetired, c.ID)
	}
	c.Status = StatusRetired
	c.InstalledAt = nil
	c.CurrentMileageKM = mileageKM
	t := at
	c.RetiredAt = &t
	return nil
}

package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gearwear/internal/gear"
	"gearwear/internal/store"
)

// InstallComponent creates a new component directly in active state on the
// given gear, snapshotting the gear's cumulative distance as its starting
// mileage, and logs the install.
func (m *Monitor) InstallComponent(gearID, name, brand, model, notes string) (*gear.Component, error) {
	now := m.now()
	mileage, err := m.gearDistanceUpTo(gearID, now)
	if err != nil {
		return nil, err
	}

	t := now
	c := &gear.Component{
		ID:                 uuid.NewString(),
		Name:               name,
		Brand:              brand,
		Model:              model,
		Notes:              notes,
		GearID:             gearID,
		Status:             gear.StatusActive,
		InstalledAt:        &t,
		MileageAtInstallKM: mileage,
		CurrentMileageKM:   mileage,
	}
	if err := m.store.SaveComponent(c); err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}

	swap := &gear.ComponentSwap{
		ID:          uuid.NewString(),
		ComponentID: c.ID,
		GearID:      gearID,
		Action:      gear.SwapInstall,
		Date:        now,
		MileageKM:   mileage,
	}
	if err := m.store.ApplyComponentSwap(nil, []*gear.ComponentSwap{swap}); err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}

	m.log.WithField("component", c.Name).WithField("gear_id", gearID).Info("component installed")
	return c, nil
}

// SwapComponent takes a component off a piece of gear, to inventory or
// retirement depending on action, and optionally installs a replacement
// from inventory in its place. Everything is validated before anything is
// written, and the whole swap commits in one transaction, so the pair of
// components can never end up half swapped.
func (m *Monitor) SwapComponent(gearID, oldID, newID, action string) error {
	if action != gear.SwapRemove && action != gear.SwapRetire {
		return fmt.Errorf("%w: %q", gear.ErrInvalidSwapAction, action)
	}

	old, err := m.store.GetComponent(oldID)
	if err != nil {
		return err
	}
	if old.Status != gear.StatusActive {
		return fmt.Errorf("%w: %s", gear.ErrNotInstalled, old.ID)
	}
	if old.GearID != gearID {
		return fmt.Errorf("%w: %s is on %q", gear.ErrGearMismatch, old.ID, old.GearID)
	}

	var replacement *gear.Component
	if newID != "" {
		replacement, err = m.store.GetComponent(newID)
		if err != nil {
			return err
		}
		if replacement.Status == gear.StatusRetired {
			return fmt.Errorf("%w: %s", gear.ErrComponentRetired, replacement.ID)
		}
		if replacement.Status != gear.StatusInInventory {
			return fmt.Errorf("%w: %s", gear.ErrNotInInventory, replacement.ID)
		}
	}

	now := m.now()
	mileage, err := m.gearDistanceUpTo(gearID, now)
	if err != nil {
		return err
	}

	if action == gear.SwapRetire {
		err = old.Retire(now, mileage)
	} else {
		err = old.Remove(now, mileage)
	}
	if err != nil {
		return err
	}

	components := []*gear.Component{old}
	swaps := []*gear.ComponentSwap{{
		ID:          uuid.NewString(),
		ComponentID: old.ID,
		GearID:      gearID,
		Action:      action,
		Date:        now,
		MileageKM:   mileage,
	}}

	if replacement != nil {
		if err := replacement.Install(gearID, now, mileage); err != nil {
			return err
		}
		components = append(components, replacement)
		swaps = append(swaps, &gear.ComponentSwap{
			ID:             uuid.NewString(),
			ComponentID:    replacement.ID,
			OldComponentID: old.ID,
			GearID:         gearID,
			Action:         gear.SwapInstall,
			Date:           now,
			MileageKM:      mileage,
		})
	}

	if err := m.store.ApplyComponentSwap(components, swaps); err != nil {
		return fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}

	entry := m.log.WithField("out", old.Name).WithField("gear_id", gearID).WithField("action", action)
	if replacement != nil {
		entry = entry.WithField("in", replacement.Name)
	}
	entry.Info("component swapped")
	return nil
}

// ListComponents returns components filtered by status and/or gear; empty
// filters match everything.
func (m *Monitor) ListComponents(status, gearID string) ([]*gear.Component, error) {
	if status != "" && !gear.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", gear.ErrInvalidStatus, status)
	}
	return m.store.ListComponents(status, gearID)
}

// ComponentHistory returns the append-only swap log for one component.
func (m *Monitor) ComponentHistory(componentID string) ([]*gear.ComponentSwap, error) {
	if _, err := m.store.GetComponent(componentID); err != nil {
		if errors.Is(err, store.ErrComponentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	return m.store.ListComponentSwaps(componentID)
}

package scenario

import (
	"errors"
	"fmt"
)

// CurrentVersion is the scenario format written by this version.
const CurrentVersion = 3

// ErrUnknownVersion is returned for scenarios from a newer or invalid format.
var ErrUnknownVersion = errors.New("unknown scenario version")

const (
	defaultPanelEfficiency = 20.0
	defaultAutonomyDays    = 1.0
)

// Migrate upgrades s to CurrentVersion. It returns the migrated scenario and a
// boolean indicating if changes were made.
func Migrate(s Scenario) (Scenario, bool, error) {
	if s.Version < 0 || s.Version > CurrentVersion {
		return s, false, fmt.Errorf("%w: %d", ErrUnknownVersion, s.Version)
	}
	if s.Version == CurrentVersion {
		return s, false, nil
	}

	migrated := false
	for version := s.Version + 1; version <= CurrentVersion; version++ {
		switch version {
		case 1:
			// version 1: initial
			if s.PanelEfficiency == 0 {
				s.PanelEfficiency = defaultPanelEfficiency
				migrated = true
			}
			if s.BatteryBackup && s.AutonomyDays == 0 {
				s.AutonomyDays = defaultAutonomyDays
				migrated = true
			}
		case 2:
			// version 2: add system type
			if s.SystemType == "" {
				s.SystemType = OnGrid
				migrated = true
			}
			if s.SystemType.RequiresBattery() && !s.BatteryBackup {
				s.BatteryBackup = true
				if s.AutonomyDays == 0 {
					s.AutonomyDays = defaultAutonomyDays
				}
				migrated = true
			}
		case 3:
			// version 3: advanced efficiency is a percentage like panelEfficiency
			if a := s.Advanced; a != nil {
				ac := *a
				switch {
				case ac.Efficiency == 0:
					ac.Efficiency = s.PanelEfficiency
				case ac.Efficiency > 0 && ac.Efficiency <= 1:
					ac.Efficiency *= 100
				}
				if ac != *a {
					s.Advanced = &ac
					migrated = true
				}
			}
		default:
			return s, false, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
		}
	}
	s.Version = CurrentVersion

	return s, migrated, nil
}

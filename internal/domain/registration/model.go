package registration

import (
	"fmt"
	"time"
)

// Registration is one shooter's entry in one weapon class for a competition.
// A shooter registered in multiple classes arrives here as one row per class.
type Registration struct {
	ShooterID    string
	Name         string
	ClubID       string
	ClubName     string
	WeaponClass  string
	RegisteredAt time.Time
}

func (r Registration) Validate() error {
	if r.ShooterID == "" {
		return fmt.Errorf("registration shooter id is required")
	}
	if r.WeaponClass == "" {
		return fmt.Errorf("registration weapon class is required")
	}

	return nil
}

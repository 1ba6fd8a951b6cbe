package startlist

import (
	"fmt"
	"sort"
	"time"
)

// Editor operations mutate a configuration in place and re-establish the
// structural invariants before returning: contiguous shooter positions,
// per-team weapon-class sets and counts, and contiguous team numbering.
// Callers persist the configuration only after a successful return.

// AddShooter appends the shooter to the target team at the last position.
// A shooter identity may appear in at most one team per configuration.
func (c *Configuration) AddShooter(teamNumber int, shooter Shooter) error {
	target := c.team(teamNumber)
	if target == nil {
		return fmt.Errorf("%w: team=%d", ErrTeamNotFound, teamNumber)
	}
	if c.HasShooter(shooter.ShooterID) {
		return fmt.Errorf("%w: shooter=%s", ErrShooterExists, shooter.ShooterID)
	}

	target.Shooters = append(target.Shooters, shooter)
	target.normalize()

	return nil
}

// RemoveShooter removes the shooter from whichever team holds it and
// renumbers that team's remaining shooters in their existing relative order.
func (c *Configuration) RemoveShooter(shooterID string) error {
	teamIdx, slotIdx, ok := c.locateShooter(shooterID)
	if !ok {
		return fmt.Errorf("%w: shooter=%s", ErrShooterNotFound, shooterID)
	}

	team := &c.Teams[teamIdx]
	team.Shooters = append(team.Shooters[:slotIdx], team.Shooters[slotIdx+1:]...)
	team.normalize()

	return nil
}

// MoveShooterToTeam removes the shooter from its source team and appends it
// to the end of the target team. The target is never resorted.
func (c *Configuration) MoveShooterToTeam(shooterID string, targetTeamNumber int) error {
	teamIdx, slotIdx, ok := c.locateShooter(shooterID)
	if !ok {
		return fmt.Errorf("%w: shooter=%s", ErrShooterNotFound, shooterID)
	}

	target := c.team(targetTeamNumber)
	if target == nil {
		return fmt.Errorf("%w: team=%d", ErrTeamNotFound, targetTeamNumber)
	}

	source := &c.Teams[teamIdx]
	if source.Number == targetTeamNumber {
		return fmt.Errorf("%w: shooter=%s team=%d", ErrShooterInTeam, shooterID, targetTeamNumber)
	}

	moved := source.Shooters[slotIdx]
	source.Shooters = append(source.Shooters[:slotIdx], source.Shooters[slotIdx+1:]...)
	target.Shooters = append(target.Shooters, moved)

	source.normalize()
	target.normalize()

	return nil
}

// MoveShootersToTeam applies MoveShooterToTeam semantics per identity but
// skips identities that are missing or already in the target team, then
// repairs every touched team in one pass. It returns how many shooters
// actually moved.
func (c *Configuration) MoveShootersToTeam(shooterIDs []string, targetTeamNumber int) (int, error) {
	target := c.team(targetTeamNumber)
	if target == nil {
		return 0, fmt.Errorf("%w: team=%d", ErrTeamNotFound, targetTeamNumber)
	}

	touched := make(map[int]struct{})
	moved := 0
	for _, shooterID := range shooterIDs {
		teamIdx, slotIdx, ok := c.locateShooter(shooterID)
		if !ok || c.Teams[teamIdx].Number == targetTeamNumber {
			continue
		}

		source := &c.Teams[teamIdx]
		shooter := source.Shooters[slotIdx]
		source.Shooters = append(source.Shooters[:slotIdx], source.Shooters[slotIdx+1:]...)
		target.Shooters = append(target.Shooters, shooter)
		touched[teamIdx] = struct{}{}
		moved++
	}

	for teamIdx := range touched {
		c.Teams[teamIdx].normalize()
	}
	target.normalize()

	return moved, nil
}

// UpdateShooterWeaponClass changes the shooter's weapon class and refreshes
// the class set of the holding team only.
func (c *Configuration) UpdateShooterWeaponClass(shooterID, weaponClass string) error {
	teamIdx, slotIdx, ok := c.locateShooter(shooterID)
	if !ok {
		return fmt.Errorf("%w: shooter=%s", ErrShooterNotFound, shooterID)
	}

	c.Teams[teamIdx].Shooters[slotIdx].WeaponClass = weaponClass
	c.Teams[teamIdx].normalize()

	return nil
}

// CreateTeam appends an empty team numbered one past the current maximum
// and returns the assigned number.
func (c *Configuration) CreateTeam(startTime, endTime string) (int, error) {
	if _, err := time.Parse(clockLayout, startTime); err != nil {
		return 0, fmt.Errorf("start time %q is not HH:MM: %w", startTime, err)
	}
	if _, err := time.Parse(clockLayout, endTime); err != nil {
		return 0, fmt.Errorf("end time %q is not HH:MM: %w", endTime, err)
	}

	number := 0
	for _, team := range c.Teams {
		if team.Number > number {
			number = team.Number
		}
	}
	number++

	c.Teams = append(c.Teams, Team{
		Number:        number,
		StartTime:     startTime,
		EndTime:       endTime,
		WeaponClasses: []string{},
		Shooters:      []Shooter{},
	})

	return number, nil
}

// DeleteTeam removes an empty team and renumbers the remaining teams to a
// contiguous 1..N sequence by ascending original number. Shooter lists of
// the surviving teams are untouched.
func (c *Configuration) DeleteTeam(teamNumber int) error {
	idx := -1
	for i := range c.Teams {
		if c.Teams[i].Number == teamNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: team=%d", ErrTeamNotFound, teamNumber)
	}
	if len(c.Teams[idx].Shooters) > 0 {
		return fmt.Errorf("%w: team=%d", ErrTeamNotEmpty, teamNumber)
	}

	c.Teams = append(c.Teams[:idx], c.Teams[idx+1:]...)
	sort.SliceStable(c.Teams, func(i, j int) bool { return c.Teams[i].Number < c.Teams[j].Number })
	for i := range c.Teams {
		c.Teams[i].Number = i + 1
	}

	return nil
}

// UpdateTeamTimes overwrites one team's window. Other teams keep their
// times; the rolling clock only applies at generation.
func (c *Configuration) UpdateTeamTimes(teamNumber int, startTime, endTime string) error {
	if _, err := time.Parse(clockLayout, startTime); err != nil {
		return fmt.Errorf("start time %q is not HH:MM: %w", startTime, err)
	}
	if _, err := time.Parse(clockLayout, endTime); err != nil {
		return fmt.Errorf("end time %q is not HH:MM: %w", endTime, err)
	}

	team := c.team(teamNumber)
	if team == nil {
		return fmt.Errorf("%w: team=%d", ErrTeamNotFound, teamNumber)
	}

	team.StartTime = startTime
	team.EndTime = endTime

	return nil
}

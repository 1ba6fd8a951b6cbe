package startlist

import (
	"fmt"
	"sort"
	"time"
)

// Team formation policies.
const (
	FormatMixed      = "mixed"
	FormatSeparated  = "separated_by_class"
	FormatABCombined = "ab_combined"
	FormatBCCombined = "bc_combined"
)

// Member sort orders applied within a team.
const (
	SortByName       = "name"
	SortByClub       = "club"
	SortByClass      = "class"
	SortByRegistered = "registered"
)

const clockLayout = "15:04"

// Settings is the policy and parameters used to produce a configuration.
type Settings struct {
	Format             string
	MaxShootersPerTeam int
	StartInterval      int
	FirstStartTime     string
	MemberSortOrder    string
	ClassStartOrder    string
	GeneratedAt        time.Time
}

func (s Settings) Validate() error {
	switch s.Format {
	case FormatMixed, FormatSeparated, FormatABCombined, FormatBCCombined:
	default:
		return fmt.Errorf("unknown team format %q", s.Format)
	}
	if s.MaxShootersPerTeam < 1 {
		return fmt.Errorf("max shooters per team must be >= 1, got %d", s.MaxShootersPerTeam)
	}
	if s.StartInterval < 0 {
		return fmt.Errorf("start interval must be >= 0 minutes, got %d", s.StartInterval)
	}
	if _, err := time.Parse(clockLayout, s.FirstStartTime); err != nil {
		return fmt.Errorf("first start time %q is not HH:MM: %w", s.FirstStartTime, err)
	}

	return nil
}

// Shooter is a team member. Position is 1-based and unique within the team.
type Shooter struct {
	Position    int
	ShooterID   string
	Name        string
	Club        string
	WeaponClass string
}

// Team is one scheduled shooting relay.
type Team struct {
	Number        int
	StartTime     string
	EndTime       string
	ShooterCount  int
	WeaponClasses []string
	Shooters      []Shooter
}

// normalize re-establishes the team's derived fields: contiguous 1..N
// positions in the current relative order, the shooter count, and the
// sorted distinct weapon-class set.
func (t *Team) normalize() {
	classes := make([]string, 0, len(t.Shooters))
	seen := make(map[string]struct{}, len(t.Shooters))
	for i := range t.Shooters {
		t.Shooters[i].Position = i + 1
		class := t.Shooters[i].WeaponClass
		if _, ok := seen[class]; !ok && class != "" {
			seen[class] = struct{}{}
			classes = append(classes, class)
		}
	}
	sort.Strings(classes)

	t.ShooterCount = len(t.Shooters)
	t.WeaponClasses = classes
}

// Configuration is the aggregate root: settings plus the ordered team list.
// It belongs to exactly one competition; at most one configuration per
// competition carries the official flag.
type Configuration struct {
	ID            string
	CompetitionID string
	IsOfficial    bool
	Settings      Settings
	Teams         []Team
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c Configuration) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("start list id is required")
	}
	if c.CompetitionID == "" {
		return fmt.Errorf("start list competition id is required")
	}

	return nil
}

// Clone returns a deep copy so in-memory stores and callers never share
// team or shooter slices with the aggregate they hand out.
func (c Configuration) Clone() Configuration {
	out := c
	out.Teams = make([]Team, len(c.Teams))
	for i, team := range c.Teams {
		copied := team
		copied.Shooters = append([]Shooter(nil), team.Shooters...)
		copied.WeaponClasses = append([]string(nil), team.WeaponClasses...)
		out.Teams[i] = copied
	}

	return out
}

func (c *Configuration) team(number int) *Team {
	for i := range c.Teams {
		if c.Teams[i].Number == number {
			return &c.Teams[i]
		}
	}

	return nil
}

// locateShooter returns the indexes of the team and slot holding the
// shooter identity, or ok=false when it is not in the configuration.
func (c *Configuration) locateShooter(shooterID string) (teamIdx, slotIdx int, ok bool) {
	for ti := range c.Teams {
		for si := range c.Teams[ti].Shooters {
			if c.Teams[ti].Shooters[si].ShooterID == shooterID {
				return ti, si, true
			}
		}
	}

	return 0, 0, false
}

// HasShooter reports whether the identity appears anywhere on the list.
func (c *Configuration) HasShooter(shooterID string) bool {
	_, _, ok := c.locateShooter(shooterID)
	return ok
}

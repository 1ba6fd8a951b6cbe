package startlist

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/feltskyting/startlist/internal/domain/registration"
)

// Bucket consumption order used when no class start order is configured.
var defaultClassOrder = []string{"A", "B", "C", "R", "M", "L"}

// Generate partitions the class-expanded registration list into numbered,
// time-boxed teams under the configured formation policy. It is a pure
// transform: deterministic for a given input, no side effects. An empty
// registration list yields a configuration with zero teams.
func Generate(regs []registration.Registration, settings Settings) (Configuration, error) {
	if err := settings.Validate(); err != nil {
		return Configuration{}, err
	}

	pool := append([]registration.Registration(nil), regs...)

	var groups [][]registration.Registration
	switch settings.Format {
	case FormatMixed:
		groups = mixedGroups(pool, settings)
	case FormatSeparated:
		groups = separatedGroups(pool, settings)
	case FormatABCombined:
		groups = combinedGroups(pool, settings, "AB")
	case FormatBCCombined:
		groups = combinedGroups(pool, settings, "BC")
	}

	return assemble(groups, settings)
}

// mixedGroups pools every registration together, sorts once by the member
// sort order and slices the result into consecutive teams.
func mixedGroups(pool []registration.Registration, settings Settings) [][]registration.Registration {
	sortByMemberOrder(pool, settings.MemberSortOrder)
	return chunkTeams(pool, settings.MaxShootersPerTeam)
}

// separatedGroups buckets registrations by weapon-class prefix and consumes
// the buckets class by class. A partial team at the end of one class never
// absorbs shooters from the next class.
func separatedGroups(pool []registration.Registration, settings Settings) [][]registration.Registration {
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].WeaponClass != pool[j].WeaponClass {
			return pool[i].WeaponClass < pool[j].WeaponClass
		}
		return pool[i].Name < pool[j].Name
	})

	buckets := make(map[string][]registration.Registration)
	for _, reg := range pool {
		key := classPrefix(reg.WeaponClass)
		buckets[key] = append(buckets[key], reg)
	}

	var groups [][]registration.Registration
	for _, key := range bucketOrder(buckets, parseClassOrder(settings.ClassStartOrder)) {
		for _, chunk := range chunkTeams(buckets[key], settings.MaxShootersPerTeam) {
			sortByMemberOrder(chunk, settings.MemberSortOrder)
			groups = append(groups, chunk)
		}
	}

	return groups
}

// combinedGroups orders the pool by class start order, splits it into the
// leading prefix group and the remainder, and emits the leading group's
// teams first. Team numbering and the clock continue across the boundary.
// Classes outside both named groups travel at the end of the second group
// so no registration is ever dropped.
func combinedGroups(pool []registration.Registration, settings Settings, leadingPrefixes string) [][]registration.Registration {
	order := parseClassOrder(settings.ClassStartOrder)
	sortByMemberOrder(pool, settings.MemberSortOrder)
	sort.SliceStable(pool, func(i, j int) bool {
		pi := classPrefix(pool[i].WeaponClass)
		pj := classPrefix(pool[j].WeaponClass)
		ri := classRank(pi, order)
		rj := classRank(pj, order)
		if ri != rj {
			return ri < rj
		}
		if ri == len(order) {
			return pi < pj
		}
		return false
	})

	var leading, trailing []registration.Registration
	for _, reg := range pool {
		prefix := classPrefix(reg.WeaponClass)
		if prefix != "" && strings.Contains(leadingPrefixes, prefix) {
			leading = append(leading, reg)
		} else {
			trailing = append(trailing, reg)
		}
	}

	groups := chunkTeams(leading, settings.MaxShootersPerTeam)
	return append(groups, chunkTeams(trailing, settings.MaxShootersPerTeam)...)
}

// chunkTeams slices an ordered pool into teams of at most max shooters.
// A registration whose shooter already sits in the team under construction
// is deferred to a later team instead of being dropped, so one shooter is
// never listed twice within the same team while every registration keeps
// exactly one slot.
func chunkTeams(pool []registration.Registration, max int) [][]registration.Registration {
	var teams [][]registration.Registration
	pending := pool
	for len(pending) > 0 {
		team := make([]registration.Registration, 0, max)
		var deferred []registration.Registration
		seen := make(map[string]struct{}, max)
		for _, reg := range pending {
			if len(team) < max {
				if _, dup := seen[reg.ShooterID]; !dup {
					seen[reg.ShooterID] = struct{}{}
					team = append(team, reg)
					continue
				}
			}
			deferred = append(deferred, reg)
		}
		teams = append(teams, team)
		pending = deferred
	}

	return teams
}

// assemble turns ordered team-sized groups into the final configuration:
// sequential 1-based numbering over non-empty groups, a rolling clock where
// each team starts when the previous one ends, and normalized per-team
// derived fields.
func assemble(groups [][]registration.Registration, settings Settings) (Configuration, error) {
	first, err := time.Parse(clockLayout, settings.FirstStartTime)
	if err != nil {
		return Configuration{}, fmt.Errorf("parse first start time: %w", err)
	}

	cfg := Configuration{Settings: settings}
	interval := time.Duration(settings.StartInterval) * time.Minute
	start := first
	number := 0
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		number++
		end := start.Add(interval)
		team := Team{
			Number:    number,
			StartTime: start.Format(clockLayout),
			EndTime:   end.Format(clockLayout),
			Shooters:  make([]Shooter, 0, len(group)),
		}
		for _, reg := range group {
			team.Shooters = append(team.Shooters, Shooter{
				ShooterID:   reg.ShooterID,
				Name:        reg.Name,
				Club:        reg.ClubName,
				WeaponClass: reg.WeaponClass,
			})
		}
		team.normalize()
		cfg.Teams = append(cfg.Teams, team)
		start = end
	}

	return cfg, nil
}

func sortByMemberOrder(regs []registration.Registration, order string) {
	sort.SliceStable(regs, func(i, j int) bool {
		a, b := regs[i], regs[j]
		switch order {
		case SortByClub:
			if a.ClubName != b.ClubName {
				return a.ClubName < b.ClubName
			}
			return a.Name < b.Name
		case SortByClass:
			if a.WeaponClass != b.WeaponClass {
				return a.WeaponClass < b.WeaponClass
			}
			return a.Name < b.Name
		case SortByRegistered:
			if !a.RegisteredAt.Equal(b.RegisteredAt) {
				return a.RegisteredAt.Before(b.RegisteredAt)
			}
			return a.Name < b.Name
		default:
			return a.Name < b.Name
		}
	})
}

// parseClassOrder reads the organizer's comma-separated, case-insensitive
// class prefix list. An empty order falls back to the default A-B-C-R-M-L
// consumption order.
func parseClassOrder(raw string) []string {
	var order []string
	seen := make(map[string]struct{})
	for _, token := range strings.Split(raw, ",") {
		token = strings.ToUpper(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		prefix := token[:1]
		if _, dup := seen[prefix]; dup {
			continue
		}
		seen[prefix] = struct{}{}
		order = append(order, prefix)
	}
	if len(order) == 0 {
		return defaultClassOrder
	}

	return order
}

// bucketOrder yields the bucket keys to consume: ordered prefixes that are
// present first, then any remaining prefixes in ascending order.
func bucketOrder(buckets map[string][]registration.Registration, order []string) []string {
	used := make(map[string]struct{}, len(order))
	var keys []string
	for _, prefix := range order {
		if _, ok := buckets[prefix]; ok {
			keys = append(keys, prefix)
			used[prefix] = struct{}{}
		}
	}

	var rest []string
	for key := range buckets {
		if _, ok := used[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

func classRank(prefix string, order []string) int {
	for i, candidate := range order {
		if candidate == prefix {
			return i
		}
	}

	return len(order)
}

func classPrefix(weaponClass string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(weaponClass))
	if trimmed == "" {
		return ""
	}

	return trimmed[:1]
}

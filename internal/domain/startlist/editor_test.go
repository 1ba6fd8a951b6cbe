package startlist

import (
	"errors"
	"testing"
)

func editorFixture(t *testing.T) Configuration {
	t.Helper()

	cfg, err := Generate(nil, testSettings(FormatMixed, 5))
	if err != nil {
		t.Fatalf("generate fixture failed: %v", err)
	}
	cfg.ID = "sl-1"
	cfg.CompetitionID = "comp-1"

	if _, err := cfg.CreateTeam("09:00", "10:00"); err != nil {
		t.Fatalf("create team 1 failed: %v", err)
	}
	if _, err := cfg.CreateTeam("10:00", "11:00"); err != nil {
		t.Fatalf("create team 2 failed: %v", err)
	}

	shooters := []Shooter{
		{ShooterID: "s1", Name: "Anna", Club: "Moen", WeaponClass: "A"},
		{ShooterID: "s2", Name: "Bjarne", Club: "Lia", WeaponClass: "B"},
		{ShooterID: "s3", Name: "Cato", Club: "Voll", WeaponClass: "C"},
	}
	for _, shooter := range shooters {
		if err := cfg.AddShooter(1, shooter); err != nil {
			t.Fatalf("add shooter %s failed: %v", shooter.ShooterID, err)
		}
	}

	return cfg
}

func TestConfiguration_AddShooterAppendsAtLastPosition(t *testing.T) {
	cfg := editorFixture(t)

	if err := cfg.AddShooter(2, Shooter{ShooterID: "s4", Name: "Dina", WeaponClass: "A"}); err != nil {
		t.Fatalf("add shooter failed: %v", err)
	}

	team := cfg.Teams[1]
	if team.ShooterCount != 1 || team.Shooters[0].Position != 1 {
		t.Fatalf("expected s4 at position 1 of team 2, got %+v", team)
	}
	if len(team.WeaponClasses) != 1 || team.WeaponClasses[0] != "A" {
		t.Fatalf("expected weapon classes [A], got %v", team.WeaponClasses)
	}
}

func TestConfiguration_AddShooterRejectsDuplicateAnywhere(t *testing.T) {
	cfg := editorFixture(t)

	err := cfg.AddShooter(2, Shooter{ShooterID: "s1", Name: "Anna", WeaponClass: "A"})
	if !errors.Is(err, ErrShooterExists) {
		t.Fatalf("expected ErrShooterExists, got %v", err)
	}
	if cfg.Teams[1].ShooterCount != 0 {
		t.Fatalf("expected team 2 unchanged, got %+v", cfg.Teams[1])
	}
}

func TestConfiguration_AddShooterUnknownTeam(t *testing.T) {
	cfg := editorFixture(t)

	err := cfg.AddShooter(9, Shooter{ShooterID: "s9", Name: "Nils"})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestConfiguration_RemoveShooterRenumbersRemainder(t *testing.T) {
	cfg := editorFixture(t)

	if err := cfg.RemoveShooter("s2"); err != nil {
		t.Fatalf("remove shooter failed: %v", err)
	}

	team := cfg.Teams[0]
	if team.ShooterCount != 2 {
		t.Fatalf("expected 2 shooters, got %d", team.ShooterCount)
	}
	if team.Shooters[0].ShooterID != "s1" || team.Shooters[0].Position != 1 {
		t.Fatalf("expected s1 at position 1, got %+v", team.Shooters[0])
	}
	if team.Shooters[1].ShooterID != "s3" || team.Shooters[1].Position != 2 {
		t.Fatalf("expected s3 at position 2, got %+v", team.Shooters[1])
	}
	if len(team.WeaponClasses) != 2 || team.WeaponClasses[0] != "A" || team.WeaponClasses[1] != "C" {
		t.Fatalf("expected weapon classes [A C], got %v", team.WeaponClasses)
	}

	if err := cfg.RemoveShooter("s2"); !errors.Is(err, ErrShooterNotFound) {
		t.Fatalf("expected ErrShooterNotFound on second removal, got %v", err)
	}
}

func TestConfiguration_MoveShooterToTeam(t *testing.T) {
	cfg := editorFixture(t)

	if err := cfg.MoveShooterToTeam("s2", 2); err != nil {
		t.Fatalf("move shooter failed: %v", err)
	}

	source := cfg.Teams[0]
	if source.ShooterCount != 2 || source.Shooters[1].ShooterID != "s3" || source.Shooters[1].Position != 2 {
		t.Fatalf("expected source renumbered after move, got %+v", source)
	}

	target := cfg.Teams[1]
	if target.ShooterCount != 1 || target.Shooters[0].ShooterID != "s2" || target.Shooters[0].Position != 1 {
		t.Fatalf("expected s2 appended to target, got %+v", target)
	}
	if len(target.WeaponClasses) != 1 || target.WeaponClasses[0] != "B" {
		t.Fatalf("expected target classes [B], got %v", target.WeaponClasses)
	}

	if err := cfg.MoveShooterToTeam("s2", 2); !errors.Is(err, ErrShooterInTeam) {
		t.Fatalf("expected ErrShooterInTeam, got %v", err)
	}
	if err := cfg.MoveShooterToTeam("nope", 2); !errors.Is(err, ErrShooterNotFound) {
		t.Fatalf("expected ErrShooterNotFound, got %v", err)
	}
	if err := cfg.MoveShooterToTeam("s1", 7); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestConfiguration_MoveShootersToTeamSkipsAndCounts(t *testing.T) {
	cfg := editorFixture(t)

	if err := cfg.AddShooter(2, Shooter{ShooterID: "s4", Name: "Dina", WeaponClass: "A"}); err != nil {
		t.Fatalf("add shooter failed: %v", err)
	}

	// s4 is already in the target, "ghost" does not exist: both are skipped.
	moved, err := cfg.MoveShootersToTeam([]string{"s1", "ghost", "s4", "s3"}, 2)
	if err != nil {
		t.Fatalf("bulk move failed: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected 2 moved, got %d", moved)
	}

	source := cfg.Teams[0]
	if source.ShooterCount != 1 || source.Shooters[0].ShooterID != "s2" || source.Shooters[0].Position != 1 {
		t.Fatalf("expected only s2 left in team 1, got %+v", source)
	}

	target := cfg.Teams[1]
	if target.ShooterCount != 3 {
		t.Fatalf("expected 3 shooters in target, got %d", target.ShooterCount)
	}
	for i, shooter := range target.Shooters {
		if shooter.Position != i+1 {
			t.Fatalf("expected contiguous target positions, got %+v", target.Shooters)
		}
	}

	if _, err := cfg.MoveShootersToTeam([]string{"s1"}, 42); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound for missing target, got %v", err)
	}
}

func TestConfiguration_UpdateShooterWeaponClass(t *testing.T) {
	cfg := editorFixture(t)

	if err := cfg.UpdateShooterWeaponClass("s2", "R"); err != nil {
		t.Fatalf("update weapon class failed: %v", err)
	}

	team := cfg.Teams[0]
	if team.Shooters[1].WeaponClass != "R" {
		t.Fatalf("expected s2 in class R, got %+v", team.Shooters[1])
	}
	if len(team.WeaponClasses) != 3 || team.WeaponClasses[0] != "A" || team.WeaponClasses[1] != "C" || team.WeaponClasses[2] != "R" {
		t.Fatalf("expected classes [A C R], got %v", team.WeaponClasses)
	}

	if err := cfg.UpdateShooterWeaponClass("ghost", "A"); !errors.Is(err, ErrShooterNotFound) {
		t.Fatalf("expected ErrShooterNotFound, got %v", err)
	}
}

func TestConfiguration_CreateTeamNumbersPastMax(t *testing.T) {
	cfg := Configuration{ID: "sl-1", CompetitionID: "comp-1"}

	number, err := cfg.CreateTeam("09:00", "09:45")
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	if number != 1 {
		t.Fatalf("expected first team number 1, got %d", number)
	}

	number, err = cfg.CreateTeam("09:45", "10:30")
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	if number != 2 {
		t.Fatalf("expected second team number 2, got %d", number)
	}

	if _, err := cfg.CreateTeam("morning", "10:00"); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}

func TestConfiguration_DeleteTeamRenumbersSurvivors(t *testing.T) {
	cfg := editorFixture(t)
	if _, err := cfg.CreateTeam("11:00", "12:00"); err != nil {
		t.Fatalf("create team 3 failed: %v", err)
	}
	if err := cfg.AddShooter(3, Shooter{ShooterID: "s5", Name: "Even", WeaponClass: "B"}); err != nil {
		t.Fatalf("add shooter failed: %v", err)
	}

	if err := cfg.DeleteTeam(2); err != nil {
		t.Fatalf("delete empty team failed: %v", err)
	}

	if len(cfg.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(cfg.Teams))
	}
	if cfg.Teams[0].Number != 1 || cfg.Teams[1].Number != 2 {
		t.Fatalf("expected renumbered teams 1,2, got %d,%d", cfg.Teams[0].Number, cfg.Teams[1].Number)
	}
	if cfg.Teams[1].Shooters[0].ShooterID != "s5" {
		t.Fatalf("expected former team 3 shooters untouched, got %+v", cfg.Teams[1].Shooters)
	}

	if err := cfg.DeleteTeam(1); !errors.Is(err, ErrTeamNotEmpty) {
		t.Fatalf("expected ErrTeamNotEmpty, got %v", err)
	}
	if err := cfg.DeleteTeam(9); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestConfiguration_UpdateTeamTimesLeavesOthersAlone(t *testing.T) {
	cfg := editorFixture(t)

	if err := cfg.UpdateTeamTimes(1, "12:30", "13:15"); err != nil {
		t.Fatalf("update team times failed: %v", err)
	}
	if cfg.Teams[0].StartTime != "12:30" || cfg.Teams[0].EndTime != "13:15" {
		t.Fatalf("expected updated window, got %s-%s", cfg.Teams[0].StartTime, cfg.Teams[0].EndTime)
	}
	if cfg.Teams[1].StartTime != "10:00" || cfg.Teams[1].EndTime != "11:00" {
		t.Fatalf("expected team 2 window unchanged, got %s-%s", cfg.Teams[1].StartTime, cfg.Teams[1].EndTime)
	}

	if err := cfg.UpdateTeamTimes(9, "12:00", "13:00"); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	if err := cfg.UpdateTeamTimes(1, "later", "13:00"); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}

func TestConfiguration_CloneIsDeep(t *testing.T) {
	cfg := editorFixture(t)

	clone := cfg.Clone()
	clone.Teams[0].Shooters[0].Name = "Mutated"
	clone.Teams[0].WeaponClasses[0] = "Z"

	if cfg.Teams[0].Shooters[0].Name == "Mutated" {
		t.Fatal("clone shares shooter slice with original")
	}
	if cfg.Teams[0].WeaponClasses[0] == "Z" {
		t.Fatal("clone shares weapon class slice with original")
	}
}

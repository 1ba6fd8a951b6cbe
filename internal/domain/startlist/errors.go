package startlist

import "errors"

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrShooterNotFound = errors.New("shooter not found in start list")
	ErrShooterExists   = errors.New("shooter already registered in this start list")
	ErrShooterInTeam   = errors.New("shooter already in this team")
	ErrTeamNotEmpty    = errors.New("team must be emptied before deletion")
)

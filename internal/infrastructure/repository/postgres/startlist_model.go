package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/feltskyting/startlist/internal/domain/startlist"
)

// startListDocumentVersion is bumped whenever the JSON document layout
// changes. Decoding refuses versions it does not know.
const startListDocumentVersion = 1

type startListRow struct {
	ID            string    `db:"id"`
	CompetitionID string    `db:"competition_id"`
	IsOfficial    bool      `db:"is_official"`
	Document      []byte    `db:"document"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type settingsDocument struct {
	Format             string    `json:"format"`
	MaxShootersPerTeam int       `json:"maxShootersPerTeam"`
	StartInterval      int       `json:"startInterval"`
	FirstStartTime     string    `json:"firstStartTime"`
	MemberSortOrder    string    `json:"memberSortOrder,omitempty"`
	ClassStartOrder    string    `json:"classStartOrder,omitempty"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

type shooterDocument struct {
	Position    int    `json:"position"`
	ShooterID   string `json:"shooterId"`
	Name        string `json:"name"`
	Club        string `json:"club,omitempty"`
	WeaponClass string `json:"weaponClass"`
}

type teamDocument struct {
	Number        int               `json:"number"`
	StartTime     string            `json:"startTime"`
	EndTime       string            `json:"endTime,omitempty"`
	ShooterCount  int               `json:"shooterCount"`
	WeaponClasses []string          `json:"weaponClasses"`
	Shooters      []shooterDocument `json:"shooters"`
}

type startListDocument struct {
	Version  int              `json:"version"`
	Settings settingsDocument `json:"settings"`
	Teams    []teamDocument   `json:"teams"`
}

func encodeDocument(cfg startlist.Configuration) ([]byte, error) {
	doc := startListDocument{
		Version: startListDocumentVersion,
		Settings: settingsDocument{
			Format:             cfg.Settings.Format,
			MaxShootersPerTeam: cfg.Settings.MaxShootersPerTeam,
			StartInterval:      cfg.Settings.StartInterval,
			FirstStartTime:     cfg.Settings.FirstStartTime,
			MemberSortOrder:    cfg.Settings.MemberSortOrder,
			ClassStartOrder:    cfg.Settings.ClassStartOrder,
			GeneratedAt:        cfg.Settings.GeneratedAt,
		},
		Teams: make([]teamDocument, 0, len(cfg.Teams)),
	}

	for _, team := range cfg.Teams {
		teamDoc := teamDocument{
			Number:        team.Number,
			StartTime:     team.StartTime,
			EndTime:       team.EndTime,
			ShooterCount:  team.ShooterCount,
			WeaponClasses: team.WeaponClasses,
			Shooters:      make([]shooterDocument, 0, len(team.Shooters)),
		}
		for _, shooter := range team.Shooters {
			teamDoc.Shooters = append(teamDoc.Shooters, shooterDocument{
				Position:    shooter.Position,
				ShooterID:   shooter.ShooterID,
				Name:        shooter.Name,
				Club:        shooter.Club,
				WeaponClass: shooter.WeaponClass,
			})
		}
		doc.Teams = append(doc.Teams, teamDoc)
	}

	payload, err := sonic.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode start list document: %w", err)
	}

	return payload, nil
}

func (r startListRow) toDomain() (startlist.Configuration, error) {
	var doc startListDocument
	if err := sonic.Unmarshal(r.Document, &doc); err != nil {
		return startlist.Configuration{}, fmt.Errorf("decode start list document: %w", err)
	}
	if doc.Version != startListDocumentVersion {
		return startlist.Configuration{}, fmt.Errorf("unsupported start list document version %d", doc.Version)
	}

	cfg := startlist.Configuration{
		ID:            r.ID,
		CompetitionID: r.CompetitionID,
		IsOfficial:    r.IsOfficial,
		Settings: startlist.Settings{
			Format:             doc.Settings.Format,
			MaxShootersPerTeam: doc.Settings.MaxShootersPerTeam,
			StartInterval:      doc.Settings.StartInterval,
			FirstStartTime:     doc.Settings.FirstStartTime,
			MemberSortOrder:    doc.Settings.MemberSortOrder,
			ClassStartOrder:    doc.Settings.ClassStartOrder,
			GeneratedAt:        doc.Settings.GeneratedAt,
		},
		Teams:     make([]startlist.Team, 0, len(doc.Teams)),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	for _, teamDoc := range doc.Teams {
		team := startlist.Team{
			Number:        teamDoc.Number,
			StartTime:     teamDoc.StartTime,
			EndTime:       teamDoc.EndTime,
			ShooterCount:  teamDoc.ShooterCount,
			WeaponClasses: teamDoc.WeaponClasses,
			Shooters:      make([]startlist.Shooter, 0, len(teamDoc.Shooters)),
		}
		for _, shooterDoc := range teamDoc.Shooters {
			team.Shooters = append(team.Shooters, startlist.Shooter{
				Position:    shooterDoc.Position,
				ShooterID:   shooterDoc.ShooterID,
				Name:        shooterDoc.Name,
				Club:        shooterDoc.Club,
				WeaponClass: shooterDoc.WeaponClass,
			})
		}
		cfg.Teams = append(cfg.Teams, team)
	}

	return cfg, nil
}

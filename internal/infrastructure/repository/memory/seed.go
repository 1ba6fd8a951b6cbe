package memory

import (
	"time"

	"github.com/feltskyting/startlist/internal/domain/registration"
)

// SeedCompetitionID is the demo competition loaded into the memory stores
// when the service runs without a database.
const SeedCompetitionID = "comp-demo"

// SeedDemoData fills the memory stores with a small field competition so
// the API is usable right after boot.
func SeedDemoData(regs *RegistrationRepository, results *ResultRepository, clubs *ClubDirectory) {
	base := time.Date(2026, time.May, 2, 18, 0, 0, 0, time.UTC)

	clubs.Put("club-01", "Oslo Feltskyttere")
	clubs.Put("club-02", "Bergen Pistolklubb")
	clubs.Put("club-03", "Trondheim Skytterlag")

	regs.Add(SeedCompetitionID,
		registration.Registration{ShooterID: "sh-001", Name: "Kari Nordmann", ClubID: "club-01", ClubName: "Oslo Feltskyttere", WeaponClass: "A", RegisteredAt: base},
		registration.Registration{ShooterID: "sh-002", Name: "Ola Hansen", ClubID: "club-01", ClubName: "Oslo Feltskyttere", WeaponClass: "B", RegisteredAt: base.Add(5 * time.Minute)},
		registration.Registration{ShooterID: "sh-003", Name: "Ingrid Berg", ClubID: "club-02", ClubName: "Bergen Pistolklubb", WeaponClass: "A", RegisteredAt: base.Add(10 * time.Minute)},
		registration.Registration{ShooterID: "sh-004", Name: "Lars Vik", ClubID: "club-02", ClubName: "", WeaponClass: "C", RegisteredAt: base.Add(15 * time.Minute)},
		registration.Registration{ShooterID: "sh-005", Name: "Anne Solberg", ClubID: "club-03", ClubName: "Trondheim Skytterlag", WeaponClass: "R", RegisteredAt: base.Add(20 * time.Minute)},
		registration.Registration{ShooterID: "sh-006", Name: "Per Dahl", ClubID: "club-03", ClubName: "Trondheim Skytterlag", WeaponClass: "B", RegisteredAt: base.Add(25 * time.Minute)},
		registration.Registration{ShooterID: "sh-007", Name: "Silje Moen", ClubID: "club-01", ClubName: "Oslo Feltskyttere", WeaponClass: "M", RegisteredAt: base.Add(30 * time.Minute)},
	)

	results.Record(SeedCompetitionID, "sh-001")
}

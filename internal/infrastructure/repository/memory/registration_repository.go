package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/league-portal/internal/domain/registration"
)

type RegistrationRepository struct {
	view
}

func (r *RegistrationRepository) GetByID(_ context.Context, registrationID string) (registration.Registration, bool, error) {
	var (
		out registration.Registration
		ok  bool
	)
	r.read(func(d *dataset) {
		out, ok = d.registrations[registrationID]
	})
	return out, ok, nil
}

func (r *RegistrationRepository) GetDetail(_ context.Context, registrationID string) (registration.Detail, bool, error) {
	var (
		out registration.Detail
		ok  bool
	)
	r.read(func(d *dataset) {
		reg, exists := d.registrations[registrationID]
		if !exists {
			return
		}
		out, ok = d.detail(reg), true
	})
	return out, ok, nil
}

func (r *RegistrationRepository) ListDetailsByPlayer(_ context.Context, playerID string) ([]registration.Detail, error) {
	var out []registration.Detail
	r.read(func(d *dataset) {
		out = make([]registration.Detail, 0)
		for _, id := range d.regOrder {
			reg := d.registrations[id]
			if reg.PlayerID == playerID {
				out = append(out, d.detail(reg))
			}
		}
	})
	return out, nil
}

func (r *RegistrationRepository) ListByClubAndSport(_ context.Context, clubID, sportID string) ([]registration.Registration, error) {
	var out []registration.Registration
	r.read(func(d *dataset) {
		out = make([]registration.Registration, 0)
		for _, id := range d.regOrder {
			reg := d.registrations[id]
			if reg.ClubID == clubID && reg.SportID == sportID {
				out = append(out, reg)
			}
		}
	})
	return out, nil
}

func (r *RegistrationRepository) UpdatePlayer(_ context.Context, registrationID, playerID string) error {
	return r.write(func(d *dataset) error {
		reg, ok := d.registrations[registrationID]
		if !ok {
			return fmt.Errorf("registration %s not found", registrationID)
		}
		if _, ok := d.players[playerID]; !ok {
			return fmt.Errorf("player %s not found", playerID)
		}
		reg.PlayerID = playerID
		if err := d.checkUniqueRegistration(reg); err != nil {
			return err
		}
		d.registrations[registrationID] = reg
		return nil
	})
}

func (r *RegistrationRepository) UpdateSport(_ context.Context, registrationID, sportID string) error {
	return r.write(func(d *dataset) error {
		reg, ok := d.registrations[registrationID]
		if !ok {
			return fmt.Errorf("registration %s not found", registrationID)
		}
		if _, ok := d.sports[sportID]; !ok {
			return fmt.Errorf("sport %s not found", sportID)
		}
		reg.SportID = sportID
		if err := d.checkUniqueRegistration(reg); err != nil {
			return err
		}
		d.registrations[registrationID] = reg
		return nil
	})
}

func (d *dataset) detail(reg registration.Registration) registration.Detail {
	return registration.Detail{
		Registration: reg,
		Player:       d.players[reg.PlayerID],
		Sport:        d.sports[reg.SportID],
	}
}

// checkUniqueRegistration mirrors the (player_id, sport_id) unique index.
func (d *dataset) checkUniqueRegistration(reg registration.Registration) error {
	for id, other := range d.registrations {
		if id == reg.ID {
			continue
		}
		if other.PlayerID == reg.PlayerID && other.SportID == reg.SportID {
			return fmt.Errorf("player %s already registered for sport %s", reg.PlayerID, reg.SportID)
		}
	}
	return nil
}

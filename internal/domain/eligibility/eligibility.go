// Package eligibility holds the roster rules a player must satisfy to enter,
// swap into, or move into a sport. Everything here is side-effect free.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/registration"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
)

const (
	maxSameDayTrackIndividual  = 2
	maxSameDayTeamOrIndividual = 1
)

// IsGenderCompatible compares a player's recorded gender with a sport's gender
// type, ignoring case. Open sports accept everyone, including players without
// a recorded gender.
func IsGenderCompatible(playerGender string, sportGenderType sport.GenderType) bool {
	if sportGenderType.IsOpen() {
		return true
	}
	pg := normalizeGender(playerGender)
	if pg == "" {
		return false
	}
	return pg == normalizeGender(string(sportGenderType))
}

func normalizeGender(v string) string {
	switch g := strings.ToLower(strings.TrimSpace(v)); g {
	case "m", "male":
		return "male"
	case "f", "female":
		return "female"
	default:
		return g
	}
}

// CanRegisterForSport reports whether p may take a new registration in s given
// the registrations p already holds.
func CanRegisterForSport(p player.Player, s sport.Sport, existing []registration.Detail) bool {
	return CheckRegistration(p, s, existing) == nil
}

// CheckRegistration is CanRegisterForSport with the failed rule attached.
// Registrations belonging to another player are ignored.
func CheckRegistration(p player.Player, s sport.Sport, existing []registration.Detail) error {
	sameDay := 0
	for _, reg := range existing {
		if p.ID != "" && reg.PlayerID != "" && reg.PlayerID != p.ID {
			continue
		}
		if reg.SportID == s.ID {
			return fmt.Errorf("%w: player=%s sport=%s", ErrDuplicateSport, p.ID, s.ID)
		}
		if !sameSportDay(reg.Sport.SportDay, s.SportDay) {
			continue
		}
		if countsTowardDayCap(s.SportType, reg.Sport.SportType) {
			sameDay++
		}
	}

	limit, capped := dayCap(s.SportType)
	if capped && sameDay >= limit {
		return fmt.Errorf("%w: player=%s day=%s type=%s limit=%d", ErrDayCapExceeded, p.ID, s.SportDay, s.SportType, limit)
	}
	return nil
}

func dayCap(t sport.Type) (int, bool) {
	switch normalizeType(t) {
	case sport.TypeTrackIndividual:
		return maxSameDayTrackIndividual, true
	case sport.TypeTeam, sport.TypeIndividual:
		return maxSameDayTeamOrIndividual, true
	default:
		return 0, false
	}
}

// countsTowardDayCap: track events only count other track events, while team
// and individual events share one combined count.
func countsTowardDayCap(target, held sport.Type) bool {
	target, held = normalizeType(target), normalizeType(held)
	switch target {
	case sport.TypeTrackIndividual:
		return held == sport.TypeTrackIndividual
	case sport.TypeTeam, sport.TypeIndividual:
		return held == sport.TypeTeam || held == sport.TypeIndividual
	default:
		return false
	}
}

func normalizeType(t sport.Type) sport.Type {
	v := strings.TrimSpace(string(t))
	for _, known := range []sport.Type{sport.TypeTeam, sport.TypeIndividual, sport.TypeTrackIndividual, sport.TypeOther} {
		if strings.EqualFold(v, string(known)) {
			return known
		}
	}
	return sport.Type(v)
}

func sameSportDay(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ValidateSwap checks that reg1 and reg2 can exchange sports on behalf of
// requestingClubID. Gender failures are reported as *GenderMismatchError
// naming the offending side.
func ValidateSwap(reg1, reg2 registration.Detail, requestingClubID string) error {
	if reg1.ID == reg2.ID {
		return ErrSameRegistration
	}

	clubID := strings.TrimSpace(requestingClubID)
	if clubID == "" {
		clubID = reg1.ClubID
	}
	if reg1.ClubID != clubID {
		return fmt.Errorf("%w: registration=%s club=%s", ErrClubMismatch, reg1.ID, clubID)
	}
	if reg2.ClubID != clubID {
		return fmt.Errorf("%w: registration=%s club=%s", ErrClubMismatch, reg2.ID, clubID)
	}

	if !IsGenderCompatible(reg1.Player.Gender, reg2.Sport.GenderType) {
		return genderMismatch(reg1.Player, reg2.Sport)
	}
	if !IsGenderCompatible(reg2.Player.Gender, reg1.Sport.GenderType) {
		return genderMismatch(reg2.Player, reg1.Sport)
	}
	return nil
}

// ValidateMove checks the registration's player against the destination sport.
// Same-day conflicts are checked by the caller with CheckRegistration.
func ValidateMove(reg registration.Detail, dest *sport.Sport) error {
	if dest == nil {
		return ErrSportNotFound
	}
	if !IsGenderCompatible(reg.Player.Gender, dest.GenderType) {
		return genderMismatch(reg.Player, *dest)
	}
	return nil
}

// CheckCapacity fails when dest already holds as many main (or reserve)
// registrations from the club as its cap allows. clubRegs should not include
// the registration being placed.
func CheckCapacity(dest sport.Sport, main bool, clubRegs []registration.Registration) error {
	limit := dest.ReserveCount
	kind := "reserve"
	if main {
		limit = dest.MaxCount
		kind = "main"
	}

	count := 0
	for _, reg := range clubRegs {
		if reg.SportID == dest.ID && reg.MainPlayer == main {
			count++
		}
	}
	if count >= limit {
		return fmt.Errorf("%w: sport=%s %s=%d limit=%d", ErrCapacityExceeded, dest.ID, kind, count, limit)
	}
	return nil
}

func genderMismatch(p player.Player, s sport.Sport) error {
	return &GenderMismatchError{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		SportID:    s.ID,
		SportName:  s.Name,
	}
}

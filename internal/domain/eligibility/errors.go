package eligibility

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateSport   = errors.New("player already registered for this sport")
	ErrDayCapExceeded   = errors.New("same-day registration limit reached")
	ErrSameRegistration = errors.New("cannot swap the same registration")
	ErrClubMismatch     = errors.New("registration does not belong to the requesting club")
	ErrGenderMismatch   = errors.New("player gender is not compatible with sport")
	ErrSportNotFound    = errors.New("destination sport not found")
	ErrCapacityExceeded = errors.New("sport roster is full")
)

var violations = []error{
	ErrDuplicateSport,
	ErrDayCapExceeded,
	ErrSameRegistration,
	ErrClubMismatch,
	ErrGenderMismatch,
	ErrSportNotFound,
	ErrCapacityExceeded,
}

// GenderMismatchError names the player and sport that failed the gender
// check, so a swap can report which side was rejected.
type GenderMismatchError struct {
	PlayerID   string
	PlayerName string
	SportID    string
	SportName  string
}

func (e *GenderMismatchError) Error() string {
	return fmt.Sprintf("%s: player %s is not compatible with sport %s",
		ErrGenderMismatch.Error(), label(e.PlayerName, e.PlayerID), label(e.SportName, e.SportID))
}

func (e *GenderMismatchError) Unwrap() error {
	return ErrGenderMismatch
}

// IsViolation reports whether err is one of the eligibility rule failures.
func IsViolation(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range violations {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func label(name, id string) string {
	if name == "" {
		return id
	}
	return name
}

package sport

import (
	"fmt"
	"strings"
)

// GenderType restricts which players may register for a sport.
type GenderType string

const (
	GenderMale   GenderType = "male"
	GenderFemale GenderType = "female"
	GenderOpen   GenderType = "open"
	GenderMixed  GenderType = "mixed"
	GenderMix    GenderType = "mix"
	GenderAny    GenderType = "any"
)

// IsOpen reports whether any player may enter, including players without a
// recorded gender. An unset gender type counts as open.
func (g GenderType) IsOpen() bool {
	switch GenderType(strings.ToLower(strings.TrimSpace(string(g)))) {
	case "", GenderOpen, GenderMixed, GenderMix, GenderAny:
		return true
	default:
		return false
	}
}

// Type drives the per-day registration caps.
type Type string

const (
	TypeTeam            Type = "team"
	TypeIndividual      Type = "individual"
	TypeTrackIndividual Type = "trackIndividual"
	TypeOther           Type = "other"
)

// Sport is one event a club can enter players into.
type Sport struct {
	ID           string
	Name         string
	GenderType   GenderType
	SportType    Type
	SportDay     string
	MaxCount     int
	ReserveCount int
	Category     string
}

func (s Sport) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("sport id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("sport name is required")
	}
	if s.MaxCount < 0 || s.ReserveCount < 0 {
		return fmt.Errorf("sport caps cannot be negative")
	}
	return nil
}

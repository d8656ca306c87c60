package rosterchange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrAlreadyDecided is returned when a decision targets a request that has
// already left the pending state.
var ErrAlreadyDecided = errors.New("roster change request already decided")

// Type is the kind of roster mutation a request carries.
type Type string

const (
	TypeReplace Type = "replace"
	TypeSwap    Type = "swap"
	TypeMove    Type = "move"
)

func ParseType(v string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(v))); t {
	case TypeReplace, TypeSwap, TypeMove:
		return t, nil
	default:
		return "", fmt.Errorf("unknown roster change action %q", v)
	}
}

// StatusFilter selects requests by decision state when listing.
type StatusFilter string

const (
	FilterAll      StatusFilter = ""
	FilterPending  StatusFilter = "pending"
	FilterApproved StatusFilter = "approved"
	FilterRejected StatusFilter = "rejected"
)

func ParseStatusFilter(v string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(v))); f {
	case FilterAll, FilterPending, FilterApproved, FilterRejected:
		return f, nil
	default:
		return "", fmt.Errorf("unknown status filter %q", v)
	}
}

// Match reports whether a request status passes the filter.
func (f StatusFilter) Match(status *bool) bool {
	switch f {
	case FilterPending:
		return status == nil
	case FilterApproved:
		return status != nil && *status
	case FilterRejected:
		return status != nil && !*status
	default:
		return true
	}
}

// Request is one ledger entry. Status is nil while pending, true once
// approved and false once rejected; it changes at most once.
type Request struct {
	ID                   string
	Type                 Type
	ClubID               string
	ActorID              string
	RegistrationID       string
	SecondRegistrationID string
	SportID              string
	DestinationSportID   string
	OldPlayerID          string
	NewPlayerExternalID  string
	NewPlayerName        string
	NewPlayerGender      string
	Reason               string
	SupportingLink       string
	Status               *bool
	ApprovedBy           string
	ApprovedAt           *time.Time
	CreatedAt            time.Time
}

func (r Request) Pending() bool {
	return r.Status == nil
}

func (r Request) Approved() bool {
	return r.Status != nil && *r.Status
}

func (r Request) Rejected() bool {
	return r.Status != nil && !*r.Status
}

// StatusLabel renders the tri-state status as pending, approved or rejected.
func (r Request) StatusLabel() string {
	switch {
	case r.Pending():
		return string(FilterPending)
	case r.Approved():
		return string(FilterApproved)
	default:
		return string(FilterRejected)
	}
}

// Decide moves a pending request to its terminal state.
func (r *Request) Decide(approved bool, by string, at time.Time) error {
	if !r.Pending() {
		return fmt.Errorf("%w: id=%s status=%s", ErrAlreadyDecided, r.ID, r.StatusLabel())
	}
	r.Status = &approved
	r.ApprovedBy = by
	decidedAt := at
	r.ApprovedAt = &decidedAt
	return nil
}

// Validate checks the fields every request type needs plus the ones its type
// adds.
func (r Request) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("request id is required")
	}
	if strings.TrimSpace(r.ClubID) == "" {
		return fmt.Errorf("club id is required")
	}
	if strings.TrimSpace(r.ActorID) == "" {
		return fmt.Errorf("actor id is required")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return fmt.Errorf("reason is required")
	}
	if strings.TrimSpace(r.RegistrationID) == "" {
		return fmt.Errorf("registration id is required")
	}

	switch r.Type {
	case TypeReplace:
		if strings.TrimSpace(r.NewPlayerExternalID) == "" || strings.TrimSpace(r.NewPlayerName) == "" {
			return fmt.Errorf("replacement player external id and name are required")
		}
	case TypeSwap:
		if strings.TrimSpace(r.SecondRegistrationID) == "" {
			return fmt.Errorf("second registration id is required for swap")
		}
	case TypeMove:
		if strings.TrimSpace(r.DestinationSportID) == "" {
			return fmt.Errorf("destination sport id is required for move")
		}
	default:
		return fmt.Errorf("unknown roster change type %q", r.Type)
	}
	return nil
}

package httpapi

import (
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/bracket"
	"github.com/riskibarqy/league-portal/internal/domain/match"
	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
	"github.com/riskibarqy/league-portal/internal/usecase"
)

// Bracket payloads use the camelCase keys bracket renderers expect.
type roundDTO struct {
	Title   string    `json:"title"`
	RoundID int       `json:"roundId"`
	Seeds   []seedDTO `json:"seeds"`
}

type seedTeamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type seedDTO struct {
	ID             string         `json:"id"`
	Teams          [2]seedTeamDTO `json:"teams"`
	Score          [2]int         `json:"score"`
	Date           string         `json:"date,omitempty"`
	Status         string         `json:"status"`
	ParentMatch1ID string         `json:"parentMatch1Id,omitempty"`
	ParentMatch2ID string         `json:"parentMatch2Id,omitempty"`
	RoundID        int            `json:"roundId"`
	MatchOrder     int            `json:"matchOrder"`
}

type matchDTO struct {
	ID             string `json:"id"`
	SportID        string `json:"sport_id"`
	Team1ID        string `json:"team1_id,omitempty"`
	Team2ID        string `json:"team2_id,omitempty"`
	Team1Score     int    `json:"team1_score"`
	Team2Score     int    `json:"team2_score"`
	RoundID        int    `json:"round_id"`
	MatchOrder     int    `json:"match_order"`
	ParentMatch1ID string `json:"parent_match1_id,omitempty"`
	ParentMatch2ID string `json:"parent_match2_id,omitempty"`
	StartTime      string `json:"start_time,omitempty"`
}

type advancedSlotDTO struct {
	MatchID string `json:"match_id"`
	Slot    int    `json:"slot"`
}

type propagationFailureDTO struct {
	MatchID string `json:"match_id,omitempty"`
	Slot    int    `json:"slot,omitempty"`
	Error   string `json:"error"`
}

type scoreResultDTO struct {
	Match               matchDTO                `json:"match"`
	Outcome             string                  `json:"outcome"`
	WinnerID            string                  `json:"winner_id,omitempty"`
	Advanced            []advancedSlotDTO       `json:"advanced"`
	PropagationFailures []propagationFailureDTO `json:"propagation_failures,omitempty"`
}

type replacementDTO struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
}

type rosterChangeDTO struct {
	ID                   string          `json:"id"`
	Action               string          `json:"action"`
	ClubID               string          `json:"club_id"`
	ActorID              string          `json:"actor_id"`
	RegistrationID       string          `json:"registration_id"`
	SecondRegistrationID string          `json:"second_registration_id,omitempty"`
	SportID              string          `json:"sport_id"`
	DestinationSportID   string          `json:"destination_sport_id,omitempty"`
	OldPlayerID          string          `json:"old_player_id,omitempty"`
	Replacement          *replacementDTO `json:"replacement,omitempty"`
	Reason               string          `json:"reason,omitempty"`
	SupportingLink       string          `json:"supporting_link,omitempty"`
	// Status is null while pending.
	Status      *bool  `json:"status"`
	StatusLabel string `json:"status_label"`
	ApprovedBy  string `json:"approved_by,omitempty"`
	ApprovedAt  string `json:"approved_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type eligibilityDTO struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

func roundsToDTO(rounds []bracket.Round) []roundDTO {
	out := make([]roundDTO, 0, len(rounds))
	for _, round := range rounds {
		seeds := make([]seedDTO, 0, len(round.Seeds))
		for _, seed := range round.Seeds {
			seeds = append(seeds, seedDTO{
				ID: seed.ID,
				Teams: [2]seedTeamDTO{
					{ID: seed.Teams[0].ID, Name: seed.Teams[0].Name},
					{ID: seed.Teams[1].ID, Name: seed.Teams[1].Name},
				},
				Score:          seed.Score,
				Date:           formatOptionalTime(seed.Date),
				Status:         seed.Status,
				ParentMatch1ID: seed.ParentMatch1ID,
				ParentMatch2ID: seed.ParentMatch2ID,
				RoundID:        seed.RoundID,
				MatchOrder:     seed.MatchOrder,
			})
		}
		out = append(out, roundDTO{
			Title:   round.Title,
			RoundID: round.RoundID,
			Seeds:   seeds,
		})
	}
	return out
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:             m.ID,
		SportID:        m.SportID,
		Team1ID:        m.Team1ID,
		Team2ID:        m.Team2ID,
		Team1Score:     m.Team1Score,
		Team2Score:     m.Team2Score,
		RoundID:        m.RoundID,
		MatchOrder:     m.MatchOrder,
		ParentMatch1ID: m.ParentMatch1ID,
		ParentMatch2ID: m.ParentMatch2ID,
		StartTime:      formatOptionalTime(m.StartTime),
	}
}

func scoreResultToDTO(result usecase.ScoreResult) scoreResultDTO {
	advanced := make([]advancedSlotDTO, 0, len(result.Advanced))
	for _, slot := range result.Advanced {
		advanced = append(advanced, advancedSlotDTO{MatchID: slot.MatchID, Slot: int(slot.Slot)})
	}

	var failures []propagationFailureDTO
	for _, failure := range result.PropagationFailures {
		failures = append(failures, propagationFailureDTO{
			MatchID: failure.MatchID,
			Slot:    int(failure.Slot),
			Error:   failure.Error,
		})
	}

	return scoreResultDTO{
		Match:               matchToDTO(result.Match),
		Outcome:             string(result.Outcome),
		WinnerID:            result.WinnerID,
		Advanced:            advanced,
		PropagationFailures: failures,
	}
}

func rosterChangeToDTO(req rosterchange.Request) rosterChangeDTO {
	out := rosterChangeDTO{
		ID:                   req.ID,
		Action:               string(req.Type),
		ClubID:               req.ClubID,
		ActorID:              req.ActorID,
		RegistrationID:       req.RegistrationID,
		SecondRegistrationID: req.SecondRegistrationID,
		SportID:              req.SportID,
		DestinationSportID:   req.DestinationSportID,
		OldPlayerID:          req.OldPlayerID,
		Reason:               req.Reason,
		SupportingLink:       req.SupportingLink,
		StatusLabel:          req.StatusLabel(),
		ApprovedBy:           req.ApprovedBy,
		ApprovedAt:           formatOptionalTime(req.ApprovedAt),
		CreatedAt:            req.CreatedAt.UTC().Format(time.RFC3339),
	}
	if req.Status != nil {
		status := *req.Status
		out.Status = &status
	}
	if req.Type == rosterchange.TypeReplace {
		out.Replacement = &replacementDTO{
			ExternalID: req.NewPlayerExternalID,
			Name:       req.NewPlayerName,
			Gender:     req.NewPlayerGender,
		}
	}
	return out
}

func rosterChangesToDTO(items []rosterchange.Request) []rosterChangeDTO {
	out := make([]rosterChangeDTO, 0, len(items))
	for _, item := range items {
		out = append(out, rosterChangeToDTO(item))
	}
	return out
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

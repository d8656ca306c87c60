package bracket

import (
	"sort"
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/match"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

// Team is one side of a seed as shown in the bracket.
type Team struct {
	ID   string
	Name string
}

// Seed is a single match slot within a round.
type Seed struct {
	ID             string
	Teams          [2]Team
	Score          [2]int
	Date           *time.Time
	Status         string
	ParentMatch1ID string
	ParentMatch2ID string
	RoundID        int
	MatchOrder     int
}

// Round is a named bracket stage with its seeds in display order.
type Round struct {
	Title   string
	RoundID int
	Stage   Stage
	Seeds   []Seed
}

// Build groups matches into rounds. Matches are expected in display order
// (see SortForDisplay); rounds appear in the order their first match does and
// seeds keep input order within a round.
func Build(matches []match.Match) []Round {
	rounds := make([]Round, 0)
	indexByRound := make(map[int]int)

	for _, m := range matches {
		idx, ok := indexByRound[m.RoundID]
		if !ok {
			idx = len(rounds)
			indexByRound[m.RoundID] = idx
			rounds = append(rounds, Round{
				Title:   RoundTitle(m.RoundID),
				RoundID: m.RoundID,
				Stage:   StageFor(m.RoundID),
				Seeds:   make([]Seed, 0, 1),
			})
		}
		rounds[idx].Seeds = append(rounds[idx].Seeds, seedFromMatch(m))
	}

	return rounds
}

func seedFromMatch(m match.Match) Seed {
	return Seed{
		ID: m.ID,
		Teams: [2]Team{
			{ID: m.Team1ID, Name: teamName(m.Team1ID, m.Team1Name)},
			{ID: m.Team2ID, Name: teamName(m.Team2ID, m.Team2Name)},
		},
		Score:          [2]int{m.Team1Score, m.Team2Score},
		Date:           m.StartTime,
		Status:         SeedStatus(m.Team1Score, m.Team2Score),
		ParentMatch1ID: m.ParentMatch1ID,
		ParentMatch2ID: m.ParentMatch2ID,
		RoundID:        m.RoundID,
		MatchOrder:     m.MatchOrder,
	}
}

func teamName(teamID, name string) string {
	if teamID == "" || name == "" {
		return match.Placeholder
	}
	return name
}

// SeedStatus is completed when both sides scored and the scores differ.
func SeedStatus(score1, score2 int) string {
	if score1 > 0 && score2 > 0 && score1 != score2 {
		return StatusCompleted
	}
	return StatusScheduled
}

// SortForDisplay orders matches by round id descending then match order
// ascending, in place.
func SortForDisplay(matches []match.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].RoundID != matches[j].RoundID {
			return matches[i].RoundID > matches[j].RoundID
		}
		return matches[i].MatchOrder < matches[j].MatchOrder
	})
}

package memory

import (
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/match"
	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/registration"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
	"github.com/riskibarqy/league-portal/internal/domain/team"
)

const (
	ClubIDHarbour = "club-harbour"
	ClubIDHill    = "club-hill"

	SportIDFutsal     = "sport-futsal"
	SportIDBadmintonW = "sport-badminton-w"
	SportIDBadmintonM = "sport-badminton-m"
	SportID100m       = "sport-100m"
	SportID200m       = "sport-200m"
	SportIDChess      = "sport-chess"
)

// DefaultSeed is the demo data served by the memory backend.
func DefaultSeed() Seed {
	return Seed{
		Sports:        SeedSports(),
		Teams:         SeedTeams(),
		Players:       SeedPlayers(),
		Registrations: SeedRegistrations(),
		Matches:       SeedMatches(),
	}
}

func SeedSports() []sport.Sport {
	return []sport.Sport{
		{ID: SportIDFutsal, Name: "Futsal", GenderType: sport.GenderOpen, SportType: sport.TypeTeam, SportDay: "Saturday", MaxCount: 8, ReserveCount: 4, Category: "team"},
		{ID: SportIDBadmintonW, Name: "Women's Badminton", GenderType: sport.GenderFemale, SportType: sport.TypeIndividual, SportDay: "Sunday", MaxCount: 2, ReserveCount: 1, Category: "racket"},
		{ID: SportIDBadmintonM, Name: "Men's Badminton", GenderType: sport.GenderMale, SportType: sport.TypeIndividual, SportDay: "Sunday", MaxCount: 2, ReserveCount: 1, Category: "racket"},
		{ID: SportID100m, Name: "100m Sprint", GenderType: sport.GenderMixed, SportType: sport.TypeTrackIndividual, SportDay: "Saturday", MaxCount: 3, ReserveCount: 1, Category: "athletics"},
		{ID: SportID200m, Name: "200m Sprint", GenderType: sport.GenderMixed, SportType: sport.TypeTrackIndividual, SportDay: "Saturday", MaxCount: 3, ReserveCount: 1, Category: "athletics"},
		{ID: SportIDChess, Name: "Chess", GenderType: sport.GenderAny, SportType: sport.TypeOther, SportDay: "Sunday", MaxCount: 1, ReserveCount: 0, Category: "mind"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-harbour-a", ClubID: ClubIDHarbour, SportID: SportIDFutsal, Name: "Harbour A"},
		{ID: "team-harbour-b", ClubID: ClubIDHarbour, SportID: SportIDFutsal, Name: "Harbour B"},
		{ID: "team-hill-a", ClubID: ClubIDHill, SportID: SportIDFutsal, Name: "Hill A"},
		{ID: "team-hill-b", ClubID: ClubIDHill, SportID: SportIDFutsal, Name: "Hill B"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "player-adi", ExternalID: "EXT-1001", Name: "Adi Pratama", Gender: "male", ClubID: ClubIDHarbour},
		{ID: "player-bunga", ExternalID: "EXT-1002", Name: "Bunga Lestari", Gender: "female", ClubID: ClubIDHarbour},
		{ID: "player-citra", ExternalID: "EXT-1003", Name: "Citra Dewi", Gender: "F", ClubID: ClubIDHarbour},
		{ID: "player-dimas", ExternalID: "EXT-2001", Name: "Dimas Saputra", Gender: "M", ClubID: ClubIDHill},
	}
}

func SeedRegistrations() []registration.Registration {
	return []registration.Registration{
		{ID: "reg-adi-badminton", PlayerID: "player-adi", SportID: SportIDBadmintonM, ClubID: ClubIDHarbour, MainPlayer: true},
		{ID: "reg-adi-100m", PlayerID: "player-adi", SportID: SportID100m, ClubID: ClubIDHarbour, MainPlayer: true},
		{ID: "reg-bunga-badminton", PlayerID: "player-bunga", SportID: SportIDBadmintonW, ClubID: ClubIDHarbour, MainPlayer: true},
		{ID: "reg-citra-futsal", PlayerID: "player-citra", SportID: SportIDFutsal, ClubID: ClubIDHarbour, MainPlayer: false},
		{ID: "reg-dimas-chess", PlayerID: "player-dimas", SportID: SportIDChess, ClubID: ClubIDHill, MainPlayer: true},
	}
}

// SeedMatches is a four-team futsal bracket: two semi finals feeding a final.
func SeedMatches() []match.Match {
	kickoff := time.Date(2026, time.November, 7, 9, 0, 0, 0, time.UTC)
	late := kickoff.Add(2 * time.Hour)
	final := kickoff.Add(6 * time.Hour)
	return []match.Match{
		{ID: "match-futsal-sf1", SportID: SportIDFutsal, Team1ID: "team-harbour-a", Team2ID: "team-hill-b", RoundID: 3, MatchOrder: 1, StartTime: &kickoff},
		{ID: "match-futsal-sf2", SportID: SportIDFutsal, Team1ID: "team-hill-a", Team2ID: "team-harbour-b", RoundID: 3, MatchOrder: 2, StartTime: &late},
		{ID: "match-futsal-final", SportID: SportIDFutsal, RoundID: 5, MatchOrder: 1, ParentMatch1ID: "match-futsal-sf1", ParentMatch2ID: "match-futsal-sf2", StartTime: &final},
	}
}

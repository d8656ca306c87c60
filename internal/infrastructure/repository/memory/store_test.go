package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/match"
	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
)

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	ctx := t.Context()
	store := NewStore(DefaultSeed())

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context, stores rosterchange.Stores) error {
		if err := stores.Players.Create(ctx, player.Player{ID: "p-new", ExternalID: "EXT-9", Name: "New"}); err != nil {
			return err
		}
		if err := stores.Registrations.UpdatePlayer(ctx, "reg-adi-badminton", "p-new"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	stores := store.Stores()
	if _, ok, _ := stores.Players.GetByID(ctx, "p-new"); ok {
		t.Fatalf("player insert should be rolled back")
	}
	reg, _, _ := stores.Registrations.GetByID(ctx, "reg-adi-badminton")
	if reg.PlayerID != "player-adi" {
		t.Fatalf("registration repoint should be rolled back, got %s", reg.PlayerID)
	}
}

func TestStore_WithinTxCommits(t *testing.T) {
	ctx := t.Context()
	store := NewStore(DefaultSeed())

	err := store.WithinTx(ctx, func(ctx context.Context, stores rosterchange.Stores) error {
		return stores.Registrations.UpdateSport(ctx, "reg-citra-futsal", SportID200m)
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}

	reg, _, _ := store.Stores().Registrations.GetByID(ctx, "reg-citra-futsal")
	if reg.SportID != SportID200m {
		t.Fatalf("expected committed sport change, got %s", reg.SportID)
	}
}

func TestRegistrationRepository_UniquePlayerSport(t *testing.T) {
	ctx := t.Context()
	stores := NewStore(DefaultSeed()).Stores()

	if err := stores.Registrations.UpdateSport(ctx, "reg-adi-100m", SportIDBadmintonM); err == nil {
		t.Fatalf("expected duplicate (player, sport) to be rejected")
	}
	if err := stores.Registrations.UpdateSport(ctx, "missing", SportIDChess); err == nil {
		t.Fatalf("expected missing registration error")
	}
}

func TestRegistrationRepository_Details(t *testing.T) {
	ctx := t.Context()
	stores := NewStore(DefaultSeed()).Stores()

	details, err := stores.Registrations.ListDetailsByPlayer(ctx, "player-adi")
	if err != nil {
		t.Fatalf("list details: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(details))
	}
	if details[0].Player.Name != "Adi Pratama" || details[0].Sport.ID != SportIDBadmintonM {
		t.Fatalf("unexpected detail: %+v", details[0])
	}
}

func TestRosterChangeRepository_DecideOnceAndList(t *testing.T) {
	ctx := t.Context()
	requests := NewStore(DefaultSeed()).Stores().Requests

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"rq-1", "rq-2"} {
		err := requests.Create(ctx, rosterchange.Request{
			ID:                 id,
			Type:               rosterchange.TypeMove,
			ClubID:             ClubIDHarbour,
			ActorID:            "officer",
			RegistrationID:     "reg-citra-futsal",
			DestinationSportID: SportID100m,
			Reason:             "schedule clash",
			CreatedAt:          base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	if err := requests.Decide(ctx, "rq-1", false, "admin", base); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if err := requests.Decide(ctx, "rq-1", true, "admin", base); !errors.Is(err, rosterchange.ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}

	all, _ := requests.List(ctx, rosterchange.ListFilter{})
	if len(all) != 2 || all[0].ID != "rq-2" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	pending, _ := requests.List(ctx, rosterchange.ListFilter{Status: rosterchange.FilterPending})
	if len(pending) != 1 || pending[0].ID != "rq-2" {
		t.Fatalf("unexpected pending list: %+v", pending)
	}
	rejected, _ := requests.List(ctx, rosterchange.ListFilter{ClubID: ClubIDHarbour, Status: rosterchange.FilterRejected})
	if len(rejected) != 1 || rejected[0].ID != "rq-1" {
		t.Fatalf("unexpected rejected list: %+v", rejected)
	}
	other, _ := requests.List(ctx, rosterchange.ListFilter{ClubID: ClubIDHill})
	if len(other) != 0 {
		t.Fatalf("expected no requests for other club, got %d", len(other))
	}
}

func TestMatchRepository_ListAndAdvance(t *testing.T) {
	ctx := t.Context()
	repo := NewStore(DefaultSeed()).Matches()

	matches, err := repo.ListBySport(ctx, SportIDFutsal)
	if err != nil {
		t.Fatalf("list by sport: %v", err)
	}
	if len(matches) != 3 || matches[0].ID != "match-futsal-final" || matches[1].ID != "match-futsal-sf1" {
		t.Fatalf("unexpected order: %+v", matches)
	}
	if matches[1].Team1Name != "Harbour A" {
		t.Fatalf("expected joined team name, got %q", matches[1].Team1Name)
	}

	dependents, err := repo.ListByParent(ctx, SportIDFutsal, "match-futsal-sf2")
	if err != nil || len(dependents) != 1 || dependents[0].ID != "match-futsal-final" {
		t.Fatalf("unexpected dependents: %+v, %v", dependents, err)
	}
	if got, _ := repo.ListByParent(ctx, SportIDChess, "match-futsal-sf2"); len(got) != 0 {
		t.Fatalf("dependents must be scoped by sport")
	}

	if err := repo.SetTeam(ctx, "match-futsal-final", match.Slot2, "team-hill-a"); err != nil {
		t.Fatalf("set team: %v", err)
	}
	final, _, _ := repo.GetByID(ctx, "match-futsal-final")
	if final.Team2ID != "team-hill-a" || final.Team2Name != "Hill A" {
		t.Fatalf("unexpected final: %+v", final)
	}
}

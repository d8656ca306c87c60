package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/eligibility"
	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/registration"
	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
	"github.com/riskibarqy/league-portal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

var fixedNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newRosterFixture(t *testing.T, seed memory.Seed) (*RosterChangeService, *memory.Store) {
	t.Helper()
	store := memory.NewStore(seed)
	service := NewRosterChangeService(store, store.Stores().Requests, &sequenceIDs{}, logging.NewNop())
	service.now = func() time.Time { return fixedNow }
	return service, store
}

func replaceInput(autoApprove bool) SubmitRosterChangeInput {
	return SubmitRosterChangeInput{
		Action:         "replace",
		ClubID:         memory.ClubIDHarbour,
		SportID:        memory.SportIDBadmintonM,
		RegistrationID: "reg-adi-badminton",
		Replacement:    ReplacementInput{ExternalID: "EXT-5001", Name: "Eko Wibowo", Gender: "m"},
		Reason:         "injured ankle",
		ActorID:        "user-1",
		AutoApprove:    autoApprove,
	}
}

func TestRosterChangeService_AdminReplacementAppliesImmediately(t *testing.T) {
	ctx := t.Context()
	service, store := newRosterFixture(t, memory.DefaultSeed())
	stores := store.Stores()

	req, err := service.Submit(ctx, replaceInput(true))
	require.NoError(t, err)
	require.True(t, req.Approved())
	require.Equal(t, "user-1", req.ApprovedBy)
	require.NotNil(t, req.ApprovedAt)
	require.Equal(t, "player-adi", req.OldPlayerID)

	reg, _, err := stores.Registrations.GetByID(ctx, "reg-adi-badminton")
	require.NoError(t, err)
	incoming, found, err := stores.Players.GetByExternalID(ctx, "EXT-5001")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, incoming.ID, reg.PlayerID)
	require.Equal(t, "id-2", incoming.ID)

	record, ok := store.ReplacementRecord("EXT-5001")
	require.True(t, ok)
	require.Equal(t, "Eko Wibowo", record.Name)

	pending, err := service.List(ctx, ListRosterChangesInput{Status: "pending"})
	require.NoError(t, err)
	require.Empty(t, pending)

	stored, err := service.Get(ctx, req.ID)
	require.NoError(t, err)
	require.True(t, stored.Approved())
}

func TestRosterChangeService_OfficerReplacementWaitsForApproval(t *testing.T) {
	ctx := t.Context()
	service, store := newRosterFixture(t, memory.DefaultSeed())
	stores := store.Stores()

	req, err := service.Submit(ctx, replaceInput(false))
	require.NoError(t, err)
	require.True(t, req.Pending())

	reg, _, _ := stores.Registrations.GetByID(ctx, "reg-adi-badminton")
	require.Equal(t, "player-adi", reg.PlayerID, "pending request must not touch the roster")
	_, found, _ := stores.Players.GetByExternalID(ctx, "EXT-5001")
	require.False(t, found)

	approved, err := service.Approve(ctx, req.ID, "admin-1")
	require.NoError(t, err)
	require.True(t, approved.Approved())
	require.Equal(t, "admin-1", approved.ApprovedBy)

	reg, _, _ = stores.Registrations.GetByID(ctx, "reg-adi-badminton")
	require.NotEqual(t, "player-adi", reg.PlayerID)

	_, err = service.Approve(ctx, req.ID, "admin-2")
	require.ErrorIs(t, err, ErrConflict)
	_, err = service.Reject(ctx, req.ID, "admin-2")
	require.ErrorIs(t, err, ErrConflict)
}

func TestRosterChangeService_RejectLeavesRosterUntouched(t *testing.T) {
	ctx := t.Context()
	service, store := newRosterFixture(t, memory.DefaultSeed())

	req, err := service.Submit(ctx, SubmitRosterChangeInput{
		Action:             "move",
		ClubID:             memory.ClubIDHarbour,
		RegistrationID:     "reg-citra-futsal",
		DestinationSportID: memory.SportID200m,
		Reason:             "prefers sprinting",
		ActorID:            "officer-1",
	})
	require.NoError(t, err)

	rejected, err := service.Reject(ctx, req.ID, "admin-1")
	require.NoError(t, err)
	require.True(t, rejected.Rejected())

	reg, _, _ := store.Stores().Registrations.GetByID(ctx, "reg-citra-futsal")
	require.Equal(t, memory.SportIDFutsal, reg.SportID)

	_, err = service.Approve(ctx, req.ID, "admin-1")
	require.ErrorIs(t, err, ErrConflict)

	items, err := service.List(ctx, ListRosterChangesInput{ClubID: memory.ClubIDHarbour, Status: "rejected"})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestRosterChangeService_ApproveRevalidatesAgainstCurrentData(t *testing.T) {
	ctx := t.Context()
	service, _ := newRosterFixture(t, memory.DefaultSeed())

	stale, err := service.Submit(ctx, replaceInput(false))
	require.NoError(t, err)

	direct := replaceInput(true)
	direct.Replacement = ReplacementInput{ExternalID: "EXT-5002", Name: "Fajar Nugroho", Gender: "male"}
	_, err = service.Submit(ctx, direct)
	require.NoError(t, err)

	_, err = service.Approve(ctx, stale.ID, "admin-1")
	require.ErrorIs(t, err, ErrConflict)

	current, err := service.Get(ctx, stale.ID)
	require.NoError(t, err)
	require.True(t, current.Pending(), "failed approval must leave the request pending")
}

func TestRosterChangeService_ApproveUsesStoredPlayerGender(t *testing.T) {
	ctx := t.Context()
	service, store := newRosterFixture(t, memory.DefaultSeed())

	input := replaceInput(false)
	input.Replacement = ReplacementInput{ExternalID: "EXT-6001", Name: "Eka Sari", Gender: "m"}
	pending, err := service.Submit(ctx, input)
	require.NoError(t, err)

	require.NoError(t, store.Stores().Players.Create(ctx, player.Player{
		ID:         "player-eka",
		ExternalID: "EXT-6001",
		Name:       "Eka Sari",
		Gender:     "female",
		ClubID:     memory.ClubIDHarbour,
	}))

	_, err = service.Approve(ctx, pending.ID, "admin-1")
	require.ErrorIs(t, err, eligibility.ErrGenderMismatch)

	reg, _, err := store.Stores().Registrations.GetByID(ctx, "reg-adi-badminton")
	require.NoError(t, err)
	require.Equal(t, "player-adi", reg.PlayerID)

	current, err := service.Get(ctx, pending.ID)
	require.NoError(t, err)
	require.True(t, current.Pending())
}

func TestRosterChangeService_SwapGenderMismatchNamesSide(t *testing.T) {
	ctx := t.Context()
	service, store := newRosterFixture(t, memory.DefaultSeed())

	_, err := service.Submit(ctx, SubmitRosterChangeInput{
		Action:               "swap",
		ClubID:               memory.ClubIDHarbour,
		RegistrationID:       "reg-adi-badminton",
		SecondRegistrationID: "reg-bunga-badminton",
		Reason:               "coach decision",
		ActorID:              "admin-1",
		AutoApprove:          true,
	})
	var mismatch *eligibility.GenderMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "player-adi", mismatch.PlayerID)
	require.Equal(t, memory.SportIDBadmintonW, mismatch.SportID)

	items, _ := service.List(ctx, ListRosterChangesInput{})
	require.Empty(t, items, "failed validation must not create a ledger entry")
	reg, _, _ := store.Stores().Registrations.GetByID(ctx, "reg-adi-badminton")
	require.Equal(t, memory.SportIDBadmintonM, reg.SportID)
}

func TestRosterChangeService_SwapExchangesSports(t *testing.T) {
	ctx := t.Context()
	service, store := newRosterFixture(t, memory.DefaultSeed())

	req, err := service.Submit(ctx, SubmitRosterChangeInput{
		Action:               "swap",
		ClubID:               memory.ClubIDHarbour,
		RegistrationID:       "reg-adi-100m",
		SecondRegistrationID: "reg-citra-futsal",
		Reason:               "lineup balance",
		ActorID:              "admin-1",
		AutoApprove:          true,
	})
	require.NoError(t, err)
	require.True(t, req.Approved())

	regs := store.Stores().Registrations
	first, _, _ := regs.GetByID(ctx, "reg-adi-100m")
	second, _, _ := regs.GetByID(ctx, "reg-citra-futsal")
	require.Equal(t, memory.SportIDFutsal, first.SportID)
	require.Equal(t, memory.SportID100m, second.SportID)
}

func TestRosterChangeService_SwapSameRegistration(t *testing.T) {
	service, _ := newRosterFixture(t, memory.DefaultSeed())

	_, err := service.Submit(t.Context(), SubmitRosterChangeInput{
		Action:               "swap",
		ClubID:               memory.ClubIDHarbour,
		RegistrationID:       "reg-adi-100m",
		SecondRegistrationID: "reg-adi-100m",
		Reason:               "typo",
		ActorID:              "admin-1",
	})
	require.ErrorIs(t, err, eligibility.ErrSameRegistration)
	require.Contains(t, err.Error(), "cannot swap the same registration")
}

func dayCapSeed() memory.Seed {
	return memory.Seed{
		Sports: []sport.Sport{
			{ID: "relay", Name: "Relay", GenderType: sport.GenderOpen, SportType: sport.TypeTeam, SportDay: "D", MaxCount: 4, ReserveCount: 1},
			{ID: "chess", Name: "Chess", GenderType: sport.GenderOpen, SportType: sport.TypeIndividual, SportDay: "D", MaxCount: 4, ReserveCount: 1},
			{ID: "darts", Name: "Darts", GenderType: sport.GenderOpen, SportType: sport.TypeIndividual, SportDay: "D2", MaxCount: 1, ReserveCount: 0},
		},
		Players: []player.Player{
			{ID: "p1", ExternalID: "E1", Name: "One", Gender: "male", ClubID: "c1"},
			{ID: "p2", ExternalID: "E2", Name: "Two", Gender: "female", ClubID: "c1"},
		},
		Registrations: []registration.Registration{
			{ID: "r1-relay", PlayerID: "p1", SportID: "relay", ClubID: "c1", MainPlayer: true},
			{ID: "r1-darts", PlayerID: "p1", SportID: "darts", ClubID: "c1", MainPlayer: true},
			{ID: "r2-relay", PlayerID: "p2", SportID: "relay", ClubID: "c1", MainPlayer: true},
		},
	}
}

func TestRosterChangeService_MoveChecksDayAndCapacity(t *testing.T) {
	ctx := t.Context()

	tests := []struct {
		name    string
		regID   string
		dest    string
		wantErr error
	}{
		{name: "same-day individual after team", regID: "r1-darts", dest: "chess", wantErr: eligibility.ErrDayCapExceeded},
		{name: "moved registration does not count against itself", regID: "r1-relay", dest: "chess"},
		{name: "destination full", regID: "r2-relay", dest: "darts", wantErr: eligibility.ErrCapacityExceeded},
		{name: "unknown destination", regID: "r1-relay", dest: "nope", wantErr: eligibility.ErrSportNotFound},
		{name: "already there", regID: "r1-relay", dest: "relay", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newRosterFixture(t, dayCapSeed())
			_, err := service.Submit(ctx, SubmitRosterChangeInput{
				Action:             "move",
				ClubID:             "c1",
				RegistrationID:     tt.regID,
				DestinationSportID: tt.dest,
				Reason:             "reshuffle",
				ActorID:            "admin-1",
				AutoApprove:        true,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			reg, _, _ := store.Stores().Registrations.GetByID(ctx, tt.regID)
			require.Equal(t, tt.dest, reg.SportID)
		})
	}
}

func TestRosterChangeService_ReplacementRejections(t *testing.T) {
	ctx := t.Context()

	tests := []struct {
		name    string
		mutate  func(*SubmitRosterChangeInput)
		wantErr error
		wantMsg string
	}{
		{name: "missing reason", mutate: func(in *SubmitRosterChangeInput) { in.Reason = "  " }, wantErr: ErrInvalidInput},
		{name: "unknown action", mutate: func(in *SubmitRosterChangeInput) { in.Action = "trade" }, wantErr: ErrInvalidInput},
		{name: "missing replacement", mutate: func(in *SubmitRosterChangeInput) { in.Replacement = ReplacementInput{} }, wantErr: ErrInvalidInput},
		{name: "unknown registration", mutate: func(in *SubmitRosterChangeInput) { in.RegistrationID = "reg-missing" }, wantErr: ErrNotFound},
		{name: "other club", mutate: func(in *SubmitRosterChangeInput) { in.ClubID = memory.ClubIDHill }, wantErr: eligibility.ErrClubMismatch},
		{name: "wrong sport", mutate: func(in *SubmitRosterChangeInput) { in.SportID = memory.SportIDChess }, wantErr: ErrInvalidInput},
		{name: "gender mismatch", mutate: func(in *SubmitRosterChangeInput) { in.Replacement.Gender = "female" }, wantErr: eligibility.ErrGenderMismatch},
		{
			name: "incoming player already in sport",
			mutate: func(in *SubmitRosterChangeInput) {
				in.RegistrationID = "reg-bunga-badminton"
				in.SportID = memory.SportIDBadmintonW
				in.Replacement = ReplacementInput{ExternalID: "EXT-1002", Name: "Bunga Lestari", Gender: "female"}
			},
			wantErr: eligibility.ErrDuplicateSport,
		},
		{
			name: "existing player checked against stored gender",
			mutate: func(in *SubmitRosterChangeInput) {
				in.Replacement = ReplacementInput{ExternalID: "EXT-1003", Name: "Citra Dewi", Gender: "m"}
			},
			wantErr: eligibility.ErrGenderMismatch,
			wantMsg: "Citra Dewi",
		},
		{
			name: "existing player from another club",
			mutate: func(in *SubmitRosterChangeInput) {
				in.Replacement = ReplacementInput{ExternalID: "EXT-2001", Name: "Dimas Saputra", Gender: "m"}
			},
			wantErr: eligibility.ErrClubMismatch,
			wantMsg: "player-dimas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newRosterFixture(t, memory.DefaultSeed())
			input := replaceInput(true)
			tt.mutate(&input)

			_, err := service.Submit(ctx, input)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				require.ErrorContains(t, err, tt.wantMsg)
			}

			items, _ := service.List(ctx, ListRosterChangesInput{})
			require.Empty(t, items)
			_, found := store.ReplacementRecord(input.Replacement.ExternalID)
			require.False(t, found)
		})
	}
}

type failingRegistrations struct {
	registration.Repository
}

func (failingRegistrations) UpdatePlayer(context.Context, string, string) error {
	return errors.New("disk full")
}

type faultyTransactor struct {
	store *memory.Store
}

func (f faultyTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores rosterchange.Stores) error) error {
	return f.store.WithinTx(ctx, func(ctx context.Context, stores rosterchange.Stores) error {
		stores.Registrations = failingRegistrations{Repository: stores.Registrations}
		return fn(ctx, stores)
	})
}

func TestRosterChangeService_ReplacementIsAtomic(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore(memory.DefaultSeed())
	service := NewRosterChangeService(faultyTransactor{store: store}, store.Stores().Requests, &sequenceIDs{}, logging.NewNop())

	_, err := service.Submit(ctx, replaceInput(true))
	require.Error(t, err)

	_, found := store.ReplacementRecord("EXT-5001")
	require.False(t, found, "replacement record must be rolled back")
	_, found, _ = store.Stores().Players.GetByExternalID(ctx, "EXT-5001")
	require.False(t, found, "new player must be rolled back")
	items, _ := service.List(ctx, ListRosterChangesInput{})
	require.Empty(t, items)
}

func TestRosterChangeService_ListRejectsUnknownStatus(t *testing.T) {
	service, _ := newRosterFixture(t, memory.DefaultSeed())
	_, err := service.List(t.Context(), ListRosterChangesInput{Status: "archived"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

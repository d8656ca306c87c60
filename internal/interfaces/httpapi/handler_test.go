package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-portal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-portal/internal/platform/cache"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/riskibarqy/league-portal/internal/usecase"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "admin-secret"

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

type testServer struct {
	router http.Handler
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := logging.NewNop()
	store := memory.NewStore(memory.DefaultSeed())
	stores := store.Stores()

	bracketService := usecase.NewBracketService(store.Matches(), stores.Sports, cache.NewStore(0), 2, logger)
	scoreService := usecase.NewScoreService(store.Matches(), usecase.ChangeNotifiers{bracketService}, logger)
	eligibilityService := usecase.NewEligibilityService(stores.Players, stores.Sports, stores.Registrations)
	rosterService := usecase.NewRosterChangeService(store, stores.Requests, nil, logger)

	handler := NewHandler(bracketService, scoreService, eligibilityService, rosterService, nil, logger)
	return &testServer{
		router: NewRouter(handler, logger, []string{"*"}, testAdminToken),
		store:  store,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = sonic.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func adminHeader() http.Header {
	return http.Header{adminTokenHeader: []string{testAdminToken}}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	require.Equal(t, googleAPIVersion, out.APIVersion)
	return out
}

func TestHandler_GetBracket(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/sports/"+memory.SportIDFutsal+"/bracket", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[[]roundDTO](t, rec)
	require.Len(t, body.Data, 2)
	require.Equal(t, "Finals", body.Data[0].Title)
	require.Equal(t, "Semi Finals", body.Data[1].Title)
	require.Len(t, body.Data[1].Seeds, 2)

	final := body.Data[0].Seeds[0]
	require.Equal(t, "TBD", final.Teams[0].Name)
	require.Equal(t, "TBD", final.Teams[1].Name)
	require.Equal(t, "match-futsal-sf1", final.ParentMatch1ID)
	require.Equal(t, "scheduled", final.Status)
}

func TestHandler_GetBracket_UnknownSport(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/sports/sport-curling/bracket", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody[any](t, rec)
	require.NotNil(t, body.Error)
	require.Equal(t, "NOT_FOUND", body.Error.Status)
}

func TestHandler_GetBrackets(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/brackets?sport_id="+memory.SportIDFutsal+","+memory.SportIDChess, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string][]roundDTO](t, rec)
	require.Len(t, body.Data[memory.SportIDFutsal], 2)
	require.Contains(t, body.Data, memory.SportIDChess)
	require.Empty(t, body.Data[memory.SportIDChess])

	rec = srv.do(t, http.MethodGet, "/v1/brackets", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SubmitScore_AdvancesWinnerIntoFinal(t *testing.T) {
	srv := newTestServer(t)

	// Prime the bracket cache so the change notification has something to drop.
	rec := srv.do(t, http.MethodGet, "/v1/sports/"+memory.SportIDFutsal+"/bracket", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/matches/match-futsal-sf1/score",
		map[string]int{"team1_score": 3, "team2_score": 1}, adminHeader())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decodeBody[scoreResultDTO](t, rec)
	require.Equal(t, string(usecase.OutcomeWinner), result.Data.Outcome)
	require.Equal(t, "team-harbour-a", result.Data.WinnerID)
	require.Equal(t, []advancedSlotDTO{{MatchID: "match-futsal-final", Slot: 1}}, result.Data.Advanced)

	rec = srv.do(t, http.MethodGet, "/v1/sports/"+memory.SportIDFutsal+"/bracket", nil, nil)
	bracketBody := decodeBody[[]roundDTO](t, rec)
	final := bracketBody.Data[0].Seeds[0]
	require.Equal(t, "team-harbour-a", final.Teams[0].ID)
	require.Equal(t, "Harbour A", final.Teams[0].Name)
	require.Equal(t, "TBD", final.Teams[1].Name)

	semi := bracketBody.Data[1].Seeds[0]
	require.Equal(t, [2]int{3, 1}, semi.Score)
	require.Equal(t, "completed", semi.Status)
}

func TestHandler_SubmitScore_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		header http.Header
		want   int
	}{
		{name: "missing token", body: map[string]int{"team1_score": 1, "team2_score": 0}, want: http.StatusUnauthorized},
		{name: "negative score", body: map[string]int{"team1_score": -1, "team2_score": 0}, header: adminHeader(), want: http.StatusBadRequest},
		{name: "missing score", body: map[string]int{"team1_score": 2}, header: adminHeader(), want: http.StatusBadRequest},
		{name: "unknown field", body: map[string]int{"team1_score": 2, "team2_score": 1, "team3_score": 0}, header: adminHeader(), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/v1/matches/match-futsal-sf2/score", tt.body, tt.header)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	rec := srv.do(t, http.MethodPost, "/v1/matches/match-missing/score",
		map[string]int{"team1_score": 2, "team2_score": 1}, adminHeader())
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func replaceBody() map[string]any {
	return map[string]any{
		"action":          "replace",
		"club_id":         memory.ClubIDHarbour,
		"registration_id": "reg-adi-badminton",
		"replacement": map[string]string{
			"external_id": "EXT-5001",
			"name":        "Eko Wibowo",
			"gender":      "male",
		},
		"reason":   "injured ankle",
		"actor_id": "officer-1",
	}
}

func TestHandler_RosterChange_OfficerFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()

	rec := srv.do(t, http.MethodPost, "/v1/roster-changes", replaceBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[rosterChangeDTO](t, rec).Data
	require.Nil(t, created.Status)
	require.Equal(t, "pending", created.StatusLabel)
	require.Equal(t, "player-adi", created.OldPlayerID)

	reg, _, err := srv.store.Stores().Registrations.GetByID(ctx, "reg-adi-badminton")
	require.NoError(t, err)
	require.Equal(t, "player-adi", reg.PlayerID)

	rec = srv.do(t, http.MethodGet, "/v1/roster-changes?club_id="+memory.ClubIDHarbour+"&status=pending", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeBody[[]rosterChangeDTO](t, rec).Data
	require.Len(t, pending, 1)
	require.Equal(t, created.ID, pending[0].ID)

	approvePath := "/v1/admin/roster-changes/" + created.ID + "/approve"
	rec = srv.do(t, http.MethodPost, approvePath, map[string]string{"approver_id": "admin-1"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, approvePath, map[string]string{"approver_id": "admin-1"}, adminHeader())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decodeBody[rosterChangeDTO](t, rec).Data
	require.NotNil(t, approved.Status)
	require.True(t, *approved.Status)
	require.Equal(t, "admin-1", approved.ApprovedBy)
	require.NotEmpty(t, approved.ApprovedAt)

	reg, _, err = srv.store.Stores().Registrations.GetByID(ctx, "reg-adi-badminton")
	require.NoError(t, err)
	require.NotEqual(t, "player-adi", reg.PlayerID)

	rec = srv.do(t, http.MethodPost, "/v1/admin/roster-changes/"+created.ID+"/reject",
		map[string]string{"approver_id": "admin-2"}, adminHeader())
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/roster-changes/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "approved", decodeBody[rosterChangeDTO](t, rec).Data.StatusLabel)
}

func TestHandler_RosterChange_AdminDirectIsApprovedAtOnce(t *testing.T) {
	srv := newTestServer(t)

	body := replaceBody()
	body["actor_id"] = "admin-9"
	rec := srv.do(t, http.MethodPost, "/v1/admin/roster-changes", body, adminHeader())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody[rosterChangeDTO](t, rec).Data
	require.NotNil(t, created.Status)
	require.True(t, *created.Status)
	require.Equal(t, "admin-9", created.ApprovedBy)

	rec = srv.do(t, http.MethodGet, "/v1/roster-changes?status=pending", nil, nil)
	require.Empty(t, decodeBody[[]rosterChangeDTO](t, rec).Data)

	rec = srv.do(t, http.MethodPost, "/v1/admin/roster-changes", body, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_RosterChange_ReplacementWithoutGenderIntoOpenSport(t *testing.T) {
	srv := newTestServer(t)

	body := replaceBody()
	body["registration_id"] = "reg-citra-futsal"
	body["replacement"] = map[string]string{"external_id": "EXT-7001", "name": "Gilang Ramadhan"}
	rec := srv.do(t, http.MethodPost, "/v1/admin/roster-changes", body, adminHeader())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	reg, _, err := srv.store.Stores().Registrations.GetByID(t.Context(), "reg-citra-futsal")
	require.NoError(t, err)
	incoming, found, err := srv.store.Stores().Players.GetByExternalID(t.Context(), "EXT-7001")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, incoming.ID, reg.PlayerID)
	require.Empty(t, incoming.Gender)

	body["registration_id"] = "reg-adi-badminton"
	body["replacement"] = map[string]string{"external_id": "EXT-7002", "name": "Hana Putri"}
	rec = srv.do(t, http.MethodPost, "/v1/admin/roster-changes", body, adminHeader())
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestHandler_RosterChange_SwapGenderMismatchIsUnprocessable(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/roster-changes", map[string]any{
		"action":                 "swap",
		"club_id":                memory.ClubIDHarbour,
		"registration_id":        "reg-adi-badminton",
		"second_registration_id": "reg-bunga-badminton",
		"reason":                 "pairing change",
		"actor_id":               "officer-1",
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	body := decodeBody[any](t, rec)
	require.Equal(t, "ineligible", body.Error.Errors[0].Reason)
	require.Contains(t, body.Error.Message, "Adi Pratama")
}

func TestHandler_RosterChange_RequestValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "unknown action", body: map[string]any{"action": "trade", "club_id": "c", "registration_id": "r", "reason": "x", "actor_id": "a"}},
		{name: "swap without second registration", body: map[string]any{"action": "swap", "club_id": "c", "registration_id": "r", "reason": "x", "actor_id": "a"}},
		{name: "move without destination", body: map[string]any{"action": "move", "club_id": "c", "registration_id": "r", "reason": "x", "actor_id": "a"}},
		{name: "replace without replacement", body: map[string]any{"action": "replace", "club_id": "c", "registration_id": "r", "reason": "x", "actor_id": "a"}},
		{name: "missing reason", body: map[string]any{"action": "move", "club_id": "c", "registration_id": "r", "destination_sport_id": "s", "actor_id": "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/v1/roster-changes", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := srv.do(t, http.MethodGet, "/v1/roster-changes?status=maybe", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/roster-changes/req-missing", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_CheckEligibility(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name         string
		playerID     string
		sportID      string
		wantEligible bool
	}{
		{name: "open sport", playerID: "player-bunga", sportID: memory.SportIDFutsal, wantEligible: true},
		{name: "gender mismatch", playerID: "player-adi", sportID: memory.SportIDBadmintonW},
		{name: "already registered", playerID: "player-adi", sportID: memory.SportIDBadmintonM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/v1/eligibility/check",
				map[string]string{"player_id": tt.playerID, "sport_id": tt.sportID}, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			got := decodeBody[eligibilityDTO](t, rec).Data
			require.Equal(t, tt.wantEligible, got.Eligible)
			if !tt.wantEligible {
				require.NotEmpty(t, got.Reason)
			}
		})
	}

	rec := srv.do(t, http.MethodPost, "/v1/eligibility/check", map[string]string{"player_id": "player-adi"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_LiveDisabled(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/sports/"+memory.SportIDFutsal+"/bracket/live", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_SystemRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]string{"status": "ok"}, decodeBody[map[string]string](t, rec).Data)

	rec = srv.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "league_http_requests_total")
}

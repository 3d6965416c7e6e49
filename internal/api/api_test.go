package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palaro/guessquiz/internal/api"
	"github.com/palaro/guessquiz/internal/api/response"
	"github.com/palaro/guessquiz/internal/factory"
	"github.com/palaro/guessquiz/internal/testutil"
)

// testServer wraps the router and app for integration tests
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app, err := factory.NewTestApp()
	require.NoError(t, err)
	require.NoError(t, app.LoadTestCatalog(t.TempDir(),
		"giraffe.png", "eiffel tower.jpg", "banana.jpg"))

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    app.AuthService,
		RosterService:  app.RosterService,
		GameController: app.GameController,
		CatalogService: app.CatalogService,
		Hub:            app.Hub,
		Broadcaster:    app.Broadcaster,
		Clock:          app.MockClock,
		AdvanceDelay:   app.AdvanceDelay,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// participantToken creates a session and joins the roster
func (ts *testServer) participantToken(t *testing.T, username string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/session",
		map[string]string{"username": username}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	rr = ts.request(http.MethodPost, "/api/v1/join", nil, resp.SessionToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	return resp.SessionToken
}

func (ts *testServer) operatorToken(t *testing.T) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/session/operator", map[string]string{
		"username":   string(factory.TestOperatorUsername),
		"passphrase": factory.TestOperatorPassphrase,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/session",
		map[string]string{"username": "alice", "display_name": "Alice A"}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.False(t, resp.Operator)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestCreateSessionRequiresUsername(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/session", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOperatorLogin(t *testing.T) {
	ts := newTestServer(t)

	token := ts.operatorToken(t)
	assert.NotEmpty(t, token)
}

func TestOperatorLoginRejectsBadPassphrase(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/session/operator", map[string]string{
		"username":   string(factory.TestOperatorUsername),
		"passphrase": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJoinRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/join", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJoinIsIdempotent(t *testing.T) {
	ts := newTestServer(t)
	token := ts.participantToken(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/join", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.New)
	assert.Equal(t, "alice", resp.Participant.Username)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.participantToken(t, "alice")

	rr := ts.request(http.MethodGet, "/api/v1/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Participant
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, 0, resp.Score)
}

func TestRules(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rules", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Rules
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.PointsPerAnswer)
	assert.Equal(t, 1, resp.HintPenalty)
	assert.Equal(t, 4, resp.MaxHints)
	assert.Equal(t, 60, resp.AdvanceDelaySecs)
	assert.False(t, resp.GameActive)
}

func TestAdminRoutesRequireOperator(t *testing.T) {
	ts := newTestServer(t)
	token := ts.participantToken(t, "alice")

	for _, path := range []string{
		"/api/v1/admin/game/start",
		"/api/v1/admin/game/next",
		"/api/v1/admin/game/end",
		"/api/v1/admin/reset",
	} {
		rr := ts.request(http.MethodPost, path, nil, token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestGameRoundFlow(t *testing.T) {
	ts := newTestServer(t)
	operator := ts.operatorToken(t)
	alice := ts.participantToken(t, "alice")
	bob := ts.participantToken(t, "bob")

	// Starting the game activates it but opens no round yet
	rr := ts.request(http.MethodPost, "/api/v1/admin/game/start", nil, operator)
	require.Equal(t, http.StatusOK, rr.Code)

	var status response.GameStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, 3, status.PuzzlesRemaining)
	assert.Empty(t, status.ImageURL)

	rr = ts.request(http.MethodGet, "/api/v1/puzzle/image", nil, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	// The first advance opens a round; identity shuffle pops the last
	// catalog entry
	rr = ts.request(http.MethodPost, "/api/v1/admin/game/next", nil, operator)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, 2, status.PuzzlesRemaining)

	// The image is served for the open round
	rr = ts.request(http.MethodGet, "/api/v1/puzzle/image", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test image", rr.Body.String())

	// Wrong answer is a 204, not an error
	rr = ts.request(http.MethodPost, "/api/v1/answer",
		map[string]string{"text": "wrong"}, bob)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// A hint costs a point off the award
	rr = ts.request(http.MethodPost, "/api/v1/hint", nil, alice)
	require.Equal(t, http.StatusOK, rr.Code)

	var hint response.Hint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hint))
	assert.Equal(t, 1, hint.HintsGiven)
	assert.Equal(t, 3, hint.Remaining)
	assert.Equal(t, 4, hint.PotentialPoints)
	assert.Contains(t, hint.Text, "Length: 6 letters")

	// Correct answer wins the round with the reduced award
	rr = ts.request(http.MethodPost, "/api/v1/answer",
		map[string]string{"text": "Banana"}, alice)
	require.Equal(t, http.StatusOK, rr.Code)

	var result response.RoundResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "alice", result.Winner)
	assert.Equal(t, "banana", result.Answer)
	assert.Equal(t, 4, result.Points)
	assert.Equal(t, 1, result.Rank)

	// The round is closed for everyone else
	rr = ts.request(http.MethodPost, "/api/v1/answer",
		map[string]string{"text": "banana"}, bob)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Scores reflect the win
	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var scores response.ScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	assert.Equal(t, 2, scores.TotalPlayers)
	assert.Equal(t, 1, scores.ActivePlayers)
	assert.Equal(t, 4, scores.HighestScore)
	require.NotEmpty(t, scores.Leaderboard)
	assert.Equal(t, "alice", scores.Leaderboard[0].Username)
}

func TestAnswerWithoutJoiningIsIgnored(t *testing.T) {
	ts := newTestServer(t)
	operator := ts.operatorToken(t)
	alice := ts.participantToken(t, "alice")

	// bob has a session but never joined the roster
	rr := ts.request(http.MethodPost, "/api/v1/session",
		map[string]string{"username": "bob"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var auth response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &auth))
	bob := auth.SessionToken

	require.Equal(t, http.StatusOK,
		ts.request(http.MethodPost, "/api/v1/admin/game/start", nil, operator).Code)
	require.Equal(t, http.StatusOK,
		ts.request(http.MethodPost, "/api/v1/admin/game/next", nil, operator).Code)

	// A correct guess from a non-member neither wins nor spoils
	rr = ts.request(http.MethodPost, "/api/v1/answer",
		map[string]string{"text": "banana"}, bob)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// The round is still open for roster members
	rr = ts.request(http.MethodPost, "/api/v1/answer",
		map[string]string{"text": "banana"}, alice)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHintWithoutActiveGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.participantToken(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/hint", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_ACTIVE_GAME")
}

func TestPuzzleImageWithoutActiveGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/puzzle/image", nil, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestOperatorNextAndEnd(t *testing.T) {
	ts := newTestServer(t)
	operator := ts.operatorToken(t)
	ts.participantToken(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/admin/game/start", nil, operator)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/admin/game/next", nil, operator)
	require.Equal(t, http.StatusOK, rr.Code)

	var status response.GameStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, 2, status.PuzzlesRemaining)

	rr = ts.request(http.MethodPost, "/api/v1/admin/game/end", nil, operator)
	require.Equal(t, http.StatusOK, rr.Code)

	var standings response.Standings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	assert.Len(t, standings.Standings, 1)

	// Ending with no game running still reports the standings
	rr = ts.request(http.MethodPost, "/api/v1/admin/game/end", nil, operator)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	assert.Len(t, standings.Standings, 1)
}

func TestResetRequiresConfirmation(t *testing.T) {
	ts := newTestServer(t)
	operator := ts.operatorToken(t)
	ts.participantToken(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/admin/reset", nil, operator)
	require.Equal(t, http.StatusOK, rr.Code)

	var challenge response.ResetChallenge
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &challenge))
	require.NotEmpty(t, challenge.ConfirmToken)

	// Scores are untouched until confirmation
	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, "")
	var scores response.ScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	assert.Equal(t, 1, scores.TotalPlayers)

	rr = ts.request(http.MethodPost, "/api/v1/admin/reset/confirm", map[string]string{
		"confirm_token": challenge.ConfirmToken,
		"action":        "confirm",
	}, operator)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	assert.Equal(t, 0, scores.TotalPlayers)
}

func TestResetCancelKeepsScores(t *testing.T) {
	ts := newTestServer(t)
	operator := ts.operatorToken(t)
	ts.participantToken(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/admin/reset", nil, operator)
	require.Equal(t, http.StatusOK, rr.Code)

	var challenge response.ResetChallenge
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &challenge))

	rr = ts.request(http.MethodPost, "/api/v1/admin/reset/confirm", map[string]string{
		"confirm_token": challenge.ConfirmToken,
		"action":        "cancel",
	}, operator)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// A cancelled token cannot be replayed
	rr = ts.request(http.MethodPost, "/api/v1/admin/reset/confirm", map[string]string{
		"confirm_token": challenge.ConfirmToken,
		"action":        "confirm",
	}, operator)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, "")
	var scores response.ScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	assert.Equal(t, 1, scores.TotalPlayers)
}

func TestResetConfirmTokenExpires(t *testing.T) {
	ts := newTestServer(t)
	operator := ts.operatorToken(t)

	rr := ts.request(http.MethodPost, "/api/v1/admin/reset", nil, operator)
	require.Equal(t, http.StatusOK, rr.Code)

	var challenge response.ResetChallenge
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &challenge))

	ts.app.MockClock.Advance(2 * time.Minute)

	rr = ts.request(http.MethodPost, "/api/v1/admin/reset/confirm", map[string]string{
		"confirm_token": challenge.ConfirmToken,
		"action":        "confirm",
	}, operator)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

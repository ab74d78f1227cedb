package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/evilhangman/internal/daily"
	"github.com/robalobadob/evilhangman/internal/game"
	"github.com/robalobadob/evilhangman/internal/metrics"
	"github.com/robalobadob/evilhangman/internal/store"
	"github.com/robalobadob/evilhangman/internal/words"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, list ...string) (*Server, store.Store) {
	t.Helper()
	if len(list) == 0 {
		list = []string{"flex", "ibex", "goal", "cool", "tool", "ab", "cat", "dog", "cow"}
	}
	lx, err := words.New(list)
	require.NoError(t, err)
	st := store.NewMemoryStore()
	srv := New(lx, st, metrics.New(), Config{
		JWTSecret: "test-secret",
		Now:       func() time.Time { return fixedNow },
	})
	return srv, st
}

func do(t *testing.T, srv *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rr)["error"]
}

func startGame(t *testing.T, srv *Server, length, guesses int) roundRes {
	t.Helper()
	rr := do(t, srv, http.MethodPost, "/game/new", newGameReq{Length: length, Guesses: guesses}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[roundRes](t, rr)
}

func guess(t *testing.T, srv *Server, g roundRes, letter string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, srv, http.MethodPost, "/game/guess", guessReq{GameID: g.GameID, Guess: letter}, g.Token)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := do(t, srv, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode[map[string]bool](t, rr)["ok"])
}

func TestLengths(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := do(t, srv, http.MethodGet, "/lengths", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode[map[string][]lengthInfo](t, rr)["lengths"]
	assert.Equal(t, []lengthInfo{{2, 1}, {3, 3}, {4, 5}}, got)
}

func TestNewGame(t *testing.T) {
	srv, st := newTestServer(t)
	rr := do(t, srv, http.MethodPost, "/game/new", newGameReq{Length: 4, Guesses: 6}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	g := decode[roundRes](t, rr)
	assert.NotEmpty(t, g.GameID)
	assert.NotEmpty(t, g.Token)
	assert.Equal(t, "----", g.Pattern)
	assert.Equal(t, 6, g.GuessesLeft)
	assert.Equal(t, game.StatePlaying, g.State)
	assert.Empty(t, g.Word)

	saved, err := st.Get(context.Background(), g.GameID)
	require.NoError(t, err)
	assert.Len(t, saved.Candidates, 5)

	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "evilhangman_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, g.Token, cookie.Value)
}

func TestNewGameRejects(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/game/new", newGameReq{Length: 9, Guesses: 3}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "unknown_length", errorOf(t, rr))

	rr = do(t, srv, http.MethodPost, "/game/new", newGameReq{Length: 4, Guesses: 0}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_guesses", errorOf(t, rr))

	req := httptest.NewRequest(http.MethodPost, "/game/new", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuessEliminatesFamily(t *testing.T) {
	srv, st := newTestServer(t)
	g := startGame(t, srv, 4, 5)

	rr := guess(t, srv, g, "E")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decode[roundRes](t, rr)
	assert.Equal(t, "----", res.Pattern)
	assert.Equal(t, 4, res.GuessesLeft)
	assert.Equal(t, []string{"e"}, res.Guessed)
	assert.Equal(t, game.StatePlaying, res.State)
	assert.Empty(t, res.Token)

	saved, err := st.Get(context.Background(), g.GameID)
	require.NoError(t, err)
	assert.Equal(t, []string{"goal", "cool", "tool"}, saved.Candidates)
}

func TestGuessRequiresMatchingToken(t *testing.T) {
	srv, _ := newTestServer(t)
	a := startGame(t, srv, 4, 5)
	b := startGame(t, srv, 3, 5)

	rr := do(t, srv, http.MethodPost, "/game/guess", guessReq{GameID: a.GameID, Guess: "e"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, srv, http.MethodPost, "/game/guess", guessReq{GameID: a.GameID, Guess: "e"}, b.Token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, srv, http.MethodPost, "/game/guess", guessReq{GameID: a.GameID, Guess: "e"}, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGuessAcceptsCookie(t *testing.T) {
	srv, _ := newTestServer(t)
	g := startGame(t, srv, 4, 5)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(guessReq{GameID: g.GameID, Guess: "o"}))
	req := httptest.NewRequest(http.MethodPost, "/game/guess", &buf)
	req.AddCookie(&http.Cookie{Name: "evilhangman_token", Value: g.Token})
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGuessExpiredToken(t *testing.T) {
	srv, _ := newTestServer(t)
	g := startGame(t, srv, 4, 5)

	srv.cfg.Now = func() time.Time { return fixedNow.Add(48 * time.Hour) }
	rr := guess(t, srv, g, "e")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGuessInvalid(t *testing.T) {
	srv, _ := newTestServer(t)
	g := startGame(t, srv, 4, 5)

	for _, bad := range []string{"", "ab", "1", "-"} {
		rr := guess(t, srv, g, bad)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "guess %q", bad)
		assert.Equal(t, "invalid_guess", errorOf(t, rr))
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	srv, st := newTestServer(t)
	g := startGame(t, srv, 4, 5)
	huge := strings.Repeat("e", 2*maxBodyBytes)

	rr := guess(t, srv, g, huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "body_too_large", errorOf(t, rr))

	rr = do(t, srv, http.MethodPost, "/game/new", map[string]any{"length": 4, "guesses": 5, "pad": huge}, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	rr = do(t, srv, http.MethodPost, "/daily/new", map[string]any{"pad": huge}, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	saved, err := st.Get(context.Background(), g.GameID)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.GuessesLeft)
}

func TestGuessLostDeletesRound(t *testing.T) {
	srv, st := newTestServer(t)
	g := startGame(t, srv, 3, 1)

	rr := guess(t, srv, g, "z")
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[roundRes](t, rr)
	assert.Equal(t, game.StateLost, res.State)
	assert.Equal(t, "cat", res.Word)
	assert.Equal(t, 0, res.GuessesLeft)

	_, err := st.Get(context.Background(), g.GameID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	rr = guess(t, srv, g, "a")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGuessWon(t *testing.T) {
	srv, _ := newTestServer(t)
	g := startGame(t, srv, 2, 5)

	rr := guess(t, srv, g, "a")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a-", decode[roundRes](t, rr).Pattern)

	rr = guess(t, srv, g, "b")
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[roundRes](t, rr)
	assert.Equal(t, game.StateWon, res.State)
	assert.Equal(t, "ab", res.Word)
	assert.Equal(t, res.Pattern, res.Word)
}

func TestDailyNew(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/daily/new", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	g := decode[roundRes](t, rr)
	want := daily.PickLength(fixedNow, "local_dev_salt", []int{2, 3, 4})
	assert.Equal(t, want, g.Length)
	assert.Len(t, g.Pattern, want)
	assert.Equal(t, 10, g.GuessesLeft)

	rr = do(t, srv, http.MethodPost, "/daily/new", newGameReq{Guesses: 3}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, decode[roundRes](t, rr).GuessesLeft)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	g := startGame(t, srv, 3, 1)
	require.Equal(t, http.StatusOK, guess(t, srv, g, "z").Code)

	rr := do(t, srv, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `evilhangman_rounds_started_total{mode="custom"} 1`)
	assert.Contains(t, body, `evilhangman_rounds_finished_total{outcome="lost"} 1`)
	assert.Contains(t, body, `evilhangman_guesses_total 1`)
}

func TestKeyedMutexForgetsKeys(t *testing.T) {
	k := newKeyedMutex()
	unlock := k.Lock("a")
	assert.Len(t, k.m, 1)
	unlock()
	assert.Empty(t, k.m)
}

// internal/httpserver/server.go
//
// HTTP server wiring for the evil hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/lengths", "/metrics".
//   - Round endpoints: POST /game/new, POST /game/guess, POST /daily/new.
//   - Game tokens (JWT) so only the client that started a round can play it.
//
// Notes:
//   - Rounds live in a store.Store between requests and are deleted once finished.
//   - Guesses on the same round are serialized with a per-ID lock.
//   - The lexicon is shared read-only by every request.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/evilhangman/internal/daily"
	"github.com/robalobadob/evilhangman/internal/game"
	"github.com/robalobadob/evilhangman/internal/metrics"
	"github.com/robalobadob/evilhangman/internal/store"
	"github.com/robalobadob/evilhangman/internal/words"
)

// Config carries the server's tunables; zero values fall back to defaults.
type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	CookieName    string
	SecureCookies bool
	ClientOrigin  string
	DailySalt     string
	DailyGuesses  int
	Now           func() time.Time // clock override for tests
}

func (c *Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Config) applyDefaults() {
	if c.JWTSecret == "" {
		c.JWTSecret = "dev_secret_change_me"
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.CookieName == "" {
		c.CookieName = "evilhangman_token"
	}
	if c.ClientOrigin == "" {
		c.ClientOrigin = "http://localhost:5173"
	}
	if c.DailySalt == "" {
		c.DailySalt = "local_dev_salt"
	}
	if c.DailyGuesses <= 0 {
		c.DailyGuesses = 10
	}
}

// Server bundles router, round store, lexicon and metrics.
type Server struct {
	r       *chi.Mux
	lex     *words.Lexicon
	store   store.Store
	metrics *metrics.Metrics
	cfg     Config
	locks   *keyedMutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(lex *words.Lexicon, st store.Store, m *metrics.Metrics, cfg Config) *Server {
	cfg.applyDefaults()
	s := &Server{
		r:       chi.NewRouter(),
		lex:     lex,
		store:   st,
		metrics: m,
		cfg:     cfg,
		locks:   newKeyedMutex(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "evilhangman",
			"endpoints": []string{"/health", "/lengths", "/metrics", "POST /game/new", "POST /game/guess", "POST /daily/new"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/lengths", s.handleLengths)
	s.r.Method(http.MethodGet, "/metrics", m.Handler())

	// --- rounds ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Post("/daily/new", s.handleDailyNew)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Handler exposes the router (useful for tests and http.Server wiring).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ ROUNDS -------------------------------------

type lengthInfo struct {
	Length int `json:"length"`
	Words  int `json:"words"`
}

func (s *Server) handleLengths(w http.ResponseWriter, r *http.Request) {
	out := []lengthInfo{}
	for _, n := range s.lex.Lengths() {
		out = append(out, lengthInfo{Length: n, Words: len(s.lex.Words(n))})
	}
	writeJSON(w, http.StatusOK, map[string]any{"lengths": out})
}

// newGameReq is the payload for POST /game/new and POST /daily/new.
// Length is ignored by /daily/new; a zero Guesses there uses the daily default.
type newGameReq struct {
	Length  int `json:"length"`
	Guesses int `json:"guesses"`
}

// roundRes describes a round after creation or a guess.
type roundRes struct {
	GameID      string     `json:"gameId"`
	Token       string     `json:"token,omitempty"`
	Length      int        `json:"length"`
	Pattern     string     `json:"pattern"`
	GuessesLeft int        `json:"guessesLeft"`
	Guessed     []string   `json:"guessed"`
	State       game.State `json:"state"`
	Word        string     `json:"word,omitempty"` // only once finished
}

func toRes(rd *game.Round) roundRes {
	return roundRes{
		GameID:      rd.ID,
		Length:      rd.Length,
		Pattern:     rd.Pattern,
		GuessesLeft: rd.GuessesLeft,
		Guessed:     rd.Guessed,
		State:       rd.State,
		Word:        rd.Word(),
	}
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeBodyErr(w, err)
		return
	}
	if !s.lex.Has(req.Length) {
		writeErr(w, http.StatusBadRequest, "unknown_length")
		return
	}
	s.startRound(w, r, req.Length, req.Guesses, "custom")
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeBodyErr(w, err)
		return
	}
	if req.Guesses == 0 {
		req.Guesses = s.cfg.DailyGuesses
	}
	length := daily.PickLength(s.cfg.now(), s.cfg.DailySalt, s.lex.Lengths())
	s.startRound(w, r, length, req.Guesses, "daily")
}

// startRound creates and stores a round, then answers with its token.
func (s *Server) startRound(w http.ResponseWriter, r *http.Request, length, guesses int, mode string) {
	if guesses <= 0 {
		writeErr(w, http.StatusBadRequest, "invalid_guesses")
		return
	}
	rd, err := game.NewRound(s.lex.Words(length), length, guesses)
	if err != nil {
		log.Error().Err(err).Int("length", length).Msg("new round")
		writeErr(w, http.StatusBadRequest, "invalid_round")
		return
	}
	if err := s.store.Save(r.Context(), rd); err != nil {
		log.Error().Err(err).Msg("save round")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(rd.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeErr(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setTokenCookie(w, tok, exp)
	s.metrics.RoundStarted(mode)
	log.Info().Str("gameId", rd.ID).Str("mode", mode).Int("length", length).Int("guesses", guesses).
		Int("candidates", len(rd.Candidates)).Msg("round started")

	res := toRes(rd)
	res.Token = tok
	writeJSON(w, http.StatusOK, res)
}

// guessReq is the payload for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// handleGuess applies one letter to a stored round.
// Finished rounds are removed from the store after the response is built.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeBodyErr(w, err)
		return
	}
	gid, err := s.tokenGameID(s.bearerOrCookie(r))
	if err != nil || gid != req.GameID {
		writeErr(w, http.StatusUnauthorized, "invalid_token")
		return
	}
	if len(req.Guess) != 1 {
		writeErr(w, http.StatusBadRequest, "invalid_guess")
		return
	}

	unlock := s.locks.Lock(req.GameID)
	defer unlock()

	rd, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "not_found")
			return
		}
		log.Error().Err(err).Str("gameId", req.GameID).Msg("load round")
		writeErr(w, http.StatusInternalServerError, "load_failed")
		return
	}

	out, err := rd.ApplyGuess(req.Guess[0])
	switch {
	case errors.Is(err, game.ErrInvalidGuess):
		writeErr(w, http.StatusBadRequest, "invalid_guess")
		return
	case errors.Is(err, game.ErrRoundFinished):
		writeErr(w, http.StatusBadRequest, "round_finished")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", rd.ID).Msg("round invariant broken")
		_ = s.store.Delete(r.Context(), rd.ID)
		writeErr(w, http.StatusInternalServerError, "internal")
		return
	}
	s.metrics.Guess(out)
	log.Debug().Str("gameId", rd.ID).Str("guess", string(out.Guess)).Int("families", out.Families).
		Int("remaining", out.Remaining).Str("pattern", out.Pattern).Msg("guess applied")

	if rd.Finished() {
		if err := s.store.Delete(r.Context(), rd.ID); err != nil {
			log.Warn().Err(err).Str("gameId", rd.ID).Msg("delete finished round")
		}
		log.Info().Str("gameId", rd.ID).Str("state", string(rd.State)).Msg("round finished")
	} else if err := s.store.Save(r.Context(), rd); err != nil {
		log.Error().Err(err).Str("gameId", rd.ID).Msg("save round")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, toRes(rd))
}

// ------------------------------- small util --------------------------------

// maxBodyBytes caps request bodies; every payload is a couple of small fields.
const maxBodyBytes = 4 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// writeBodyErr answers 413 for oversized bodies and 400 for anything else undecodable.
func writeBodyErr(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeErr(w, http.StatusRequestEntityTooLarge, "body_too_large")
		return
	}
	writeErr(w, http.StatusBadRequest, "bad_json")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// keyedMutex serializes work per key and forgets keys nobody holds.
type keyedMutex struct {
	mu sync.Mutex
	m  map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{m: make(map[string]*keyedEntry)}
}

// Lock blocks until key is free and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.m[key]
	if !ok {
		e = &keyedEntry{}
		k.m[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.m, key)
		}
		k.mu.Unlock()
	}
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/timesync/internal/participant"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, password string) *Store {
	t.Helper()
	hash := ""
	if password != "" {
		var err error
		hash, err = HashPassword(password)
		require.NoError(t, err)
	}
	return NewStore(securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32), hash)
}

// carry copies the response cookies onto a fresh request, like a browser would.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestStore_RosterRoundTrip(t *testing.T) {
	s := newStore(t, "")
	a, err := participant.New(participant.Input{Name: "Ana", TimeZone: "Europe/Madrid", WorkStart: "08:00", WorkEnd: "15:30"})
	require.NoError(t, err)
	b, err := participant.New(participant.Input{Name: "Ben", TimeZone: "Australia/Sydney", Email: "ben@example.org"})
	require.NoError(t, err)
	roster := participant.NewRoster(a, b)

	rec := httptest.NewRecorder()
	require.NoError(t, s.SetRoster(rec, httptest.NewRequest(http.MethodPost, "/", nil), roster))

	got := s.Roster(carry(rec))
	require.Equal(t, roster.List(), got.List())
}

func TestStore_RosterMissingOrTampered(t *testing.T) {
	s := newStore(t, "")
	require.Equal(t, 0, s.Roster(httptest.NewRequest(http.MethodGet, "/", nil)).Len())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: rosterCookie, Value: "garbage"})
	require.Equal(t, 0, s.Roster(req).Len())

	// a cookie signed by another store is rejected
	rec := httptest.NewRecorder()
	p, err := participant.New(participant.Input{Name: "X", TimeZone: "UTC"})
	require.NoError(t, err)
	require.NoError(t, newStore(t, "").SetRoster(rec, req, participant.NewRoster(p)))
	require.Equal(t, 0, s.Roster(carry(rec)).Len())
}

func TestStore_UnprotectedAlwaysGranted(t *testing.T) {
	s := newStore(t, "")
	require.False(t, s.Protected())

	rec := httptest.NewRecorder()
	s.RequireAccess(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStore_PasswordGate(t *testing.T) {
	s := newStore(t, "correct horse")
	require.True(t, s.Protected())

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	gate := s.RequireAccess(ok)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	require.ErrorIs(t, s.Grant(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil), "wrong"), ErrInvalidPassword)

	granted := httptest.NewRecorder()
	require.NoError(t, s.Grant(granted, httptest.NewRequest(http.MethodPost, "/login", nil), "correct horse"))

	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, carry(granted))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCheckPassword(t *testing.T) {
	h, err := HashPassword("pw")
	require.NoError(t, err)
	require.True(t, CheckPassword(h, "pw"))
	require.False(t, CheckPassword(h, "pW"))
}

package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/example/timesync/internal/participant"
	"github.com/example/timesync/internal/workhours"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("invalid password")

// Store keeps a browser session's roster and access grant in signed,
// encrypted cookies. Nothing is kept server side; closing the browser ends
// the session.
type Store struct {
	sc *securecookie.SecureCookie

	// passwordHash gates the UI when non-empty.
	passwordHash []byte
}

const (
	rosterCookie = "timesync_roster"
	accessCookie = "timesync_access"

	accessTTL = 12 * time.Hour
)

func NewStore(hashKey, blockKey []byte, passwordBcrypt string) *Store {
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	// rosters of a few dozen people still fit a single cookie
	sc.MaxLength(4096)
	// also bounds how long a roster cookie is honoured
	sc.MaxAge(int(accessTTL.Seconds()))
	return &Store{sc: sc, passwordHash: []byte(passwordBcrypt)}
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
	return err == nil
}

// Protected reports whether an access password is configured.
func (s *Store) Protected() bool { return len(s.passwordHash) > 0 }

// storedParticipant is the cookie form of a participant.
type storedParticipant struct {
	ID    string `json:"id"`
	Name  string `json:"n"`
	Zone  string `json:"z"`
	Start string `json:"s"`
	End   string `json:"e"`
	Email string `json:"m,omitempty"`
}

// Roster returns the session's roster, or an empty one when the cookie is
// missing or cannot be verified.
func (s *Store) Roster(r *http.Request) participant.Roster {
	c, err := r.Cookie(rosterCookie)
	if err != nil {
		return participant.NewRoster()
	}
	var stored []storedParticipant
	if err := s.sc.Decode(rosterCookie, c.Value, &stored); err != nil {
		return participant.NewRoster()
	}
	ps := make([]participant.Participant, 0, len(stored))
	for _, sp := range stored {
		start, err1 := workhours.Parse(sp.Start)
		end, err2 := workhours.Parse(sp.End)
		if err1 != nil || err2 != nil {
			continue
		}
		ps = append(ps, participant.Participant{
			ID:       sp.ID,
			Name:     sp.Name,
			TimeZone: sp.Zone,
			Work:     workhours.Window{Start: start, End: end},
			Email:    sp.Email,
		})
	}
	return participant.NewRoster(ps...)
}

// SetRoster writes the roster as a session cookie.
func (s *Store) SetRoster(w http.ResponseWriter, r *http.Request, roster participant.Roster) error {
	stored := make([]storedParticipant, 0, roster.Len())
	for _, p := range roster.List() {
		stored = append(stored, storedParticipant{
			ID:    p.ID,
			Name:  p.Name,
			Zone:  p.TimeZone,
			Start: p.Work.Start.String(),
			End:   p.Work.End.String(),
			Email: p.Email,
		})
	}
	encoded, err := s.sc.Encode(rosterCookie, stored)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     rosterCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	return nil
}

func (s *Store) ClearRoster(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     rosterCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Grant checks pw against the configured hash and, on success, sets the
// access cookie.
func (s *Store) Grant(w http.ResponseWriter, r *http.Request, pw string) error {
	if !s.Protected() {
		return nil
	}
	if !CheckPassword(string(s.passwordHash), pw) {
		return ErrInvalidPassword
	}
	encoded, err := s.sc.Encode(accessCookie, map[string]any{"ok": true, "v": 1})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(accessTTL.Seconds()),
	})
	return nil
}

func (s *Store) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func (s *Store) granted(r *http.Request) bool {
	if !s.Protected() {
		return true
	}
	c, err := r.Cookie(accessCookie)
	if err != nil {
		return false
	}
	val := map[string]any{}
	if err := s.sc.Decode(accessCookie, c.Value, &val); err != nil {
		return false
	}
	ok, _ := val["ok"].(bool)
	return ok
}

// RequireAccess redirects to /login unless the request carries a valid grant.
func (s *Store) RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.granted(r) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/example/timesync/internal/auth"
	"github.com/example/timesync/internal/calendar"
	"github.com/example/timesync/internal/participant"
	"github.com/example/timesync/internal/scheduler"
	"github.com/example/timesync/internal/timezone"
	"github.com/example/timesync/internal/workhours"
)

//go:embed templates/*.html static/*
var fs embed.FS

type Server struct {
	Auth    *auth.Store
	Planner *scheduler.Planner
	Builder *calendar.Builder
	Log     *slog.Logger

	// TopN caps the suggestion list; zero means scheduler.DefaultTopN.
	TopN int

	// Now is the clock used for the participant clocks and the reference
	// day. Defaults to time.Now.
	Now func() time.Time
}

type tmplData struct {
	Title     string
	Flash     string
	Protected bool
	Refresh   bool

	Reference string
	Zones     []timezone.Zone
	Defaults  workhours.Window

	Total       int
	Hours       []int
	Clocks      []scheduler.Clock
	Strips      []scheduler.Strip
	Suggest     bool
	Suggestions []suggestion
}

// suggestion is one ranked slot with its meeting and invite link.
type suggestion struct {
	Slot  scheduler.TimeSlot
	Event calendar.Event
	URL   string
}

var hours = func() []int {
	out := make([]int, scheduler.HoursPerDay)
	for i := range out {
		out[i] = i
	}
	return out
}()

var funcs = template.FuncMap{
	"zoneLabel": timezone.Label,
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.FileServer(http.FS(fs)))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(s.Auth.RequireAccess)
		pr.Get("/", s.handleHome)
		pr.Post("/participants", s.handleAdd)
		pr.Post("/participants/{id}/delete", s.handleRemove)
		pr.Post("/participants/clear", s.handleClear)
	})

	return otelhttp.NewHandler(r, "timesync")
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Server) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderHome(w, r, http.StatusOK, s.Auth.Roster(r), "")
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, status int, roster participant.Roster, flash string) {
	data, err := s.homeData(roster, s.now())
	if err != nil {
		s.logger().ErrorContext(r.Context(), "build home view", "err", err)
		http.Error(w, "failed to build suggestions", http.StatusInternalServerError)
		return
	}
	data.Flash = flash
	s.render(w, status, "templates/home.html", data)
}

// homeData computes everything the home page shows for roster at now.
func (s *Server) homeData(roster participant.Roster, now time.Time) (tmplData, error) {
	ps := roster.List()
	day := s.Planner.Day(now)
	data := tmplData{
		Title:     "TimeSync",
		Protected: s.Auth.Protected(),
		Refresh:   len(ps) > 0,
		Reference: day.Location().String(),
		Zones:     timezone.Catalog(),
		Defaults:  workhours.DefaultWindow(),
		Total:     len(ps),
		Hours:     hours,
		Clocks:    s.Planner.Clocks(ps, now),
		Strips:    s.Planner.Availability(ps, day),
	}
	// one person alone is not a meeting
	data.Suggest = len(ps) >= 2
	if !data.Suggest {
		return data, nil
	}

	topN := s.TopN
	if topN <= 0 {
		topN = scheduler.DefaultTopN
	}
	for _, slot := range scheduler.RankN(s.Planner.Generate(ps, day), topN) {
		ev, err := s.Builder.Describe(slot, ps, day)
		if err != nil {
			return tmplData{}, err
		}
		data.Suggestions = append(data.Suggestions, suggestion{Slot: slot, Event: ev, URL: calendar.URL(ev)})
	}
	return data, nil
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	roster := s.Auth.Roster(r)

	p, err := participant.New(participant.Input{
		Name:      r.FormValue("name"),
		TimeZone:  r.FormValue("timezone"),
		WorkStart: r.FormValue("work_start"),
		WorkEnd:   r.FormValue("work_end"),
		Email:     r.FormValue("email"),
	})
	if err != nil {
		s.renderHome(w, r, http.StatusUnprocessableEntity, roster, addFlash(err))
		return
	}

	if err := s.Auth.SetRoster(w, r, roster.Add(p)); err != nil {
		s.logger().WarnContext(r.Context(), "store roster", "err", err, "size", roster.Len()+1)
		s.renderHome(w, r, http.StatusUnprocessableEntity, roster, "The roster is full, remove someone first")
		return
	}
	s.logger().DebugContext(r.Context(), "participant added", "id", p.ID, "zone", p.TimeZone)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func addFlash(err error) string {
	switch {
	case errors.Is(err, participant.ErrEmptyName):
		return "Please enter a name"
	case errors.Is(err, timezone.ErrInvalidTimeZone):
		return "Unknown time zone"
	case errors.Is(err, workhours.ErrInvalidClock):
		return "Working hours must look like 09:00"
	default:
		return "Invalid participant: " + err.Error()
	}
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	roster, err := s.Auth.Roster(r).Remove(chi.URLParam(r, "id"))
	if errors.Is(err, participant.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err := s.Auth.SetRoster(w, r, roster); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearRoster(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if !s.Auth.Protected() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.render(w, http.StatusOK, "templates/login.html", tmplData{Title: "Sign in", Protected: true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err := s.Auth.Grant(w, r, strings.TrimSpace(r.FormValue("password")))
	if errors.Is(err, auth.ErrInvalidPassword) {
		s.render(w, http.StatusUnauthorized, "templates/login.html", tmplData{Title: "Sign in", Protected: true, Flash: "Invalid password"})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.Revoke(w)
	s.Auth.ClearRoster(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data tmplData) {
	t, err := template.New("").Funcs(funcs).ParseFS(fs,
		"templates/base.html",
		name,
	)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Start serves h on addr until ctx is cancelled, then drains for up to five
// seconds.
func Start(ctx context.Context, log *slog.Logger, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "err", err)
		}
	}()
	log.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

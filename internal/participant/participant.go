// Package participant holds the people taking part in a meeting search and
// the ordered roster the presentation layer keeps for them.
package participant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/timesync/internal/timezone"
	"github.com/example/timesync/internal/workhours"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrEmptyName = errors.New("name required")
	ErrNotFound  = errors.New("participant not found")
)

// Participant is immutable once created; the scheduling code only reads it.
type Participant struct {
	ID       string
	Name     string
	TimeZone string
	Work     workhours.Window

	// Email is the authoritative attendee identity when set. Without it the
	// calendar layer falls back to an address derived from Name.
	Email string
}

// Input is the raw form a participant is created from.
type Input struct {
	Name      string `validate:"required"`
	TimeZone  string `validate:"required,iana_tz"`
	WorkStart string `validate:"required,clock"`
	WorkEnd   string `validate:"required,clock"`
	Email     string `validate:"omitempty,email"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("iana_tz", func(fl validator.FieldLevel) bool {
		return timezone.Default().Validate(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := workhours.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

// New validates in and assigns a fresh id. Blank work hours default to
// 09:00-17:00. Unknown zones fail with timezone.ErrInvalidTimeZone so they
// never reach slot generation.
func New(in Input) (Participant, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.TimeZone = strings.TrimSpace(in.TimeZone)
	in.Email = strings.TrimSpace(in.Email)
	if strings.TrimSpace(in.WorkStart) == "" {
		in.WorkStart = workhours.DefaultStart.String()
	}
	if strings.TrimSpace(in.WorkEnd) == "" {
		in.WorkEnd = workhours.DefaultEnd.String()
	}

	if err := validate.Struct(in); err != nil {
		return Participant{}, mapValidation(err)
	}

	start, err := workhours.Parse(in.WorkStart)
	if err != nil {
		return Participant{}, err
	}
	end, err := workhours.Parse(in.WorkEnd)
	if err != nil {
		return Participant{}, err
	}

	return Participant{
		ID:       uuid.NewString(),
		Name:     in.Name,
		TimeZone: in.TimeZone,
		Work:     workhours.Window{Start: start, End: end},
		Email:    in.Email,
	}, nil
}

func mapValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		return ErrEmptyName
	case "TimeZone":
		return fmt.Errorf("%w: %q", timezone.ErrInvalidTimeZone, fe.Value())
	case "WorkStart", "WorkEnd":
		return fmt.Errorf("%s: %w: %q", strings.ToLower(fe.Field()), workhours.ErrInvalidClock, fe.Value())
	case "Email":
		return fmt.Errorf("invalid email %q", fe.Value())
	}
	return err
}

// Parse reads the CLI form "Name|Zone|Start|End[|email]". Start and End may be empty.
func Parse(s string) (Participant, error) {
	parts := strings.Split(s, "|")
	if len(parts) < 2 || len(parts) > 5 {
		return Participant{}, fmt.Errorf("participant %q: want Name|Zone[|Start|End[|Email]]", s)
	}
	in := Input{Name: parts[0], TimeZone: parts[1]}
	if len(parts) > 2 {
		in.WorkStart = parts[2]
	}
	if len(parts) > 3 {
		in.WorkEnd = parts[3]
	}
	if len(parts) > 4 {
		in.Email = parts[4]
	}
	p, err := New(in)
	if err != nil {
		return Participant{}, fmt.Errorf("participant %q: %w", s, err)
	}
	return p, nil
}

package participant

import (
	"slices"

	"github.com/samber/lo"
)

// Roster is the ordered working set of participants. Order is insertion order
// and is what slot participant lists follow. Mutations return a new Roster so
// a computation that already holds one never sees a half-applied change.
type Roster struct {
	items []Participant
}

func NewRoster(ps ...Participant) Roster {
	return Roster{items: slices.Clone(ps)}
}

func (r Roster) Add(p Participant) Roster {
	items := make([]Participant, 0, len(r.items)+1)
	items = append(items, r.items...)
	return Roster{items: append(items, p)}
}

// Remove drops the participant with id. ErrNotFound if there is none.
func (r Roster) Remove(id string) (Roster, error) {
	idx := slices.IndexFunc(r.items, func(p Participant) bool { return p.ID == id })
	if idx < 0 {
		return r, ErrNotFound
	}
	return Roster{items: slices.Delete(slices.Clone(r.items), idx, idx+1)}, nil
}

func (r Roster) Get(id string) (Participant, bool) {
	return lo.Find(r.items, func(p Participant) bool { return p.ID == id })
}

// List returns a copy of the participants in order.
func (r Roster) List() []Participant { return slices.Clone(r.items) }

func (r Roster) Len() int { return len(r.items) }

func (r Roster) Names() []string {
	return lo.Map(r.items, func(p Participant, _ int) string { return p.Name })
}

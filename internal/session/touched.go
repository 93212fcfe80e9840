package session

import (
	"sort"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/Domenick1991/pestbooking/internal/validation"
)

// Touched is the set of fields the user has edited at least once. It only
// grows during a session.
type Touched map[domain.Field]struct{}

func (t Touched) Mark(f domain.Field) {
	t[f] = struct{}{}
}

func (t Touched) MarkAll(fields []domain.Field) {
	for _, f := range fields {
		t.Mark(f)
	}
}

func (t Touched) Has(f domain.Field) bool {
	_, ok := t[f]
	return ok
}

// Filter keeps only the errors of touched fields.
func (t Touched) Filter(errs validation.FieldErrors) validation.FieldErrors {
	out := make(validation.FieldErrors, len(errs))
	for f, msg := range errs {
		if t.Has(f) {
			out[f] = msg
		}
	}
	return out
}

func (t Touched) Fields() []domain.Field {
	out := make([]domain.Field, 0, len(t))
	for f := range t {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

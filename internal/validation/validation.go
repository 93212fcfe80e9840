package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/Domenick1991/pestbooking/internal/domain"
)

const (
	MsgFirstNameRequired  = "Le prénom est requis"
	MsgLastNameRequired   = "Le nom est requis"
	MsgEmailRequired      = "L'email est requis"
	MsgEmailInvalid       = "Format d'email invalide"
	MsgPhoneRequired      = "Le téléphone est requis"
	MsgPhoneInvalid       = "Format de téléphone invalide"
	MsgStreetRequired     = "L'adresse est requise"
	MsgCityRequired       = "La ville est requise"
	MsgPostalCodeRequired = "Le code postal est requis"
	MsgPostalCodeInvalid  = "Le code postal doit contenir 5 chiffres"
)

// space is the whitespace class used by browsers for form input: ASCII
// whitespace plus \v, the Unicode space separators, line and paragraph
// separators and the byte order mark. RE2's \s alone is ASCII only.
const space = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	emailPattern      = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9\-+()]{8,}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
	whitespace        = regexp.MustCompile(`[` + space + `]+`)
)

// FieldErrors maps an invalid field to its message. A field that is absent
// is valid or has no rule.
type FieldErrors map[domain.Field]string

func (e FieldErrors) Has(f domain.Field) bool {
	_, ok := e[f]
	return ok
}

// rule returns a message when value is invalid, or "".
type rule func(value string) string

func required(msg string) rule {
	return func(v string) string {
		if strings.TrimFunc(v, isSpace) == "" {
			return msg
		}
		return ""
	}
}

func matches(re *regexp.Regexp, msg string) rule {
	return func(v string) string {
		if !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || r == '\uFEFF'
}

func phoneShape(v string) string {
	if !phonePattern.MatchString(whitespace.ReplaceAllString(v, "")) {
		return MsgPhoneInvalid
	}
	return ""
}

// rules lists, per field, the checks applied in order. The first failing
// check provides the field's only message.
var rules = map[domain.Field][]rule{
	domain.FieldFirstName:  {required(MsgFirstNameRequired)},
	domain.FieldLastName:   {required(MsgLastNameRequired)},
	domain.FieldEmail:      {required(MsgEmailRequired), matches(emailPattern, MsgEmailInvalid)},
	domain.FieldPhone:      {required(MsgPhoneRequired), phoneShape},
	domain.FieldStreet:     {required(MsgStreetRequired)},
	domain.FieldCity:       {required(MsgCityRequired)},
	domain.FieldPostalCode: {required(MsgPostalCodeRequired), matches(postalCodePattern, MsgPostalCodeInvalid)},
}

// Validate checks every required field of the draft. It never fails and
// has no side effects.
func Validate(d domain.Draft) FieldErrors {
	errs := FieldErrors{}
	for _, f := range domain.RequiredFields() {
		if msg := Field(f, d.Value(f)); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// Field validates a single value. Fields without rules always pass.
func Field(f domain.Field, value string) string {
	for _, check := range rules[f] {
		if msg := check(value); msg != "" {
			return msg
		}
	}
	return ""
}

// IsComplete is the submission gate: a valid draft plus a chosen date and
// time slot.
func IsComplete(d domain.Draft, selectedDate *calendar.Date, selectedTime string) bool {
	return len(Validate(d)) == 0 && selectedDate != nil && selectedTime != ""
}

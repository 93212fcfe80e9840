package domain

import "time"

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "REQUESTED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Record is the validated payload handed to the submission boundary.
// It is always passed by value and never modified after construction.
type Record struct {
	FirstName  string `json:"prenom"`
	LastName   string `json:"nom"`
	Company    string `json:"societe,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"telephone"`
	Street     string `json:"adresse"`
	City       string `json:"ville"`
	PostalCode string `json:"code_postal"`
	Date       string `json:"date_rdv"`
	Time       string `json:"heure_rdv"`
	Slug       string `json:"slug"`
}

// NewRecord freezes a draft and its schedule into a Record.
func NewRecord(d Draft, date, slot, slug string) Record {
	return Record{
		FirstName:  d.Identity.FirstName,
		LastName:   d.Identity.LastName,
		Company:    d.Identity.Company,
		Email:      d.Identity.Email,
		Phone:      d.Identity.Phone,
		Street:     d.Address.Street,
		City:       d.Address.City,
		PostalCode: d.Address.PostalCode,
		Date:       date,
		Time:       slot,
		Slug:       slug,
	}
}

type Booking struct {
	ID        int64         `json:"id"`
	Token     string        `json:"token"`
	Record    Record        `json:"record"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

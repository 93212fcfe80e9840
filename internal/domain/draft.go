package domain

// Field identifies one input of the booking form. Values match the
// identifiers used by the hosting page.
type Field string

const (
	FieldFirstName  Field = "prenom"
	FieldLastName   Field = "nom"
	FieldCompany    Field = "societe"
	FieldEmail      Field = "email"
	FieldPhone      Field = "telephone"
	FieldStreet     Field = "adresse"
	FieldCity       Field = "ville"
	FieldPostalCode Field = "code_postal"
)

type Section int

const (
	SectionIdentity Section = iota
	SectionAddress
)

var requiredFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldStreet,
	FieldCity,
	FieldPostalCode,
}

// RequiredFields returns the fields that carry validation rules, in form order.
func RequiredFields() []Field {
	return append([]Field(nil), requiredFields...)
}

// AllFields returns every editable field, including the optional company name.
func AllFields() []Field {
	return []Field{
		FieldFirstName,
		FieldLastName,
		FieldCompany,
		FieldEmail,
		FieldPhone,
		FieldStreet,
		FieldCity,
		FieldPostalCode,
	}
}

func ParseField(s string) (Field, bool) {
	for _, f := range AllFields() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

func (f Field) Section() Section {
	switch f {
	case FieldStreet, FieldCity, FieldPostalCode:
		return SectionAddress
	default:
		return SectionIdentity
	}
}

type Identity struct {
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Company   string `json:"societe"`
	Email     string `json:"email"`
	Phone     string `json:"telephone"`
}

type Address struct {
	Street     string `json:"adresse"`
	City       string `json:"ville"`
	PostalCode string `json:"code_postal"`
}

// Draft is the in-progress form state of one booking session.
type Draft struct {
	Identity Identity `json:"identity"`
	Address  Address  `json:"address"`
}

// Value returns the current value of f, or "" for unknown fields.
func (d Draft) Value(f Field) string {
	if f.Section() == SectionAddress {
		switch f {
		case FieldStreet:
			return d.Address.Street
		case FieldCity:
			return d.Address.City
		case FieldPostalCode:
			return d.Address.PostalCode
		}
		return ""
	}
	switch f {
	case FieldFirstName:
		return d.Identity.FirstName
	case FieldLastName:
		return d.Identity.LastName
	case FieldCompany:
		return d.Identity.Company
	case FieldEmail:
		return d.Identity.Email
	case FieldPhone:
		return d.Identity.Phone
	}
	return ""
}

// Set writes v into the section owning f. It reports false for unknown fields.
func (d *Draft) Set(f Field, v string) bool {
	if f.Section() == SectionAddress {
		switch f {
		case FieldStreet:
			d.Address.Street = v
		case FieldCity:
			d.Address.City = v
		case FieldPostalCode:
			d.Address.PostalCode = v
		default:
			return false
		}
		return true
	}
	switch f {
	case FieldFirstName:
		d.Identity.FirstName = v
	case FieldLastName:
		d.Identity.LastName = v
	case FieldCompany:
		d.Identity.Company = v
	case FieldEmail:
		d.Identity.Email = v
	case FieldPhone:
		d.Identity.Phone = v
	default:
		return false
	}
	return true
}

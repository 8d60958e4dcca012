package google

import (
	"github.com/caselink/caselink-backend/internal/models"
)

// Person mirrors the People API contact shape, restricted to the
// fields this system synchronizes.
type Person struct {
	ResourceName   string         `json:"resourceName,omitempty"`
	Names          []Name         `json:"names,omitempty"`
	EmailAddresses []EmailAddress `json:"emailAddresses,omitempty"`
	PhoneNumbers   []PhoneNumber  `json:"phoneNumbers,omitempty"`
	Addresses      []Address      `json:"addresses,omitempty"`
	Organizations  []Organization `json:"organizations,omitempty"`
	Birthdays      []Birthday     `json:"birthdays,omitempty"`
}

type Name struct {
	DisplayName string `json:"displayName,omitempty"`
	GivenName   string `json:"givenName,omitempty"`
	FamilyName  string `json:"familyName,omitempty"`
}

type EmailAddress struct {
	Value string `json:"value"`
}

type PhoneNumber struct {
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Address entries are slotted by Type (home/work). When the local
// contact has no data for a slot the entry is still emitted with empty
// fields: omitting it would silently drop the slot on Google's side
// rather than leave it blank.
type Address struct {
	Type          string `json:"type,omitempty"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	Region        string `json:"region"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

type Organization struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Birthday struct {
	Date Date `json:"date"`
}

type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type connectionsResponse struct {
	Connections []Person `json:"connections"`
}

// ToContact normalizes a remote person into the local contact shape.
// Total over any input: missing names or emails become empty strings,
// never NULL, to honor the store's non-null contract.
func (p *Person) ToContact() models.Contact {
	contact := models.Contact{}
	if p.ResourceName != "" {
		rn := p.ResourceName
		contact.GoogleResourceName = &rn
	}
	if len(p.Names) > 0 {
		contact.FirstName = p.Names[0].GivenName
		contact.LastName = p.Names[0].FamilyName
	}
	if len(p.EmailAddresses) > 0 {
		contact.EmailMain = p.EmailAddresses[0].Value
	}
	return contact
}

// PersonFromContact translates a local contact into the People API
// create payload. Array slots are fixed: addresses are always
// [home, work], phones always [home, work, mobile, fax], emails always
// two untyped entries. The home phone slot prefers the primary phone
// field and falls back to the legacy home phone field.
func PersonFromContact(c *models.Contact) *Person {
	homePhone := c.PhoneMain
	if homePhone == "" {
		homePhone = c.HomePhone
	}

	person := &Person{
		Names: []Name{{
			GivenName:  c.FirstName,
			FamilyName: c.LastName,
		}},
		EmailAddresses: []EmailAddress{
			{Value: c.EmailMain},
			{Value: c.EmailBackup},
		},
		PhoneNumbers: []PhoneNumber{
			{Value: homePhone, Type: "home"},
			{Value: c.WorkPhone, Type: "work"},
			{Value: c.CellPhone, Type: "mobile"},
			{Value: c.Fax, Type: "homeFax"},
		},
		Addresses: []Address{
			{
				Type:          "home",
				StreetAddress: c.HomeStreet,
				City:          c.HomeCity,
				Region:        c.HomeState,
				PostalCode:    c.HomeZip,
				Country:       c.HomeCountry,
			},
			{
				Type:          "work",
				StreetAddress: c.WorkStreet,
				City:          c.WorkCity,
				Region:        c.WorkState,
				PostalCode:    c.WorkZip,
				Country:       c.WorkCountry,
			},
		},
		Organizations: []Organization{{
			Name:  c.Company,
			Title: c.JobTitle,
			Type:  "work",
		}},
	}

	if c.Birthdate != nil {
		t := *c.Birthdate
		person.Birthdays = []Birthday{{
			Date: Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()},
		}}
	}

	return person
}

package dto

// ContactRequest carries user-entered contact fields. Birthdate is an
// ISO date string (2006-01-02) or empty.
type ContactRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	EmailMain   string `json:"emailMain"`
	EmailBackup string `json:"emailBackup"`

	PhoneMain string `json:"phoneMain"`
	HomePhone string `json:"homePhone"`
	WorkPhone string `json:"workPhone"`
	CellPhone string `json:"cellPhone"`
	Fax       string `json:"fax"`

	HomeStreet  string `json:"homeStreet"`
	HomeCity    string `json:"homeCity"`
	HomeState   string `json:"homeState"`
	HomeZip     string `json:"homeZip"`
	HomeCountry string `json:"homeCountry"`

	WorkStreet  string `json:"workStreet"`
	WorkCity    string `json:"workCity"`
	WorkState   string `json:"workState"`
	WorkZip     string `json:"workZip"`
	WorkCountry string `json:"workCountry"`

	Company  string `json:"company"`
	JobTitle string `json:"jobTitle"`

	Birthdate string `json:"birthdate"`
}

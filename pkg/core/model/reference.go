package model

// User is a team member account
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Driver is a traditional driver record with a numeric id
type Driver struct {
	ID    int64
	Name  string
	Phone string
}

// Volunteer is a registered volunteer. Older records carry only a combined
// Name; newer ones have FirstName/LastName.
type Volunteer struct {
	ID        int64
	FirstName string
	LastName  string
	Name      string
	Email     string
}

// HostContact is a contact person belonging to a host location. Contacts
// are stored nested inside their location record, so this struct carries
// json tags.
type HostContact struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// HostLocation is a site that hosts events, with its own contact list
type HostLocation struct {
	ID       int64
	Name     string
	Address  string
	Contacts []HostContact
}

// Recipient is a legacy recipient-organization record
type Recipient struct {
	ID   int64
	Name string
}

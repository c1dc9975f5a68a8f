package domain

// Contact represents a single directory record.
// It is immutable from the search core's perspective; the directory
// cache owns the collection and replaces it wholesale on refresh.
type Contact struct {
	// ID is the opaque, stable, unique identifier for the contact.
	ID string

	// Name is the display name. May be empty.
	Name string

	// Emails is the ordered list of email addresses. May be empty.
	Emails []string

	// Organization is the organisation or company name. May be empty.
	Organization string

	// PhotoURL is an optional URL to the contact's photo.
	PhotoURL string
}

// PrimaryEmail returns the first email address, or "" if the contact
// has none.
func (c Contact) PrimaryEmail() string {
	if len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0]
}

// DisplayName returns the name, falling back to the primary email and
// then the organisation so list rows are never blank.
func (c Contact) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if email := c.PrimaryEmail(); email != "" {
		return email
	}
	return c.Organization
}

package entity

// Contact is an address book entry. Email is unique across contacts.
type Contact struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	FavoriteColor string
}

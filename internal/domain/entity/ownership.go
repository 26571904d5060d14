package entity

// Owned is implemented by resources that record the user who created them.
type Owned interface {
	OwnerID() string
}

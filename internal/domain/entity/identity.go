// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Identity is a registered student or teacher. Role is the variant tag and
// selects the partition the record is stored in; it never changes after creation.
type Identity struct {
	ID           int64  // Assigned by the store on creation.
	Role         Role   // Which partition the identity lives in.
	Name         string // Given name, used as the display name.
	Surname      string // Family name.
	Email        string // Login key. Unique per partition, not across partitions.
	PasswordHash string // Output of the password hasher, never the raw password.
	DocumentURL  string // Durable URL of the credential document uploaded at registration.
}

// DisplayName returns the name shown to the user after login.
func (i *Identity) DisplayName() string {
	return i.Name
}

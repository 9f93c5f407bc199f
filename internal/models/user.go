// Package models defines the record types persisted by the MediAlert core.
package models

// User is a registered account. Email is the identity: comparisons are exact
// and case-sensitive, and no two directory entries share one. The password is
// stored and compared verbatim; hashing is out of scope for the local store.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

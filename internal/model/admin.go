package model

// Admin is the authenticated editor of the site content. There is a single
// configured admin account; the JWT subject is its email.
type Admin struct {
	Email string
}

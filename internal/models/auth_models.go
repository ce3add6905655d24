package models

// User is a signed-in demo account. It never carries the password.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Actor returns the audit identity of the user.
func (u User) Actor() Actor {
	return Actor{ID: u.ID, Name: u.Name}
}

// Credentials for login request
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

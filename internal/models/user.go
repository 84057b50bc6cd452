package models

// User is an account known to the auth subsystem. Password holds the bcrypt
// hash and never leaves the server. Verified flips once the registration OTP
// has been confirmed.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"-"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"isAdmin"`
	Verified bool   `json:"-"`
}

package domain

// StoredUser is the local projection of the identity provider's profile.
type StoredUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Image     string `json:"image,omitempty"`
}

// Session ties an opaque token to the user it was issued for.
type Session struct {
	Token string     `json:"token"`
	User  StoredUser `json:"user"`
}

type RegisterProfile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

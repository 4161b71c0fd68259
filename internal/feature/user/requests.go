package user

// RegisterCommand returns the new user's id (uuid.UUID).
type RegisterCommand struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"`
}

func (RegisterCommand) RequestName() string { return "auth.Register" }

// LoginCommand returns a signed bearer token.
type LoginCommand struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (LoginCommand) RequestName() string { return "auth.Login" }

package auth

// LoginInput represents the request body for user authentication. The
// username is the account email.
type LoginInput struct {
	Username string `json:"username" form:"username" validate:"required,max=254"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

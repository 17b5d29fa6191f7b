package user

// RegisterInput represents the request body for registering a new user.
type RegisterInput struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=254"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" form:"name" validate:"max=100"`
	Currency string `json:"currency" form:"currency" validate:"omitempty,len=3,alpha"`
}

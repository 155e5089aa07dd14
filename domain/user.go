package domain

var (
	MessageSuccessLogout = "Logged out successfully"
	MessageSuccessLogin  = "Token issued successfully"

	MessageFailedGetUsers   = "failed to retrieve users"
	MessageFailedCreateUser = "failed to create user"
	MessageFailedLogin      = "failed to issue token"
)

type (
	IssueTokenRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)

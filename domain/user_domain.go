package domain

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetUser  = "success get user"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetUser  = "failed to get user"

	ErrUserNotFound         = NewNotFoundError("user not found")
	ErrEmailAlreadyExists   = NewValidationError("email", "a user with this email already exists")
	ErrUsernameTaken        = NewValidationError("username", "a user with this username already exists")
	ErrUserAlreadyExists    = NewConflictError("errors", "a user with this email or username already exists")
	ErrInvalidCredentials   = NewValidationError("password", "invalid email or password")
	ErrAuthenticationFailed = &Error{Kind: ErrUnauthenticated, Message: "authentication credentials were not provided"}
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	UserResponse struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}
)

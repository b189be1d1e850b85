package models

// Request tags are checked after trimming and normalizing the input. Lengths
// count runes.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitnil,min=1,max=50"`
	Email    *string `json:"email" validate:"omitnil,min=1,email,max=255"`
}

// MessageResponse is the body of simple acknowledgements such as logout.
type MessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

package auth

// LoginRequest carries staff credentials. The backend accepts either a
// username or an email in the same field.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// PinLoginRequest carries the fast-switch PIN credentials.
type PinLoginRequest struct {
	UserID int    `json:"user_id"`
	Pin    string `json:"pin"`
}

// RefreshRequest wraps the token exchanged for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest identifies the refresh token to revoke server-side.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse is the backend's auth envelope, shared by the login,
// pin-login, and refresh endpoints. Wire names follow the backend contract.
type LoginResponse struct {
	Success      bool   `json:"exito"`
	Message      string `json:"mensaje"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"usuario,omitempty"`
}

// User is the staff summary shown on the PIN login screen.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

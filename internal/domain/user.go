package domain

// UserRole is the caller's role as known to the commerce backend.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

// UserProfile is the caller's stored profile.
type UserProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ProfileInput carries the fields a caller supplies when saving their
// profile.
type ProfileInput struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"max=500"`
}

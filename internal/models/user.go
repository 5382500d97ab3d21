package models

// Role is the identity category asserted by the server for a credential.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// Profile is the cached snapshot of the signed-in account.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminSigninRequest is shared by the event-admin and super-admin signin endpoints.
type AdminSigninRequest struct {
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
}

type AuthResponse struct {
	Authorization string  `json:"authorization"`
	UserData      Profile `json:"userData"`
	Message       string  `json:"message"`
}

type AuthStatus struct {
	Auth Role `json:"auth"`
}

type ProfileResponse struct {
	UserData Profile `json:"userData"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

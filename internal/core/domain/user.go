package domain

const (
	// RoleAdmin is the role tag the platform uses for teachers and staff.
	RoleAdmin = "admin"
	// RoleUser is the role tag the platform uses for students.
	RoleUser = "user"

	// AbsentRole is sent in the role header when no session role is stored.
	AbsentRole = "absent"
)

// User is the read model returned by the user and auth endpoints.
// The server also echoes a password field, which is not mapped.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       *int   `json:"age"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Credentials is the write-only login payload.
type Credentials struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the write-only sign-up payload. Role is omitted unless set
// so the server applies its default role to self-registrations.
type Registration struct {
	Name     string `json:"name"           validate:"required"`
	Email    string `json:"email"          validate:"required,email"`
	Username string `json:"username"       validate:"required"`
	Password string `json:"password"       validate:"required"`
	Role     string `json:"role,omitempty"`
}

// UserUpdate replaces the editable fields of a user. The update is
// last-write-wins: no version is checked.
type UserUpdate struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

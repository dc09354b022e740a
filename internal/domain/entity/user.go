package entity

// User roles for the clinic account
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleReceptionist = "receptionist"
)

// User is the acting clinic account. There is a single provisioned account
// per device; its ID is used as the created_by tag when records are mirrored
// outward by the sync service.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

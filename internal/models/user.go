package models

// User roles.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// User represents an authenticated account, either buyer or seller.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role"`
}

package models

import "gorm.io/gorm"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Email              string  `json:"email" gorm:"size:191;uniqueIndex;not null"`
	Username           string  `json:"username" gorm:"size:191;uniqueIndex;not null"`
	Password           string  `json:"-" gorm:"not null"`
	FullName           string  `json:"fullName"`
	Phone              string  `json:"phone"`
	Role               Role    `json:"role" gorm:"type:varchar(16);index;not null"`
	IsActive           bool    `json:"isActive" gorm:"not null"`
	IsVerified         bool    `json:"isVerified" gorm:"not null"`
	VerificationToken  *string `json:"-" gorm:"size:64;uniqueIndex"`
	PasswordResetToken *string `json:"-" gorm:"size:64;uniqueIndex"`
}

type RegisterData struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
}

type ForgotPasswordData struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordData struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ProfileData updates contact details. Blank fields are left unchanged.
type ProfileData struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// LoginData accepts either the username or the email as Identifier.
type LoginData struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

package models

// User is an API account. Only ADMIN accounts pass the mutation gate.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:USER" json:"role"`
}

package models

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCliente Role = "CLIENTE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCliente:
		return true
	}

	return false
}

type User struct {
	BaseModel

	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"nome"`
	Role         Role   `gorm:"type:varchar(16);not null" json:"tipo"`

	// Relationships
	Clients []Client `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

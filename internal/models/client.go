package models

import "github.com/google/uuid"

type Client struct {
	BaseModel

	FullName string    `gorm:"not null;index" json:"nomeCompleto"`
	Contact  string    `gorm:"not null" json:"contato"`
	Address  string    `gorm:"not null" json:"endereco"`
	Active   bool      `gorm:"not null" json:"status"`
	UserID   uuid.UUID `gorm:"size:36;not null;index" json:"usuarioId"`

	// Relationships
	Orders []Order `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

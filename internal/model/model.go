package model

import (
	"time"

	"github.com/google/uuid"
)

type Model struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payee is a stored receiver profile. This service only reads payees.
type Payee struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	PixKey  string    `json:"pix_key" validate:"required,max=77"`
	KeyType string    `json:"key_type" validate:"required,oneof=cpf cnpj email phone random"`
	Name    string    `json:"name" validate:"required,min=1,max=100"`
	City    string    `json:"city" validate:"required,min=1,max=60"`
	Model
}

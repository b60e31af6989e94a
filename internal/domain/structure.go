package domain

import "time"

type Structure struct {
	ID         int64      `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Type       string     `json:"type" db:"type"`
	Service    *string    `json:"service,omitempty" db:"service"`
	Email      *string    `json:"email,omitempty" db:"email"`
	Phone      *string    `json:"phone,omitempty" db:"phone"`
	AddressID  int64      `json:"address_id" db:"address_id"`
	Address    *Address   `json:"address,omitempty" db:"-"`
	Users      []User     `json:"users,omitempty" db:"-"`
	AvatarURL  *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	ArchivedAt *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateStructureInput struct {
	Name    string              `json:"name" validate:"required,max=100"`
	Type    string              `json:"type" validate:"required,max=50"`
	Service *string             `json:"service,omitempty"`
	Email   *string             `json:"email,omitempty"`
	Phone   *string             `json:"phone,omitempty"`
	Address *CreateAddressInput `json:"address" validate:"required"`
}

type UpdateStructureInput struct {
	Name    *string             `json:"name,omitempty"`
	Type    *string             `json:"type,omitempty"`
	Service *string             `json:"service,omitempty"`
	Email   *string             `json:"email,omitempty"`
	Phone   *string             `json:"phone,omitempty"`
	Address *UpdateAddressInput `json:"address,omitempty"`
}

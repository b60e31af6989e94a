package domain

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID          int64          `json:"id" db:"id"`
	Firstname   string         `json:"firstname" db:"firstname"`
	Lastname    string         `json:"lastname" db:"lastname"`
	Login       string         `json:"login" db:"login"`
	Password    string         `json:"-" db:"password"`
	Email       *string        `json:"email,omitempty" db:"email"`
	Phone       *string        `json:"phone,omitempty" db:"phone"`
	Roles       pq.StringArray `json:"roles" db:"roles"`
	JobType     string         `json:"job_type" db:"job_type"`
	AddressID   *int64         `json:"address_id,omitempty" db:"address_id"`
	Address     *Address       `json:"address,omitempty" db:"-"`
	Structures  []Structure    `json:"structures,omitempty" db:"-"`
	AvatarURL   *string        `json:"avatar_url,omitempty" db:"avatar_url"`
	ArchivedAt  *time.Time     `json:"archived_at,omitempty" db:"archived_at"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

func (u *User) DisplayName() string {
	return u.Firstname + " " + u.Lastname
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type CreateUserInput struct {
	Firstname    string              `json:"firstname" validate:"required"`
	Lastname     string              `json:"lastname" validate:"required"`
	Login        string              `json:"login" validate:"required"`
	Password     string              `json:"password" validate:"required,min=8"`
	Email        *string             `json:"email,omitempty"`
	Phone        *string             `json:"phone,omitempty"`
	JobType      string              `json:"job_type"`
	Address      *CreateAddressInput `json:"address,omitempty"`
	StructureIDs []int64             `json:"structures,omitempty"`
}

type UpdateUserInput struct {
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	Login     *string `json:"login,omitempty"`
	Password  *string `json:"password,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	JobType   *string `json:"job_type,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthSession struct {
	Token  string `json:"token"`
	Expire int64  `json:"expire"`
	User   *User  `json:"user"`
}

const (
	RoleClient    = "CLIENT"
	RoleTechnical = "TECHNICAL"
	RoleAdmin     = "ADMIN"
)

const (
	JobTypeEmployee   = "EMPLOYEE"
	JobTypeFreelancer = "FREELANCER"
)

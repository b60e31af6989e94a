package domain

type Address struct {
	ID        int64    `json:"id" db:"id"`
	Country   string   `json:"country" db:"country"`
	City      string   `json:"city" db:"city"`
	StreetL1  string   `json:"street_l1" db:"street_l1"`
	StreetL2  *string  `json:"street_l2,omitempty" db:"street_l2"`
	Postcode  string   `json:"postcode" db:"postcode"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
}

type CreateAddressInput struct {
	Country   string   `json:"country" validate:"required,max=100"`
	City      string   `json:"city" validate:"required,max=100"`
	StreetL1  string   `json:"street_l1" validate:"required,max=255"`
	StreetL2  *string  `json:"street_l2,omitempty"`
	Postcode  string   `json:"postcode" validate:"required,max=20"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type UpdateAddressInput struct {
	ID        *int64   `json:"id,omitempty"`
	Country   *string  `json:"country,omitempty"`
	City      *string  `json:"city,omitempty"`
	StreetL1  *string  `json:"street_l1,omitempty"`
	StreetL2  *string  `json:"street_l2,omitempty"`
	Postcode  *string  `json:"postcode,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

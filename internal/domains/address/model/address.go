package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Address is an entry in a shopper's address book. Orders copy it at
// placement, so later edits never reach existing orders.
type Address struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Pincode   string    `json:"pincode"`
	HouseNo   string    `json:"houseno"`
	Landmark  string    `json:"landmark,omitempty"`
	Street    string    `json:"street,omitempty"`
	Town      string    `json:"town,omitempty"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// =====================================================
// REQUESTS
// =====================================================

type AddressRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Pincode   string `json:"pincode"`
	HouseNo   string `json:"houseno"`
	Landmark  string `json:"landmark"`
	Street    string `json:"street"`
	Town      string `json:"town"`
	City      string `json:"city"`
	State     string `json:"state"`
	IsDefault bool   `json:"isDefault"`
}

func (r AddressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Phone, validation.Required, is.Digit, validation.Length(7, 15)),
		validation.Field(&r.Pincode, validation.Required, is.Digit, validation.Length(4, 10)),
		validation.Field(&r.HouseNo, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Landmark, validation.Length(0, 200)),
		validation.Field(&r.Street, validation.Length(0, 200)),
		validation.Field(&r.Town, validation.Length(0, 100)),
		validation.Field(&r.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.State, validation.Required, validation.Length(1, 100)),
	)
}

// Apply copies the trimmed request fields onto a.
func (r AddressRequest) Apply(a *Address) {
	a.Name = strings.TrimSpace(r.Name)
	a.Phone = strings.TrimSpace(r.Phone)
	a.Pincode = strings.TrimSpace(r.Pincode)
	a.HouseNo = strings.TrimSpace(r.HouseNo)
	a.Landmark = strings.TrimSpace(r.Landmark)
	a.Street = strings.TrimSpace(r.Street)
	a.Town = strings.TrimSpace(r.Town)
	a.City = strings.TrimSpace(r.City)
	a.State = strings.TrimSpace(r.State)
}

package clients

import "time"

// Client is a billed party. Name is the only required field.
type Client struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Address   *string   `json:"address,omitempty" db:"address"`
	TaxID     *string   `json:"tax_id,omitempty" db:"tax_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

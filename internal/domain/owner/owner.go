package owner

import (
	"fmt"
	"time"
)

// Owner is the aggregate root for an account that can register pets.
type Owner struct {
	id           uint
	name         string
	email        string
	phoneNumber  string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewOwner creates a new owner account. The password must already be hashed.
func NewOwner(name, email, phoneNumber, passwordHash string) (*Owner, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	return &Owner{
		name:         name,
		email:        email,
		phoneNumber:  phoneNumber,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds an Owner from persistence data (no validation).
func Reconstruct(id uint, name, email, phoneNumber, passwordHash string, createdAt, updatedAt time.Time) *Owner {
	return &Owner{
		id:           id,
		name:         name,
		email:        email,
		phoneNumber:  phoneNumber,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (o *Owner) ID() uint             { return o.id }
func (o *Owner) Name() string         { return o.name }
func (o *Owner) Email() string        { return o.email }
func (o *Owner) PhoneNumber() string  { return o.phoneNumber }
func (o *Owner) PasswordHash() string { return o.passwordHash }
func (o *Owner) CreatedAt() time.Time { return o.createdAt }
func (o *Owner) UpdatedAt() time.Time { return o.updatedAt }

// --- Behavior ---

// UpdateProfile applies partial updates to the profile fields.
func (o *Owner) UpdateProfile(name, phoneNumber string) {
	if name != "" {
		o.name = name
	}
	if phoneNumber != "" {
		o.phoneNumber = phoneNumber
	}
	o.updatedAt = time.Now().UTC()
}

// ChangePassword replaces the stored password hash.
func (o *Owner) ChangePassword(passwordHash string) {
	o.passwordHash = passwordHash
	o.updatedAt = time.Now().UTC()
}

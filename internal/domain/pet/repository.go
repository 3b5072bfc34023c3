package pet

import "context"

// Filters holds optional listing criteria; nil fields are ignored.
type Filters struct {
	Species *Species
	Sex     *Sex
	Size    *Size
}

// PetRepository defines persistence operations for pets.
type PetRepository interface {
	FindByID(ctx context.Context, id uint) (*Pet, error)
	FindAllNotAdopted(ctx context.Context) ([]*Pet, error)
	FindByFilters(ctx context.Context, filters Filters) ([]*Pet, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]*Pet, error)

	// Exists reports whether the owner already registered a pet with the
	// exact same attribute tuple (case-sensitive, no normalization).
	Exists(ctx context.Context, ownerID uint, nickname string, sex Sex, size Size, species Species, description string) (bool, error)

	// Save persists a new pet and returns it with the store-assigned id.
	Save(ctx context.Context, p *Pet) (*Pet, error)

	// SetAdopted atomically marks the pet adopted, conditioned on ownership,
	// so concurrent toggles cannot interleave with the ownership check.
	SetAdopted(ctx context.Context, petID, ownerID uint) error
}

package owner

import "context"

// OwnerRepository defines persistence operations for owner accounts.
type OwnerRepository interface {
	FindByID(ctx context.Context, id uint) (*Owner, error)
	FindByEmail(ctx context.Context, email string) (*Owner, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save persists a new owner and returns it with the store-assigned id.
	Save(ctx context.Context, o *Owner) (*Owner, error)
	Update(ctx context.Context, o *Owner) error
}

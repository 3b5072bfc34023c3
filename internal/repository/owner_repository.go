package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/GuiAmaralD/pet-adoption-system/internal/domain"
	ownerDomain "github.com/GuiAmaralD/pet-adoption-system/internal/domain/owner"
)

// OwnerModel is the GORM model for the owners table.
type OwnerModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PhoneNumber  string    `gorm:"size:30"`
	PasswordHash string    `gorm:"size:100;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (OwnerModel) TableName() string { return "owners" }

// GormOwnerRepository implements OwnerRepository using GORM.
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository.
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// FindByID retrieves an owner by id.
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uint) (*ownerDomain.Owner, error) {
	var model OwnerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", strconv.FormatUint(uint64(id), 10))
		}
		return nil, fmt.Errorf("failed to find owner by id: %w", err)
	}
	return toOwnerDomain(&model), nil
}

// FindByEmail retrieves an owner by email.
func (r *GormOwnerRepository) FindByEmail(ctx context.Context, email string) (*ownerDomain.Owner, error) {
	var model OwnerModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to find owner by email: %w", err)
	}
	return toOwnerDomain(&model), nil
}

// ExistsByEmail checks whether an account with the email already exists.
func (r *GormOwnerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OwnerModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check owner existence: %w", err)
	}
	return count > 0, nil
}

// Save persists a new owner and returns it with the store-assigned id.
func (r *GormOwnerRepository) Save(ctx context.Context, o *ownerDomain.Owner) (*ownerDomain.Owner, error) {
	model := toOwnerModel(o)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save owner: %w", err)
	}
	return toOwnerDomain(model), nil
}

// Update persists changes to an existing owner.
func (r *GormOwnerRepository) Update(ctx context.Context, o *ownerDomain.Owner) error {
	model := toOwnerModel(o)
	result := r.db.WithContext(ctx).
		Model(&OwnerModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"phone_number":  model.PhoneNumber,
			"password_hash": model.PasswordHash,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", strconv.FormatUint(uint64(model.ID), 10))
	}
	return nil
}

// --- Conversions ---

func toOwnerModel(o *ownerDomain.Owner) *OwnerModel {
	return &OwnerModel{
		ID:           o.ID(),
		Name:         o.Name(),
		Email:        o.Email(),
		PhoneNumber:  o.PhoneNumber(),
		PasswordHash: o.PasswordHash(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toOwnerDomain(m *OwnerModel) *ownerDomain.Owner {
	return ownerDomain.Reconstruct(
		m.ID,
		m.Name,
		m.Email,
		m.PhoneNumber,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

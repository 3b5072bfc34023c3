package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/GuiAmaralD/pet-adoption-system/internal/domain"
	petDomain "github.com/GuiAmaralD/pet-adoption-system/internal/domain/pet"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID           uint            `gorm:"primaryKey"`
	OwnerID      uint            `gorm:"index;not null"`
	Nickname     string          `gorm:"size:100;not null"`
	Sex          string          `gorm:"size:10;not null"`
	Size         string          `gorm:"size:10;not null"`
	Specie       string          `gorm:"size:10;not null;index"`
	Description  string          `gorm:"type:text;not null"`
	ImageURLs    json.RawMessage `gorm:"type:jsonb;not null"`
	Adopted      bool            `gorm:"not null;default:false;index"`
	RegisteredAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements PetRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

// NewGormPetRepository creates a new GormPetRepository.
func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

// FindByID retrieves a pet by its identifier.
func (r *GormPetRepository) FindByID(ctx context.Context, id uint) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", strconv.FormatUint(uint64(id), 10))
		}
		return nil, fmt.Errorf("failed to find pet by id: %w", err)
	}
	return toPetDomain(&model)
}

// FindAllNotAdopted retrieves every pet still listed for adoption.
func (r *GormPetRepository) FindAllNotAdopted(ctx context.Context) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("adopted = ?", false).
		Order("registered_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return toPetDomainList(models)
}

// FindByFilters retrieves pets matching the non-nil criteria.
func (r *GormPetRepository) FindByFilters(ctx context.Context, filters petDomain.Filters) ([]*petDomain.Pet, error) {
	query := r.db.WithContext(ctx).Model(&PetModel{})
	if filters.Species != nil {
		query = query.Where("specie = ?", string(*filters.Species))
	}
	if filters.Sex != nil {
		query = query.Where("sex = ?", string(*filters.Sex))
	}
	if filters.Size != nil {
		query = query.Where("size = ?", string(*filters.Size))
	}

	var models []PetModel
	if err := query.Order("registered_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to filter pets: %w", err)
	}
	return toPetDomainList(models)
}

// FindByOwnerID retrieves all pets registered by the given owner.
func (r *GormPetRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("registered_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pets by owner: %w", err)
	}
	return toPetDomainList(models)
}

// Exists checks for a pet with the exact same attribute tuple.
func (r *GormPetRepository) Exists(ctx context.Context, ownerID uint, nickname string, sex petDomain.Sex, size petDomain.Size, species petDomain.Species, description string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("owner_id = ? AND nickname = ? AND sex = ? AND size = ? AND specie = ? AND description = ?",
			ownerID, nickname, string(sex), string(size), string(species), description).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pet existence: %w", err)
	}
	return count > 0, nil
}

// Save persists a new pet and returns it with the store-assigned id.
func (r *GormPetRepository) Save(ctx context.Context, p *petDomain.Pet) (*petDomain.Pet, error) {
	model, err := toPetModel(p)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save pet: %w", err)
	}
	return toPetDomain(model)
}

// SetAdopted marks the pet adopted with a single conditional update keyed on
// both id and owner, so the write cannot race the ownership check.
func (r *GormPetRepository) SetAdopted(ctx context.Context, petID, ownerID uint) error {
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ? AND owner_id = ?", petID, ownerID).
		Update("adopted", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark pet adopted: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Pet", strconv.FormatUint(uint64(petID), 10))
	}
	return nil
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) (*PetModel, error) {
	urls, err := json.Marshal(p.ImageURLs())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image urls: %w", err)
	}
	return &PetModel{
		ID:           p.ID(),
		OwnerID:      p.OwnerID(),
		Nickname:     p.Nickname(),
		Sex:          string(p.Sex()),
		Size:         string(p.Size()),
		Specie:       string(p.Species()),
		Description:  p.Description(),
		ImageURLs:    urls,
		Adopted:      p.Adopted(),
		RegisteredAt: p.RegisteredAt(),
	}, nil
}

func toPetDomain(m *PetModel) (*petDomain.Pet, error) {
	var urls []string
	if len(m.ImageURLs) > 0 {
		if err := json.Unmarshal(m.ImageURLs, &urls); err != nil {
			return nil, fmt.Errorf("failed to unmarshal image urls: %w", err)
		}
	}
	return petDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Nickname,
		petDomain.Sex(m.Sex),
		petDomain.Size(m.Size),
		petDomain.Species(m.Specie),
		m.Description,
		urls,
		m.Adopted,
		m.RegisteredAt,
	), nil
}

func toPetDomainList(models []PetModel) ([]*petDomain.Pet, error) {
	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		p, err := toPetDomain(&models[i])
		if err != nil {
			return nil, err
		}
		pets[i] = p
	}
	return pets, nil
}

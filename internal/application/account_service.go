package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/GuiAmaralD/pet-adoption-system/internal/auth"
	"github.com/GuiAmaralD/pet-adoption-system/internal/domain"
	ownerDomain "github.com/GuiAmaralD/pet-adoption-system/internal/domain/owner"
	petDomain "github.com/GuiAmaralD/pet-adoption-system/internal/domain/pet"
)

// SignupRequest is the payload for creating a new owner account.
type SignupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for authenticating an owner.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountRequest is the payload for partial profile updates.
type UpdateAccountRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// ChangePasswordRequest is the payload for rotating a password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// TokenDTO is the login response.
type TokenDTO struct {
	Token string `json:"token"`
}

// OwnerProfileDTO is the full account view, including registered pets.
type OwnerProfileDTO struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	PhoneNumber    string   `json:"phoneNumber"`
	RegisteredPets []PetDTO `json:"registeredPets"`
}

// AccountService implements owner account use cases.
type AccountService struct {
	owners ownerDomain.OwnerRepository
	pets   petDomain.PetRepository
	jwt    *auth.JWTManager
	logger *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	owners ownerDomain.OwnerRepository,
	pets petDomain.PetRepository,
	jwt *auth.JWTManager,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{owners: owners, pets: pets, jwt: jwt, logger: logger}
}

// Signup creates a new owner account with a bcrypt-hashed password.
func (s *AccountService) Signup(ctx context.Context, req SignupRequest) (*OwnerProfileDTO, error) {
	exists, err := s.owners.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.NewConflictError("email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	o, err := ownerDomain.NewOwner(req.Name, req.Email, req.PhoneNumber, hash)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	persisted, err := s.owners.Save(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("failed to save owner: %w", err)
	}

	s.logger.Info("owner account created", zap.Uint("owner_id", persisted.ID()))

	return &OwnerProfileDTO{
		Name:           persisted.Name(),
		Email:          persisted.Email(),
		PhoneNumber:    persisted.PhoneNumber(),
		RegisteredPets: []PetDTO{},
	}, nil
}

// Login authenticates an owner and returns a signed access token. Unknown
// emails and wrong passwords produce the same error.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*TokenDTO, error) {
	o, err := s.owners.FindByEmail(ctx, req.Email)
	if err != nil {
		var domainErr *domain.Error
		if errors.As(err, &domainErr) && domainErr.Status == http.StatusNotFound {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, o.PasswordHash()) {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.jwt.Generate(o.ID(), o.Email())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenDTO{Token: token}, nil
}

// GetProfile returns the owner's account view with their registered pets.
func (s *AccountService) GetProfile(ctx context.Context, ownerID uint) (*OwnerProfileDTO, error) {
	o, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.toProfileDTO(ctx, o)
}

// UpdateProfile applies partial updates to the owner's profile.
func (s *AccountService) UpdateProfile(ctx context.Context, ownerID uint, req UpdateAccountRequest) (*OwnerProfileDTO, error) {
	o, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	o.UpdateProfile(req.Name, req.PhoneNumber)
	if err := s.owners.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	return s.toProfileDTO(ctx, o)
}

// ChangePassword rotates the owner's password after verifying the old one.
func (s *AccountService) ChangePassword(ctx context.Context, ownerID uint, req ChangePasswordRequest) error {
	o, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(req.OldPassword, o.PasswordHash()) {
		return domain.NewUnauthorizedError("old password does not match")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	o.ChangePassword(hash)
	if err := s.owners.Update(ctx, o); err != nil {
		return fmt.Errorf("failed to update owner: %w", err)
	}

	s.logger.Info("password updated", zap.Uint("owner_id", ownerID))
	return nil
}

// GetOwner returns an owner's public profile by id.
func (s *AccountService) GetOwner(ctx context.Context, id uint) (*OwnerProfileDTO, error) {
	o, err := s.owners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toProfileDTO(ctx, o)
}

func (s *AccountService) toProfileDTO(ctx context.Context, o *ownerDomain.Owner) (*OwnerProfileDTO, error) {
	pets, err := s.pets.FindByOwnerID(ctx, o.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load registered pets: %w", err)
	}

	summary := OwnerSummaryDTO{
		Name:        o.Name(),
		Email:       o.Email(),
		PhoneNumber: o.PhoneNumber(),
	}

	petDTOs := make([]PetDTO, len(pets))
	for i, p := range pets {
		petDTOs[i] = PetDTO{
			ID:           p.ID(),
			Nickname:     p.Nickname(),
			Sex:          string(p.Sex()),
			Size:         string(p.Size()),
			Specie:       string(p.Species()),
			Description:  p.Description(),
			Owner:        summary,
			ImageURLs:    p.ImageURLs(),
			Adopted:      p.Adopted(),
			RegisteredAt: p.RegisteredAt(),
		}
	}

	return &OwnerProfileDTO{
		Name:           o.Name(),
		Email:          o.Email(),
		PhoneNumber:    o.PhoneNumber(),
		RegisteredPets: petDTOs,
	}, nil
}

package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GuiAmaralD/pet-adoption-system/internal/domain"
	"github.com/GuiAmaralD/pet-adoption-system/internal/domain/media"
	ownerDomain "github.com/GuiAmaralD/pet-adoption-system/internal/domain/owner"
	petDomain "github.com/GuiAmaralD/pet-adoption-system/internal/domain/pet"
	"github.com/GuiAmaralD/pet-adoption-system/internal/events"
	"github.com/GuiAmaralD/pet-adoption-system/internal/kafka"
	"github.com/GuiAmaralD/pet-adoption-system/internal/storage"
)

// eventSource identifies this service in published CloudEvents.
const eventSource = "pet-adoption-system"

// RegisterPetRequest carries the structured attributes of a new pet listing.
// The photos travel separately as multipart file parts.
type RegisterPetRequest struct {
	Nickname    string `json:"nickname" binding:"required"`
	Sex         string `json:"sex" binding:"required"`
	Size        string `json:"size" binding:"required"`
	Specie      string `json:"specie" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// OwnerSummaryDTO is the owner block embedded in pet responses.
type OwnerSummaryDTO struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// PetDTO is the client-safe representation of a pet listing.
type PetDTO struct {
	ID           uint            `json:"id"`
	Nickname     string          `json:"nickname"`
	Sex          string          `json:"sex"`
	Size         string          `json:"size"`
	Specie       string          `json:"specie"`
	Description  string          `json:"description"`
	Owner        OwnerSummaryDTO `json:"owner"`
	ImageURLs    []string        `json:"imageUrls"`
	Adopted      bool            `json:"adopted"`
	RegisteredAt time.Time       `json:"registeredAt"`
}

// EventPublisher publishes CloudEvents; satisfied by *kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// PetService orchestrates pet registration, listing and adoption use cases.
type PetService struct {
	pets      petDomain.PetRepository
	owners    ownerDomain.OwnerRepository
	validator *media.Validator
	uploader  storage.Uploader
	bucket    string
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(
	pets petDomain.PetRepository,
	owners ownerDomain.OwnerRepository,
	validator *media.Validator,
	uploader storage.Uploader,
	bucket string,
	publisher EventPublisher,
	logger *zap.Logger,
) *PetService {
	return &PetService{
		pets:      pets,
		owners:    owners,
		validator: validator,
		uploader:  uploader,
		bucket:    bucket,
		publisher: publisher,
		logger:    logger,
	}
}

// RegisterPet runs the registration pipeline: build the draft, reject
// duplicate submissions before any upload, validate the photo batch, upload
// the accepted files in order, persist, and return the stored listing.
//
// Uploads are sequential so the stored URL order matches submission order.
// If an upload fails mid-batch, the request fails and files uploaded earlier
// in the batch stay in storage; cleanup is an out-of-band concern.
func (s *PetService) RegisterPet(ctx context.Context, ownerID uint, req RegisterPetRequest, files []media.UploadCandidate) (*PetDTO, error) {
	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sex, err := petDomain.ParseSex(req.Sex)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	size, err := petDomain.ParseSize(req.Size)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	species, err := petDomain.ParseSpecies(req.Specie)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	draft, err := petDomain.NewPet(owner.ID(), req.Nickname, sex, size, species, req.Description)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	exists, err := s.pets.Exists(ctx, owner.ID(), req.Nickname, sex, size, species, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate pet: %w", err)
	}
	if exists {
		return nil, domain.NewConflictError("user already registered a pet with identical attributes")
	}

	accepted, err := s.validator.Validate(files)
	if err != nil {
		return nil, err
	}

	imageURLs := make([]string, 0, len(accepted))
	for _, candidate := range accepted {
		url, err := s.uploader.Upload(ctx, s.bucket, candidate.Filename, candidate.ContentType, candidate.Content)
		if err != nil {
			s.logger.Error("image upload failed",
				zap.String("filename", candidate.Filename),
				zap.Int("uploaded_so_far", len(imageURLs)),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to upload image %s: %w", candidate.Filename, err)
		}
		imageURLs = append(imageURLs, url)
	}

	if err := draft.AttachImages(imageURLs); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	persisted, err := s.pets.Save(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to save pet: %w", err)
	}

	s.logger.Info("pet registered",
		zap.Uint("pet_id", persisted.ID()),
		zap.Uint("owner_id", owner.ID()),
		zap.Int("images", len(imageURLs)),
	)

	s.publishEvent(ctx, events.PetRegistered, events.PetRegisteredEvent{
		PetID:      persisted.ID(),
		OwnerID:    owner.ID(),
		Nickname:   persisted.Nickname(),
		Species:    string(persisted.Species()),
		ImageCount: len(imageURLs),
		OccurredAt: time.Now().UTC(),
	})

	result := s.toPetDTO(persisted, owner)
	return &result, nil
}

// ListAvailable returns all pets not yet adopted.
func (s *PetService) ListAvailable(ctx context.Context) ([]PetDTO, error) {
	pets, err := s.pets.FindAllNotAdopted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return s.toPetDTOs(ctx, pets)
}

// FilterPets returns pets matching the given criteria; empty values are
// ignored, so any combination of filters works.
func (s *PetService) FilterPets(ctx context.Context, specieRaw, sexRaw, sizeRaw string) ([]PetDTO, error) {
	var filters petDomain.Filters

	if specieRaw != "" {
		species, err := petDomain.ParseSpecies(specieRaw)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filters.Species = &species
	}
	if sexRaw != "" {
		sex, err := petDomain.ParseSex(sexRaw)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filters.Sex = &sex
	}
	if sizeRaw != "" {
		size, err := petDomain.ParseSize(sizeRaw)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filters.Size = &size
	}

	pets, err := s.pets.FindByFilters(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to filter pets: %w", err)
	}
	return s.toPetDTOs(ctx, pets)
}

// GetPet returns a single pet by id.
func (s *PetService) GetPet(ctx context.Context, id uint) (*PetDTO, error) {
	p, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerEntity, err := s.owners.FindByID(ctx, p.OwnerID())
	if err != nil {
		return nil, err
	}

	result := s.toPetDTO(p, ownerEntity)
	return &result, nil
}

// OwnsPet reports whether the pet belongs to the given owner. The pet must
// exist; an unknown id is a not-found error, not "false".
func (s *PetService) OwnsPet(ctx context.Context, ownerID, petID uint) (bool, error) {
	p, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return false, err
	}
	return p.IsOwnedBy(ownerID), nil
}

// MarkAdopted flips the adopted flag of one of the owner's pets. The final
// write is conditioned on ownership in the store, so the check-then-act
// window cannot flip a pet that changed hands concurrently.
func (s *PetService) MarkAdopted(ctx context.Context, ownerID, petID uint) error {
	owns, err := s.OwnsPet(ctx, ownerID, petID)
	if err != nil {
		return err
	}
	if !owns {
		return domain.NewUnauthorizedError("you can only update your own pets")
	}

	if err := s.pets.SetAdopted(ctx, petID, ownerID); err != nil {
		return err
	}

	s.logger.Info("pet marked adopted",
		zap.Uint("pet_id", petID),
		zap.Uint("owner_id", ownerID),
	)

	s.publishEvent(ctx, events.PetAdopted, events.PetAdoptedEvent{
		PetID:      petID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// --- Helpers ---

func (s *PetService) toPetDTO(p *petDomain.Pet, o *ownerDomain.Owner) PetDTO {
	return PetDTO{
		ID:          p.ID(),
		Nickname:    p.Nickname(),
		Sex:         string(p.Sex()),
		Size:        string(p.Size()),
		Specie:      string(p.Species()),
		Description: p.Description(),
		Owner: OwnerSummaryDTO{
			Name:        o.Name(),
			Email:       o.Email(),
			PhoneNumber: o.PhoneNumber(),
		},
		ImageURLs:    p.ImageURLs(),
		Adopted:      p.Adopted(),
		RegisteredAt: p.RegisteredAt(),
	}
}

// toPetDTOs resolves owner summaries for a list of pets, fetching each
// distinct owner once.
func (s *PetService) toPetDTOs(ctx context.Context, pets []*petDomain.Pet) ([]PetDTO, error) {
	ownersByID := make(map[uint]*ownerDomain.Owner)
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		o, ok := ownersByID[p.OwnerID()]
		if !ok {
			var err error
			o, err = s.owners.FindByID(ctx, p.OwnerID())
			if err != nil {
				return nil, fmt.Errorf("failed to resolve owner %d: %w", p.OwnerID(), err)
			}
			ownersByID[p.OwnerID()] = o
		}
		dtos[i] = s.toPetDTO(p, o)
	}
	return dtos, nil
}

func (s *PetService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicPetEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

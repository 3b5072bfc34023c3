package pet

import (
	"fmt"
	"time"
)

// MaxImages is the maximum number of photos attached to one pet.
const MaxImages = 4

// Pet is the aggregate root for a pet listed for adoption.
//
// The id is zero until the pet is persisted; the store assigns it on first
// save and it is immutable afterwards. The tuple (owner, nickname, sex, size,
// species, description) is unique across all pets.
type Pet struct {
	id           uint
	ownerID      uint
	nickname     string
	sex          Sex
	size         Size
	species      Species
	description  string
	imageURLs    []string
	adopted      bool
	registeredAt time.Time
}

// NewPet creates an unsaved pet draft with validated attributes.
// Images are attached separately once the upload pipeline has accepted them.
func NewPet(ownerID uint, nickname string, sex Sex, size Size, species Species, description string) (*Pet, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if nickname == "" {
		return nil, fmt.Errorf("nickname is required")
	}
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if !sex.IsValid() {
		return nil, fmt.Errorf("invalid sex: %q", sex)
	}
	if !size.IsValid() {
		return nil, fmt.Errorf("invalid size: %q", size)
	}
	if !species.IsValid() {
		return nil, fmt.Errorf("invalid species: %q", species)
	}

	return &Pet{
		ownerID:      ownerID,
		nickname:     nickname,
		sex:          sex,
		size:         size,
		species:      species,
		description:  description,
		adopted:      false,
		registeredAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id, ownerID uint,
	nickname string,
	sex Sex,
	size Size,
	species Species,
	description string,
	imageURLs []string,
	adopted bool,
	registeredAt time.Time,
) *Pet {
	return &Pet{
		id:           id,
		ownerID:      ownerID,
		nickname:     nickname,
		sex:          sex,
		size:         size,
		species:      species,
		description:  description,
		imageURLs:    imageURLs,
		adopted:      adopted,
		registeredAt: registeredAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uint                { return p.id }
func (p *Pet) OwnerID() uint           { return p.ownerID }
func (p *Pet) Nickname() string        { return p.nickname }
func (p *Pet) Sex() Sex                { return p.sex }
func (p *Pet) Size() Size              { return p.size }
func (p *Pet) Species() Species        { return p.species }
func (p *Pet) Description() string     { return p.description }
func (p *Pet) Adopted() bool           { return p.adopted }
func (p *Pet) RegisteredAt() time.Time { return p.registeredAt }

// ImageURLs returns the photo URLs in upload order.
func (p *Pet) ImageURLs() []string {
	urls := make([]string, len(p.imageURLs))
	copy(urls, p.imageURLs)
	return urls
}

// --- Behavior ---

// AttachImages sets the photo URLs for an unsaved draft. A pet cannot exist
// without at least one image, and upload order is preserved.
func (p *Pet) AttachImages(urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("at least one image is required")
	}
	if len(urls) > MaxImages {
		return fmt.Errorf("each pet has a limit of %d images", MaxImages)
	}
	p.imageURLs = make([]string, len(urls))
	copy(p.imageURLs, urls)
	return nil
}

// IsOwnedBy checks if the pet belongs to the given owner.
func (p *Pet) IsOwnedBy(ownerID uint) bool {
	return p.ownerID == ownerID
}

// MarkAdopted flips the adopted flag. The transition is one-way; marking an
// already adopted pet is a no-op.
func (p *Pet) MarkAdopted() {
	p.adopted = true
}

package application

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/GuiAmaralD/pet-adoption-system/internal/domain"
	ownerDomain "github.com/GuiAmaralD/pet-adoption-system/internal/domain/owner"
	petDomain "github.com/GuiAmaralD/pet-adoption-system/internal/domain/pet"
	"github.com/GuiAmaralD/pet-adoption-system/internal/kafka"
)

// fakePetRepo is an in-memory PetRepository.
type fakePetRepo struct {
	mu     sync.Mutex
	nextID uint
	pets   map[uint]*petDomain.Pet
	saves  int
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: make(map[uint]*petDomain.Pet)}
}

func (r *fakePetRepo) FindByID(_ context.Context, id uint) (*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", strconv.FormatUint(uint64(id), 10))
	}
	return p, nil
}

func (r *fakePetRepo) FindAllNotAdopted(_ context.Context) ([]*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*petDomain.Pet
	for id := uint(1); id <= r.nextID; id++ {
		if p, ok := r.pets[id]; ok && !p.Adopted() {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePetRepo) FindByFilters(_ context.Context, filters petDomain.Filters) ([]*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*petDomain.Pet
	for id := uint(1); id <= r.nextID; id++ {
		p, ok := r.pets[id]
		if !ok {
			continue
		}
		if filters.Species != nil && p.Species() != *filters.Species {
			continue
		}
		if filters.Sex != nil && p.Sex() != *filters.Sex {
			continue
		}
		if filters.Size != nil && p.Size() != *filters.Size {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *fakePetRepo) FindByOwnerID(_ context.Context, ownerID uint) ([]*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*petDomain.Pet
	for id := uint(1); id <= r.nextID; id++ {
		if p, ok := r.pets[id]; ok && p.OwnerID() == ownerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePetRepo) Exists(_ context.Context, ownerID uint, nickname string, sex petDomain.Sex, size petDomain.Size, species petDomain.Species, description string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pets {
		if p.OwnerID() == ownerID &&
			p.Nickname() == nickname &&
			p.Sex() == sex &&
			p.Size() == size &&
			p.Species() == species &&
			p.Description() == description {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePetRepo) Save(_ context.Context, p *petDomain.Pet) (*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.saves++
	persisted := petDomain.Reconstruct(
		r.nextID, p.OwnerID(),
		p.Nickname(), p.Sex(), p.Size(), p.Species(), p.Description(),
		p.ImageURLs(), p.Adopted(), p.RegisteredAt(),
	)
	r.pets[r.nextID] = persisted
	return persisted, nil
}

func (r *fakePetRepo) SetAdopted(_ context.Context, petID, ownerID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[petID]
	if !ok || p.OwnerID() != ownerID {
		return domain.NewNotFoundError("Pet", strconv.FormatUint(uint64(petID), 10))
	}
	r.pets[petID] = petDomain.Reconstruct(
		p.ID(), p.OwnerID(),
		p.Nickname(), p.Sex(), p.Size(), p.Species(), p.Description(),
		p.ImageURLs(), true, p.RegisteredAt(),
	)
	return nil
}

// fakeOwnerRepo is an in-memory OwnerRepository.
type fakeOwnerRepo struct {
	mu     sync.Mutex
	nextID uint
	owners map[uint]*ownerDomain.Owner
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: make(map[uint]*ownerDomain.Owner)}
}

func (r *fakeOwnerRepo) FindByID(_ context.Context, id uint) (*ownerDomain.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.owners[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", strconv.FormatUint(uint64(id), 10))
	}
	return o, nil
}

func (r *fakeOwnerRepo) FindByEmail(_ context.Context, email string) (*ownerDomain.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.owners {
		if o.Email() == email {
			return o, nil
		}
	}
	return nil, domain.NewNotFoundError("User", email)
}

func (r *fakeOwnerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.owners {
		if o.Email() == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOwnerRepo) Save(_ context.Context, o *ownerDomain.Owner) (*ownerDomain.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	persisted := ownerDomain.Reconstruct(
		r.nextID, o.Name(), o.Email(), o.PhoneNumber(), o.PasswordHash(),
		o.CreatedAt(), o.UpdatedAt(),
	)
	r.owners[r.nextID] = persisted
	return persisted, nil
}

func (r *fakeOwnerRepo) Update(_ context.Context, o *ownerDomain.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[o.ID()]; !ok {
		return domain.NewNotFoundError("User", strconv.FormatUint(uint64(o.ID()), 10))
	}
	r.owners[o.ID()] = o
	return nil
}

// fakeUploader records uploads and can be told to fail on a given filename.
type fakeUploader struct {
	mu       sync.Mutex
	uploaded []string
	failOn   string
}

func (u *fakeUploader) Upload(_ context.Context, bucket, filename, _ string, _ []byte) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failOn != "" && filename == u.failOn {
		return "", fmt.Errorf("storage unavailable")
	}
	u.uploaded = append(u.uploaded, filename)
	return fmt.Sprintf("https://storage.test/%s/%d_%s", bucket, len(u.uploaded), filename), nil
}

// fakePublisher records published cloud events.
type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

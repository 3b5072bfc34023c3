package pet

import "fmt"

// Sex is the sex of a registered pet.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// IsValid returns true if the sex is recognized.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// ParseSex converts a raw string into a Sex.
func ParseSex(raw string) (Sex, error) {
	s := Sex(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid sex: %q", raw)
	}
	return s, nil
}

// Size is the size class of a registered pet.
type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeBig    Size = "BIG"
)

// IsValid returns true if the size is recognized.
func (s Size) IsValid() bool {
	return s == SizeSmall || s == SizeMedium || s == SizeBig
}

// ParseSize converts a raw string into a Size.
func ParseSize(raw string) (Size, error) {
	s := Size(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid size: %q", raw)
	}
	return s, nil
}

// Species is the species of a registered pet.
type Species string

const (
	SpeciesDog  Species = "DOG"
	SpeciesCat  Species = "CAT"
	SpeciesBird Species = "BIRD"
)

// IsValid returns true if the species is recognized.
func (s Species) IsValid() bool {
	return s == SpeciesDog || s == SpeciesCat || s == SpeciesBird
}

// ParseSpecies converts a raw string into a Species.
func ParseSpecies(raw string) (Species, error) {
	s := Species(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid species: %q", raw)
	}
	return s, nil
}

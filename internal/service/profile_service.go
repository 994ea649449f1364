package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/pace-analyzer/internal/models"
	"github.com/jengzang/pace-analyzer/internal/repository"
)

// ErrInvalidProfile is returned for out-of-range profile values
var ErrInvalidProfile = errors.New("invalid profile")

var validSexes = map[string]bool{"male": true, "female": true, models.DefaultSex: true}

// ProfileService handles business logic for runner profiles
type ProfileService struct {
	profiles ProfileStore
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the saved profile, or the defaults when none was saved
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.DefaultProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// Save validates and stores a profile. Zero values mean unknown and are kept
// so the metrics that need them are skipped.
func (s *ProfileService) Save(ctx context.Context, p *models.Profile) error {
	p.Sex = strings.ToLower(strings.TrimSpace(p.Sex))
	if p.Sex == "" {
		p.Sex = models.DefaultSex
	}

	switch {
	case p.Age < 0 || p.Age > 120:
		return fmt.Errorf("%w: age %d out of range", ErrInvalidProfile, p.Age)
	case p.RestingHR < 0 || p.RestingHR > 250:
		return fmt.Errorf("%w: resting heart rate %d out of range", ErrInvalidProfile, p.RestingHR)
	case p.WeightKg < 0 || p.WeightKg > 500:
		return fmt.Errorf("%w: weight %v out of range", ErrInvalidProfile, p.WeightKg)
	case !validSexes[p.Sex]:
		return fmt.Errorf("%w: sex must be male, female or unspecified", ErrInvalidProfile)
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

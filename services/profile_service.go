package services

import (
	"log"

	"github.com/rxnlog/experiment-line-bot/repository"
)

// ProfileService resolves LINE profiles into user rows.
type ProfileService interface {
	EnsureUser(userID string) error
}

type profileService struct {
	lineClient LineClient
	userRepo   repository.UserRepository
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(lineClient LineClient, userRepo repository.UserRepository) ProfileService {
	return &profileService{
		lineClient: lineClient,
		userRepo:   userRepo,
	}
}

// EnsureUser fetches the user's LINE profile and upserts the user row.
// If the profile lookup fails (e.g. the user blocked the channel), it falls
// back to the placeholder upsert so that a user row exists either way.
// An error is returned only when even the fallback write fails.
func (s *profileService) EnsureUser(userID string) error {
	profile, err := s.lineClient.GetProfile(userID)
	if err != nil {
		log.Printf("WARN: [ProfileService] Profile lookup failed for user %s, using fallback: %v", userID, err)
		return s.userRepo.TouchUnknown(userID)
	}
	return s.userRepo.UpsertProfile(userID, profile.DisplayName, profile.PictureURL)
}

package service

import (
	"context"
	"errors"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

type shortlistService struct {
	shortlistRepo repository.ShortlistRepository
	propertyRepo  repository.PropertyRepository
}

func NewShortlistService(shortlistRepo repository.ShortlistRepository, propertyRepo repository.PropertyRepository) ShortlistService {
	return &shortlistService{shortlistRepo: shortlistRepo, propertyRepo: propertyRepo}
}

// AddToShortlist saves the property for the user. created is false when it
// was already on the list.
func (s *shortlistService) AddToShortlist(ctx context.Context, userID, propertyID int32) (bool, error) {
	logger.EnterMethod(ctx, "shortlistService.AddToShortlist", "userID", userID, "propertyID", propertyID)

	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		err = notFound("property", err)
		logger.ExitMethodWithError(ctx, "shortlistService.AddToShortlist", err)
		return false, err
	}
	created, err := s.shortlistRepo.Add(ctx, userID, propertyID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "shortlistService.AddToShortlist", err)
		return false, err
	}

	logger.ExitMethod(ctx, "shortlistService.AddToShortlist", "created", created)
	return created, nil
}

// RemoveFromShortlist is idempotent: removing a property that is not on the
// list succeeds.
func (s *shortlistService) RemoveFromShortlist(ctx context.Context, userID, propertyID int32) error {
	if err := s.shortlistRepo.Remove(ctx, userID, propertyID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *shortlistService) ListShortlist(ctx context.Context, userID int32) ([]domain.ShortlistedProperty, error) {
	entries, err := s.shortlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.ShortlistedProperty{}
	}
	return entries, nil
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// UserService handles user lookups, avatars and subscriptions
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get retrieves one user by id
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns users ordered by username
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.User{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var users []models.User
	if err := query.Order("username").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SetAvatar stores the avatar URL; an empty URL clears the avatar
func (s *UserService) SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", avatarURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscribe creates a follow relation from user to author. Self-subscription
// and duplicate pairs are rejected.
func (s *UserService) Subscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return ErrSelfSubscribe
	}

	if _, err := s.Get(ctx, authorID); err != nil {
		return err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyExists
	}

	err = s.db.WithContext(ctx).Create(&models.Subscription{UserID: userID, AuthorID: authorID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return err
}

// Unsubscribe removes the follow relation, failing with not-found if absent
func (s *UserService) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscriptions lists the authors the user follows, ordered by username
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.User, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN (?)", s.db.Model(&models.Subscription{}).
			Select("author_id").
			Where("user_id = ?", userID))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		base = base.Limit(limit)
	}
	if offset > 0 {
		base = base.Offset(offset)
	}

	var authors []models.User
	if err := base.Order("username").Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// IsSubscribed reports which of the given authors the viewer follows
func (s *UserService) IsSubscribed(ctx context.Context, viewerID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	subscribed := make(map[uuid.UUID]bool)
	if viewerID == uuid.Nil || len(authorIDs) == 0 {
		return subscribed, nil
	}

	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id IN ?", viewerID, authorIDs).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		subscribed[sub.AuthorID] = true
	}
	return subscribed, nil
}

// RecipesByAuthors returns each author's recipes, newest first, capped at
// recipesLimit per author, plus the total count per author.
func (s *UserService) RecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID, recipesLimit int) (map[uuid.UUID][]models.Recipe, map[uuid.UUID]int64, error) {
	recipes := make(map[uuid.UUID][]models.Recipe)
	counts := make(map[uuid.UUID]int64)
	if len(authorIDs) == 0 {
		return recipes, counts, nil
	}

	var all []models.Recipe
	err := s.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&all).Error
	if err != nil {
		return nil, nil, err
	}

	for _, r := range all {
		counts[r.AuthorID]++
		if recipesLimit <= 0 || len(recipes[r.AuthorID]) < recipesLimit {
			recipes[r.AuthorID] = append(recipes[r.AuthorID], r)
		}
	}
	return recipes, counts, nil
}

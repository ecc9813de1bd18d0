package database

import (
	"context"
	"fmt"
	"time"

	"cardroom/models"
)

// CreateUser inserts a user and returns its id. LastVisitedAt starts at the creation time.
func (s *Store) CreateUser(ctx context.Context, login, nickname, password string) (uint, error) {
	now := time.Now()
	user := models.User{
		Login:         login,
		Nickname:      nickname,
		Password:      password,
		CreatedAt:     now,
		LastVisitedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return 0, fmt.Errorf("create user %q: %w", login, err)
	}
	return user.ID, nil
}

// DeleteUser removes the user with the given id. Deleting a missing user is not an error.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (s *Store) SearchUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.searchUser(ctx, "id = ?", id)
}

func (s *Store) SearchUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.searchUser(ctx, "login = ?", login)
}

func (s *Store) searchUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where(query, arg).Limit(1).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search user: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// TouchUser records a visit.
func (s *Store) TouchUser(ctx context.Context, id uint, at time.Time) error {
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_visited_at", at).Error; err != nil {
		return fmt.Errorf("touch user %d: %w", id, err)
	}
	return nil
}

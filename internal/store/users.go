package store

import (
	"context"
	"errors"
	"fmt"

	"what-do-you-meme/internal/db"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type newUser struct {
	Username string `validate:"required,username"`
	Password []byte `validate:"min=1"`
	Salt     []byte `validate:"min=1"`
}

// CreateUser registers username with an already derived password verifier
// and salt. Usernames are never reused.
func (s *Store) CreateUser(ctx context.Context, username string, password, salt []byte) (*db.User, error) {
	input := newUser{Username: username, Password: password, Salt: salt}
	if err := s.validate.Struct(input); err != nil {
		return nil, invalidInput("create user", err)
	}

	user := db.User{
		Username: username,
		Password: append([]byte(nil), password...),
		Salt:     append([]byte(nil), salt...),
	}
	err := s.withTx(ctx, "create user", func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, fmt.Errorf("user %q: %w", username, ErrDuplicateKey)
		}
		return nil, err
	}
	s.log.WithField("username", username).Info("user created")
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, username string) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, translate("get user", err)
	}
	return &user, nil
}

// DeleteUser removes a user that owns no games. Game history is never
// dropped, so users with games cannot be deleted.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	err := s.withTx(ctx, "delete user", func(tx *gorm.DB) error {
		var user db.User
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %q: %w", username, ErrNotFound)
			}
			return err
		}
		var games int64
		if err := tx.Model(&db.Game{}).Where("username = ?", username).Count(&games).Error; err != nil {
			return err
		}
		if games > 0 {
			return fmt.Errorf("user %q owns %d games: %w", username, games, ErrInvalidState)
		}
		return tx.Where("username = ?", username).Delete(&db.User{}).Error
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"username": username}).Info("user deleted")
	return nil
}

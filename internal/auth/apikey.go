package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/daybookhq/daybook/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// Service issues and verifies API keys. The plaintext key is shown to the
// caller exactly once; only its SHA-256 digest is stored.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a user and issues their API key.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	key, digest, err := generateAPIKey()
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		APIKeyDigest: digest,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("register: %w", err)
	}

	return user, key, nil
}

// Login verifies the password and rotates the user's API key.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	key, digest, err := generateAPIKey()
	if err != nil {
		return nil, "", err
	}
	user.APIKeyDigest = digest
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, "", fmt.Errorf("rotate api key: %w", err)
	}

	return &user, key, nil
}

// Resolve maps an API key to its owning user.
func (s *Service) Resolve(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("api_key_digest = ?", digestKey(key)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("resolve api key: %w", err)
	}
	return &user, nil
}

func generateAPIKey() (key, digest string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate api key: %w", err)
	}
	key = "dbk_" + hex.EncodeToString(raw)
	return key, digestKey(key), nil
}

func digestKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

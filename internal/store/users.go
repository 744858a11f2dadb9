// Package store is the credential store: it owns user records and is the only
// component that reads or writes them. The auth layer consults it instead of
// trusting token claims.
package store

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/devhive-app/devhive/internal/auth"
	"github.com/devhive-app/devhive/internal/models"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// Users is a repository over the user table
type Users struct {
	db *gorm.DB
}

// NewUsers creates a user repository
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create registers a new user with a hashed password and a derived avatar URL
func (u *Users) Create(name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := u.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUser
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       GravatarURL(email),
	}
	if err := u.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// FindByEmail looks up a user by email
func (u *Users) FindByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := u.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByID looks up a user by id
func (u *Users) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := u.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *Users) VerifyPassword(user *models.User, password string) error {
	return auth.VerifyPassword(password, user.PasswordHash)
}

// MarkWelcomed records that the welcome task has run for a user
func (u *Users) MarkWelcomed(id string, at time.Time) error {
	return u.db.Model(&models.User{}).Where("id = ?", id).Update("welcomed_at", at).Error
}

// CountCreatedSince returns how many users registered after the given time
func (u *Users) CountCreatedSince(t time.Time) (int64, error) {
	var count int64
	err := u.db.Model(&models.User{}).Where("created_at > ?", t).Count(&count).Error
	return count, err
}

// GravatarURL derives a gravatar URL from an email address
// (200px, PG-rated, "mystery man" fallback).
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}

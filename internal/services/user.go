package services

import (
	"errors"
	"strings"

	"github.com/taskman/taskman/internal/models"
	"gorm.io/gorm"
)

// findUserByIdentifier resolves a user by email (identifier contains "@")
// or by username. Both are stored lowercase.
func findUserByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	var err error
	if strings.Contains(identifier, "@") {
		err = db.Where("email = ?", identifier).First(&user).Error
	} else {
		err = db.Where("username = ?", identifier).First(&user).Error
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// findUserByEmail resolves a registered user by lowercase email.
func findUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

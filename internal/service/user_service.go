package service

import (
	"errors"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// ListUsers scopes the user directory by role: admins see everyone,
// instructors see students only.
func (s *UserService) ListUsers(actorRole model.UserRole) ([]model.User, error) {
	switch actorRole {
	case model.Admin:
		return s.UserRepo.ListAll()
	case model.Instructor:
		return s.UserRepo.ListByRole(model.Student)
	default:
		return nil, util.ErrForbidden
	}
}

func (s *UserService) SetActive(userID uint, active bool) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	return s.UserRepo.SetActive(userID, active)
}

package service

import (
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/repository"
)

// UserService handles profile reads and updates for authenticated users
type UserService interface {
	GetByID(id string) (*domain.UserResponse, error)
	Update(id string, req *domain.UpdateUserRequest) (*domain.UserResponse, error)
	Delete(id string) error
}

type userService struct {
	userRepo    repository.UserRepository
	historyRepo repository.UserHistoryItemRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, historyRepo repository.UserHistoryItemRepository) UserService {
	return &userService{userRepo: userRepo, historyRepo: historyRepo}
}

func (s *userService) GetByID(id string) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Update(id string, req *domain.UpdateUserRequest) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// Delete removes the account and its history records; other owned data
// (clips, orders) is kept for bookkeeping
func (s *userService) Delete(id string) error {
	if _, err := s.historyRepo.DeleteAllByOwner(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

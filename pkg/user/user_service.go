package user

import (
	"context"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/entities"
)

type (
	UserService interface {
		GetUsers(ctx context.Context) ([]entities.User, error)
		CreateUser(ctx context.Context, profile entities.User) (domain.InsertResult, error)
	}

	userService struct {
		userRepository UserRepository
	}
)

func NewUserService(userRepository UserRepository) UserService {
	return &userService{userRepository: userRepository}
}

func (s *userService) GetUsers(ctx context.Context) ([]entities.User, error) {
	return s.userRepository.GetUsers(ctx)
}

// CreateUser stores the profile verbatim; the store always picks the id.
func (s *userService) CreateUser(ctx context.Context, profile entities.User) (domain.InsertResult, error) {
	if profile == nil {
		profile = entities.User{}
	}
	delete(profile, "_id")

	id, err := s.userRepository.CreateUser(ctx, profile)
	if err != nil {
		return domain.InsertResult{}, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

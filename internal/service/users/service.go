package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/users/models"
)

// Service сервис пользователей
type Service struct {
	userRepo UserRepository
	hasher   PasswordHasher
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, hasher PasswordHasher, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// Create регистрирует пользователя. Только для администратора.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("CreateUser: email=%s, role=%s by user=%d", req.Email, req.Role, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("CreateUser: user=%d is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxUserNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxUserNameLength)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	role := domain.RoleUser
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		role = parsed
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("CreateUser: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: CreateUser - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("CreateUser: email %s already exists", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("CreateUser: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateUser: created user id=%d", user.ID)

	resp := models.FromDomainUser(user)
	return &resp, nil
}

// Get получает пользователя. Доступно самому пользователю и администратору.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*models.UserResponse, error) {
	if !actor.CanAccess(id) {
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetUser: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetUser - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainUser(user)
	return &resp, nil
}

// List список пользователей. Только для администратора.
func (s *Service) List(ctx context.Context, actor domain.Actor) (*models.UserListResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("ListUsers: user=%d is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUsers - repository error: %v", ErrInternal, err)
	}

	resp := &models.UserListResponse{Users: make([]models.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, models.FromDomainUser(u))
	}
	return resp, nil
}

// Login проверяет email и пароль. Неизвестный email и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	s.logger.Info("Login: email=%s", email)

	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	return &models.LoginResponse{UserID: user.ID, Role: string(user.Role)}, nil
}

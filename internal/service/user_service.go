package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"QuickMemo/internal/model"
	"QuickMemo/internal/repo"
)

// ErrInvalidCredentials — логин не найден или пароль не подходит.
var ErrInvalidCredentials = errors.New("invalid login or password")

// ErrLoginTaken — логин уже занят.
var ErrLoginTaken = errors.New("login already taken")

// UserService — регистрация и аутентификация.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register создаёт пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, login, password string) (*model.User, error) {
	if login == "" || password == "" {
		return nil, errors.New("login and password are required")
	}
	if existing, err := s.repo.GetUserByLogin(ctx, login); err == nil && existing != nil {
		return nil, ErrLoginTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, &model.User{Login: login, Password: string(hash)})
}

// Authenticate проверяет пару логин/пароль.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	u, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

package service

import (
	"database/sql"
	"errors"

	"go-fintrack/logger"
	"go-fintrack/model"
	"go-fintrack/repository"
)

// ErrInvalidCredentials is deliberately generic: login failures must not
// reveal whether the username exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService handles registration and credential checks.
type UserService struct {
	userRepo repository.IUserRepository
}

func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account from an already tag-validated form.
// Uniqueness violations come back as field errors so the form can re-render
// inline; any other failure is an internal error.
func (s *UserService) Register(form model.RegisterForm) (*model.User, model.FieldErrors, error) {
	var fieldErrors model.FieldErrors

	if _, err := s.userRepo.GetUserByUsername(form.Username); err == nil {
		fieldErrors.Add("username", "This username is already taken.")
	} else if err != sql.ErrNoRows {
		return nil, nil, err
	}

	if _, err := s.userRepo.GetUserByEmail(form.Email); err == nil {
		fieldErrors.Add("email", "An account with this email already exists.")
	} else if err != sql.ErrNoRows {
		return nil, nil, err
	}

	if !fieldErrors.Empty() {
		return nil, fieldErrors, nil
	}

	hashedPassword, err := HashPassword(form.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Username: form.Username,
		Email:    form.Email,
		Password: hashedPassword,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		logger.Log.WithError(err).WithField("username", form.Username).Error("Failed to create user")
		return nil, nil, err
	}

	logger.Log.WithField("username", user.Username).Info("User registered")
	return user, nil, nil
}

// Authenticate checks a username/password pair. A missing user and a wrong
// password are indistinguishable to the caller.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

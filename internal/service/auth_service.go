package service

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/estateline/estateline/internal/entity"
	"github.com/estateline/estateline/internal/metrics"
	"github.com/estateline/estateline/internal/repository"
)

// AuthService carries user registration and the login/logout state changes.
type AuthService interface {
	Register(username, identity, password, location, role string) (entity.Profile, error) // Creates the user, returning its profile
	Login(username, password string) (entity.Profile, error)                              // Authenticates and marks the user online
	Logout(username string) error                                                         // Marks the user offline
}

type localAuthService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

func NewAuthService(users repository.UserRepository, logger zerolog.Logger) AuthService {
	return &localAuthService{users: users, logger: logger}
}

func (a *localAuthService) Register(username, identity, password, location, role string) (entity.Profile, error) {
	if _, exists := a.users.Find(username); exists {
		return entity.Profile{}, fmt.Errorf("registering %q: %w", username, ErrDuplicateUser)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("hashing password: %w", err)
	}

	user := entity.NewUser(username, identity, string(hash), location, role)
	a.users.Add(user)
	a.logger.Info().Str("username", username).Str("identity", identity).Msg("user registered")

	// Flush right away so a crash does not lose the account; failure only
	// costs durability.
	if err := a.users.Save(); err != nil {
		metrics.SnapshotFailures.WithLabelValues("users").Inc()
		a.logger.Error().Err(err).Msg("user snapshot save failed after registration")
	}

	return user.Profile(), nil
}

func (a *localAuthService) Login(username, password string) (entity.Profile, error) {
	user, ok := a.users.Find(username)
	if !ok {
		return entity.Profile{}, &NotFoundError{Kind: "user", Name: username}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return entity.Profile{}, ErrWrongPassword
	}

	a.users.UpdateState(username, entity.StateOnline)
	user.State = entity.StateOnline
	a.logger.Info().Str("username", username).Msg("user logged in")
	return user.Profile(), nil
}

func (a *localAuthService) Logout(username string) error {
	if !a.users.UpdateState(username, entity.StateOffline) {
		return &NotFoundError{Kind: "user", Name: username}
	}
	a.logger.Info().Str("username", username).Msg("user logged out")
	return nil
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateToken(personID uint, role string) (string, time.Time, error)
}

// LoginResult is returned on successful login
type LoginResult struct {
	AccessToken string         `json:"accessToken"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	Person      *entity.Person `json:"person"`
}

// AuthService authenticates people
type AuthService struct {
	people repository.PersonRepository
	tokens TokenIssuer
}

// NewAuthService creates the authentication service
func NewAuthService(people repository.PersonRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{people: people, tokens: tokens}
}

// AuthenticatePerson checks the credentials
func (s *AuthService) AuthenticatePerson(email, password string) (*entity.Person, error) {
	email = normalizeEmail(email)

	person, err := s.people.GetByEmail(email)
	if err != nil {
		log.Printf("[AuthService] person with email %s not found: %v", email, err)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !person.CheckPassword(password) {
		log.Printf("[AuthService] wrong password for email %s", email)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return person, nil
}

// Login authenticates and issues an access token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	person, err := s.AuthenticatePerson(email, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateToken(person.ID, string(person.Role))
	if err != nil {
		log.Printf("[AuthService] failed to issue token for person ID=%d: %v", person.ID, err)
		return nil, fmt.Errorf("failed to issue token")
	}

	log.Printf("[AuthService] person ID=%d (%s) logged in", person.ID, person.Email)
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, Person: person}, nil
}

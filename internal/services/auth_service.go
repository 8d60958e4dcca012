package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caselink/caselink-backend/internal/config"
	"github.com/caselink/caselink-backend/internal/dto"
	"github.com/caselink/caselink-backend/internal/google"
	"github.com/caselink/caselink-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// AuthService runs the authorization pipeline: code exchange, identity
// fetch, user resolution, session token. Any remote failure aborts the
// whole flow; no partial session is ever issued.
type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	google *google.Client
}

func NewAuthService(db *gorm.DB, cfg *config.Config, client *google.Client) *AuthService {
	return &AuthService{db: db, cfg: cfg, google: client}
}

func (s *AuthService) Authorize(ctx context.Context, code string) (*dto.AuthorizeResponse, error) {
	accessToken, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	identity, err := s.google.FetchIdentity(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, created, err := s.resolveUser(identity)
	if err != nil {
		return nil, err
	}

	token, err := s.issueSessionToken(user, accessToken)
	if err != nil {
		return nil, err
	}

	return &dto.AuthorizeResponse{
		Token:   token,
		Created: created,
		User: dto.UserResponse{
			ID:       user.ID,
			UserName: user.UserName,
			Email:    user.Email,
		},
	}, nil
}

// resolveUser maps a verified Google identity to a local user, creating
// one on first login. Email is the natural key. Two concurrent first
// logins can both miss the lookup; the unique index decides the winner
// and the loser re-reads the row it collided with.
func (s *AuthService) resolveUser(identity *google.Identity) (*models.User, bool, error) {
	var user models.User
	err := s.db.Where("email = ?", identity.Email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user = models.User{
		ID:       uuid.New(),
		UserName: identity.DisplayName,
		Email:    identity.Email,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.User
			if err := s.db.Where("email = ?", identity.Email).First(&existing).Error; err != nil {
				return nil, false, fmt.Errorf("failed to re-read user after duplicate create: %w", err)
			}
			return &existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, true, nil
}

// issueSessionToken signs the session credential binding the local user
// id to the Google bearer token. Pure apart from reading the clock.
func (s *AuthService) issueSessionToken(user *models.User, googleToken string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":          user.ID.String(),
		"googleToken": googleToken,
		"iat":         now.Unix(),
		"exp":         now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
	"github.com/shaadibazaarhub/marketplace-api/internal/repository"
)

type TokenIssuer interface {
	Issue(subject uint, role models.Role, ttl time.Duration) (string, error)
}

type RegisterInput struct {
	Name           string
	Email          string
	Mobile         string
	WhatsAppNumber *string
	Address        string
	Role           string
	Password       string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, id auth.Identity) (*models.Account, error)
}

type authService struct {
	accounts repository.AccountRepository
	tokens   TokenIssuer
	log      *zap.Logger
}

func NewAuthService(accounts repository.AccountRepository, tokens TokenIssuer, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{accounts: accounts, tokens: tokens, log: log.Named("auth")}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}
	email := normalizeEmail(in.Email)

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapInternal("lookup account", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, wrapInternal("hash password", err)
	}

	account := &models.Account{
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Mobile:         strings.TrimSpace(in.Mobile),
		WhatsAppNumber: in.WhatsAppNumber,
		Address:        in.Address,
		Role:           role,
		PasswordHash:   hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// lost a race with a concurrent registration
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, wrapInternal("create account", err)
	}

	s.log.Info("account registered", zap.Uint("account_id", account.ID), zap.String("role", role.String()))
	return account, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", wrapInternal("lookup account", err)
	}
	if !auth.VerifyPassword(password, account.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Role, 0)
	if err != nil {
		return "", wrapInternal("issue token", err)
	}
	return token, nil
}

func (s *authService) Me(ctx context.Context, id auth.Identity) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, nil, id.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, wrapInternal("lookup account", err)
	}
	return account, nil
}

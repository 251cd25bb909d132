package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// Service handles registration, credential verification and helper
// verification against the identity directory.
type Service struct {
	accounts account.Repository
	tokens   *TokenIssuer
	logger   *logger.Logger
}

// NewService creates a new auth service
func NewService(accounts account.Repository, tokens *TokenIssuer, log *logger.Logger) *Service {
	return &Service{accounts: accounts, tokens: tokens, logger: log}
}

// SignupInput carries requester registration fields
type SignupInput struct {
	Name          string
	Email         string
	Password      string
	Age           int
	City          string
	Phone         string
	MobilityNeeds string
}

// HelperSignupInput carries helper application fields
type HelperSignupInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	City     string
	Phone    string
	NGOID    string
	Skills   []string
}

const minHelperAge = 18

// SignupRequester registers a requester account
func (s *Service) SignupRequester(ctx context.Context, in SignupInput) (*account.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	acc := &account.Account{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(in.Name),
		Email:         normalizeEmail(in.Email),
		PasswordHash:  string(hash),
		Role:          account.RoleRequester,
		Age:           in.Age,
		City:          in.City,
		Phone:         in.Phone,
		MobilityNeeds: in.MobilityNeeds,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.create(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info("Requester registered", logger.String("account_id", acc.ID.String()))
	return acc, nil
}

// SignupHelper registers a helper application. The account starts unverified
// and available; it cannot log in until an admin verifies it.
func (s *Service) SignupHelper(ctx context.Context, in HelperSignupInput) (*account.Account, error) {
	if in.Age < minHelperAge {
		return nil, apperrors.BadRequest("Helper must be at least 18 years old", nil)
	}
	if len(in.Skills) == 0 {
		return nil, apperrors.BadRequest("Skills must contain at least one entry", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	acc := &account.Account{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         account.RoleHelper,
		Age:          in.Age,
		City:         strings.TrimSpace(in.City),
		Phone:        strings.TrimSpace(in.Phone),
		NGOID:        in.NGOID,
		Skills:       in.Skills,
		Verified:     false,
		Available:    true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.create(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info("Helper application received",
		logger.String("account_id", acc.ID.String()),
		logger.String("city", acc.City),
	)
	return acc, nil
}

// Login verifies a credential and mints a bearer token. Unverified helpers
// are refused.
func (s *Service) Login(ctx context.Context, email, password string) (string, *account.Account, error) {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.Internal("Failed to look up account", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if acc.Role == account.RoleHelper && !acc.Verified {
		return "", nil, apperrors.ErrHelperNotVerified
	}

	token, err := s.tokens.Issue(acc)
	if err != nil {
		return "", nil, apperrors.Internal("Failed to issue token", err)
	}

	s.logger.Info("Login successful",
		logger.String("account_id", acc.ID.String()),
		logger.String("role", string(acc.Role)),
	)
	return token, acc, nil
}

// Profile returns the account for an authenticated caller
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Internal("Failed to load account", err)
	}
	return acc, nil
}

// PendingHelpers lists helper applications awaiting verification
func (s *Service) PendingHelpers(ctx context.Context) ([]*account.Account, error) {
	helpers, err := s.accounts.ListUnverifiedHelpers(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list pending helpers", err)
	}
	return helpers, nil
}

// VerifyHelper marks a helper as verified. The second return value reports
// whether the helper was already verified, so callers can skip notification.
func (s *Service) VerifyHelper(ctx context.Context, helperID uuid.UUID) (*account.Account, bool, error) {
	acc, err := s.accounts.GetByID(ctx, helperID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, false, apperrors.ErrAccountNotFound
		}
		return nil, false, apperrors.Internal("Failed to load helper", err)
	}
	if acc.Role != account.RoleHelper {
		return nil, false, apperrors.ErrAccountNotFound
	}
	if acc.Verified {
		return acc, true, nil
	}

	if err := s.accounts.SetVerified(ctx, helperID); err != nil {
		return nil, false, apperrors.Internal("Failed to verify helper", err)
	}
	acc.Verified = true

	s.logger.Info("Helper verified", logger.String("account_id", helperID.String()))
	return acc, false, nil
}

func (s *Service) create(ctx context.Context, acc *account.Account) error {
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return apperrors.ErrEmailTaken
		}
		return apperrors.Internal("Failed to create account", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

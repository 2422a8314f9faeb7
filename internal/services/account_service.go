package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/auth"
	"benishangul-police/idregistry/internal/constants"
	"benishangul-police/idregistry/internal/db/repositories"
	"benishangul-police/idregistry/internal/logging"
	"benishangul-police/idregistry/internal/metrics"
	"benishangul-police/idregistry/internal/models/dtos/requests"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

// AccountService owns authentication and account management.
type AccountService struct {
	accounts *repositories.AccountRepository
	tokens   *auth.TokenService
	reg      *metrics.MetricsRegistry
}

func NewAccountService(
	accounts *repositories.AccountRepository,
	tokens *auth.TokenService,
	reg *metrics.MetricsRegistry,
) *AccountService {
	return &AccountService{accounts: accounts, tokens: tokens, reg: reg}
}

// Login verifies credentials and issues a session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, req *requests.LoginRequest) (string, time.Time, *auth.Principal, error) {
	if req.Username == "" || req.Password == "" {
		return "", time.Time{}, nil, apperrors.New(apperrors.KindValidation, "missing credentials")
	}

	account, err := s.accounts.FindByUsername(ctx, req.Username)
	if err != nil {
		if apperrors.HasKind(err, apperrors.KindNotFound) {
			s.countLoginFailure()
			return "", time.Time{}, nil, apperrors.New(apperrors.KindUnauthorized, "invalid username or password")
		}
		return "", time.Time{}, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		s.countLoginFailure()
		return "", time.Time{}, nil, apperrors.New(apperrors.KindUnauthorized, "invalid username or password")
	}

	principal := &auth.Principal{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	}

	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return "", time.Time{}, nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to issue token")
	}

	logging.Info("login succeeded", "username", account.Username, "role", account.Role.String())
	return token, expiresAt, principal, nil
}

// Create registers a new account.
func (s *AccountService) Create(ctx context.Context, req *requests.CreateAccountRequest) (*gormModels.Account, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperrors.New(apperrors.KindValidation, "username and password are required")
	}

	role := constants.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.New(apperrors.KindValidation, "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to hash password")
	}

	account := &gormModels.Account{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.accounts.Insert(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateRole changes an account's role. The last-admin guard applies to
// delete only; downgrading the final administrator is allowed.
func (s *AccountService) UpdateRole(ctx context.Context, id uint, req *requests.UpdateAccountRoleRequest) error {
	role := constants.Role(req.Role)
	if !role.Valid() {
		return apperrors.New(apperrors.KindValidation, "unknown role")
	}
	return s.accounts.UpdateRole(ctx, id, role)
}

// Delete removes an account, refusing to delete the last administrator.
func (s *AccountService) Delete(ctx context.Context, id uint) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if account.Role == constants.RoleAdministrator {
		count, err := s.accounts.CountByRole(ctx, constants.RoleAdministrator)
		if err != nil {
			return err
		}
		if count <= 1 {
			return apperrors.New(apperrors.KindConflict, "cannot delete the last administrator")
		}
	}

	return s.accounts.Delete(ctx, id)
}

// List returns all accounts.
func (s *AccountService) List(ctx context.Context) ([]gormModels.Account, error) {
	return s.accounts.List(ctx)
}

func (s *AccountService) countLoginFailure() {
	if s.reg != nil {
		s.reg.LoginFailuresTotal.Inc()
	}
}

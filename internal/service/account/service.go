package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ignite/social-api/internal/domain"
	"github.com/ignite/social-api/internal/pkg/distlock"
	"github.com/ignite/social-api/internal/pkg/logger"
)

var validate = validator.New()

type registration struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=4"`
}

// Service implements account business logic. It is safe for concurrent use.
type Service struct {
	repo  Repository
	locks distlock.Factory
}

// NewService creates an account service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetLocker makes Create serialise registrations per username. A nil
// factory disables locking.
func (s *Service) SetLocker(f distlock.Factory) { s.locks = f }

// Create registers a new account and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, candidate domain.Account) (*domain.Account, error) {
	candidate.Username = strings.TrimSpace(candidate.Username)
	candidate.Password = strings.TrimSpace(candidate.Password)
	if err := validateRegistration(candidate); err != nil {
		return nil, err
	}

	if s.locks != nil {
		lock := s.locks("account:username:" + candidate.Username)
		ok, err := lock.Acquire(ctx)
		if err != nil {
			return nil, &domain.ServiceError{Op: "lock username", Err: err}
		}
		if !ok {
			return nil, fmt.Errorf("%w: username %q is being registered", domain.ErrConflict, candidate.Username)
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("release username lock", "username", candidate.Username, "error", err)
			}
		}()
	}

	exists, err := s.repo.UsernameExists(ctx, candidate.Username)
	if err != nil {
		return nil, wrap("check username", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: username %q is taken", domain.ErrConflict, candidate.Username)
	}

	created, err := s.repo.Insert(ctx, domain.Account{
		Username: candidate.Username,
		Password: candidate.Password,
	})
	if err != nil {
		return nil, wrap("create account", err)
	}
	logger.Info("account registered", "account_id", created.AccountID, "username", created.Username)
	return created, nil
}

// Login returns the stored account whose username and password match the
// candidate exactly.
func (s *Service) Login(ctx context.Context, candidate domain.Account) (*domain.Account, error) {
	stored, err := s.repo.FindByUsername(ctx, candidate.Username)
	if err != nil {
		return nil, wrap("find account", err)
	}
	if stored == nil {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(stored.Password), []byte(candidate.Password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return stored, nil
}

// GetByID returns nil, nil when the account does not exist.
func (s *Service) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrap("get account", err)
	}
	return a, nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Account, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, wrap("list accounts", err)
	}
	return all, nil
}

func (s *Service) Update(ctx context.Context, a domain.Account) (bool, error) {
	ok, err := s.repo.Update(ctx, a)
	if err != nil {
		return false, wrap("update account", err)
	}
	return ok, nil
}

// Delete removes the account. Messages it posted are left in place.
func (s *Service) Delete(ctx context.Context, a domain.Account) (bool, error) {
	if a.AccountID == 0 {
		return false, fmt.Errorf("%w: account id is required", domain.ErrInvalidArgument)
	}
	ok, err := s.repo.Delete(ctx, a)
	if err != nil {
		return false, wrap("delete account", err)
	}
	return ok, nil
}

func validateRegistration(a domain.Account) error {
	err := validate.Struct(registration{Username: a.Username, Password: a.Password})
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	f := fields[0]
	switch {
	case f.Field() == "Username":
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	case f.Tag() == "min":
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, domain.MinPasswordLength)
	default:
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
}

// wrap passes domain errors through untouched and turns store faults into
// a ServiceError.
func wrap(op string, err error) error {
	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		return &domain.ServiceError{Op: op, Err: err}
	}
	return err
}

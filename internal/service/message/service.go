package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ignite/social-api/internal/domain"
)

var validate = validator.New()

// body holds the checked form of message text. max counts characters.
type body struct {
	Text string `validate:"required,max=254"`
}

// Service implements message business logic. It is safe for concurrent use.
type Service struct {
	repo Repository
}

// NewService creates a message service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores candidate on behalf of author. The author must exist (be
// non-nil) and must be the account named by candidate.PostedBy.
func (s *Service) Create(ctx context.Context, candidate domain.Message, author *domain.Account) (*domain.Message, error) {
	if author == nil {
		return nil, fmt.Errorf("%w: account %d does not exist", domain.ErrValidation, candidate.PostedBy)
	}
	if err := validateText(candidate.MessageText); err != nil {
		return nil, err
	}
	if author.AccountID != candidate.PostedBy {
		return nil, fmt.Errorf("%w: account %d cannot post as %d",
			domain.ErrAuthorization, author.AccountID, candidate.PostedBy)
	}

	created, err := s.repo.Insert(ctx, domain.Message{
		PostedBy:        candidate.PostedBy,
		MessageText:     candidate.MessageText,
		TimePostedEpoch: candidate.TimePostedEpoch,
	})
	if err != nil {
		return nil, wrap("create message", err)
	}
	return created, nil
}

// Update replaces the text of an existing message. Every other field of
// candidate is ignored.
func (s *Service) Update(ctx context.Context, candidate domain.Message) (*domain.Message, error) {
	existing, err := s.repo.GetByID(ctx, candidate.MessageID)
	if err != nil {
		return nil, wrap("get message", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: message %d", domain.ErrNotFound, candidate.MessageID)
	}

	existing.MessageText = candidate.MessageText
	if err := validateText(existing.MessageText); err != nil {
		return nil, err
	}

	ok, err := s.repo.Update(ctx, *existing)
	if err != nil {
		return nil, wrap("update message", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: message %d", domain.ErrNotFound, candidate.MessageID)
	}
	return existing, nil
}

// Delete removes existing. It fails with domain.ErrNotFound when no row
// was removed.
func (s *Service) Delete(ctx context.Context, existing domain.Message) error {
	ok, err := s.repo.Delete(ctx, existing)
	if err != nil {
		return wrap("delete message", err)
	}
	if !ok {
		return fmt.Errorf("%w: message %d", domain.ErrNotFound, existing.MessageID)
	}
	return nil
}

// GetByID returns nil, nil when the message does not exist.
func (s *Service) GetByID(ctx context.Context, id int) (*domain.Message, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrap("get message", err)
	}
	return m, nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Message, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, wrap("list messages", err)
	}
	return all, nil
}

// GetByAccountID lists the messages posted by accountID, oldest id first.
func (s *Service) GetByAccountID(ctx context.Context, accountID int) ([]domain.Message, error) {
	msgs, err := s.repo.FindByPostedBy(ctx, accountID)
	if err != nil {
		return nil, wrap("list messages by account", err)
	}
	return msgs, nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: message text is required", domain.ErrValidation)
	}
	if err := validate.Struct(body{Text: text}); err != nil {
		return fmt.Errorf("%w: message text exceeds %d characters", domain.ErrValidation, domain.MaxMessageLength)
	}
	return nil
}

func wrap(op string, err error) error {
	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		return &domain.ServiceError{Op: op, Err: err}
	}
	return err
}

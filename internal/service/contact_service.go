package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/repository"
)

// ContactService exposes administrative access to stored contacts.
type ContactService interface {
	List(ctx context.Context) ([]models.Contact, error)
	Get(ctx context.Context, id uint) (models.Contact, error)
	Update(ctx context.Context, id uint, req dto.ContactUpdateRequest) error
	Delete(ctx context.Context, id uint) error
}

type contactService struct {
	repo      repository.ContactRepository
	validator SubmissionValidator
	logger    zerolog.Logger
}

// NewContactService constructs the contact CRUD service.
func NewContactService(repo repository.ContactRepository, validate *validator.Validate, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:      repo,
		validator: NewSubmissionValidator(validate),
		logger:    logger.With().Str("component", "contact_service").Logger(),
	}
}

func (s *contactService) List(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return contacts, nil
}

func (s *contactService) Get(ctx context.Context, id uint) (models.Contact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Contact{}, translateStoreError("get", err)
	}
	return contact, nil
}

// Update rejects a body whose id disagrees with the path before the store is touched.
func (s *contactService) Update(ctx context.Context, id uint, req dto.ContactUpdateRequest) error {
	if req.ID != id {
		return &ValidationError{Field: "id", Reason: "does not match the resource identifier"}
	}
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	err := s.repo.Update(ctx, models.Contact{ID: id, Name: req.Name, Email: req.Email, Message: req.Message})
	if err != nil {
		return translateStoreError("update", err)
	}

	s.logger.Info().Uint("contact_id", id).Msg("contact updated")
	return nil
}

func (s *contactService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateStoreError("delete", err)
	}

	s.logger.Info().Uint("contact_id", id).Msg("contact deleted")
	return nil
}

func translateStoreError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrContactNotFound
	}
	return &StorageError{Op: op, Err: err}
}

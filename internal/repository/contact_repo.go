package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/portfolio-api/internal/models"
)

// ErrNotFound is returned when no contact row matches.
var ErrNotFound = errors.New("record not found")

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id uint) (models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Update(ctx context.Context, contact models.Contact) error
	Delete(ctx context.Context, id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs a repository backed by GORM.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).First(&contact, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Contact{}, ErrNotFound
	}
	return contact, err
}

func (r *contactRepository) List(ctx context.Context) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&contacts).Error
	return contacts, err
}

// Update overwrites name, email and message in a single statement. A row that
// vanished between lookup and write surfaces as ErrNotFound.
func (r *contactRepository) Update(ctx context.Context, contact models.Contact) error {
	result := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ?", contact.ID).
		Updates(map[string]interface{}{
			"name":    contact.Name,
			"email":   contact.Email,
			"message": contact.Message,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

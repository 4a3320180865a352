package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/persistence/models"
)

// GormContactRepository implements ordering.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create persists a new contact
func (r *GormContactRepository) Create(ctx context.Context, contact *ordering.Contact) error {
	return r.db.WithContext(ctx).Create(models.ContactModelFromDomain(contact)).Error
}

// Save persists changes to an existing contact
func (r *GormContactRepository) Save(ctx context.Context, contact *ordering.Contact) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContactModel{}).
		Where("id = ?", contact.ID).
		Updates(models.ContactModelFromDomain(contact))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByAccount returns the account's contacts, oldest first
func (r *GormContactRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ordering.Contact, error) {
	var found []models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at").
		Find(&found).Error; err != nil {
		return nil, err
	}
	contacts := make([]ordering.Contact, 0, len(found))
	for i := range found {
		contacts = append(contacts, *found[i].ToDomain())
	}
	return contacts, nil
}

// Delete removes a contact owned by the account
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID, accountID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&models.ContactModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

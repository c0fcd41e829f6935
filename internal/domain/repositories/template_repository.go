package repositories

import (
	"context"

	"github.com/radyosim/backend/internal/domain/entities"
)

// TemplateRepository provides access to the report template catalog,
// addressed by composite `category::name` keys
type TemplateRepository interface {
	// GetByKey returns the template for a composite key
	GetByKey(ctx context.Context, key string) (*entities.Template, error)

	// ListCategories returns all template categories
	ListCategories(ctx context.Context) ([]string, error)

	// ListByCategory returns the templates in one category
	ListByCategory(ctx context.Context, category string) ([]*entities.Template, error)
}

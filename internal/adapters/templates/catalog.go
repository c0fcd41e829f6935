package templates

import (
	"context"
	"fmt"
	"sort"

	"github.com/radyosim/backend/internal/domain/entities"
	"github.com/radyosim/backend/internal/domain/repositories"
	apperrors "github.com/radyosim/backend/pkg/errors"
)

// StaticCatalog implements TemplateRepository over the built-in report
// template set
type StaticCatalog struct {
	byCategory map[string]map[string]string
}

// NewStaticCatalog creates a catalog backed by the built-in templates
func NewStaticCatalog() repositories.TemplateRepository {
	return &StaticCatalog{byCategory: reportTemplates}
}

// GetByKey returns the template for a composite `category::name` key
func (c *StaticCatalog) GetByKey(ctx context.Context, key string) (*entities.Template, error) {
	category, name, err := entities.ParseTemplateKey(key)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	group, ok := c.byCategory[category]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("template category not found: %s", category))
	}
	body, ok := group[name]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("template not found: %s", key))
	}

	return &entities.Template{Category: category, Name: name, Body: body}, nil
}

// ListCategories returns all template categories in sorted order
func (c *StaticCatalog) ListCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0, len(c.byCategory))
	for category := range c.byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

// ListByCategory returns the templates of one category sorted by name
func (c *StaticCatalog) ListByCategory(ctx context.Context, category string) ([]*entities.Template, error) {
	group, ok := c.byCategory[category]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("template category not found: %s", category))
	}

	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*entities.Template, 0, len(names))
	for _, name := range names {
		out = append(out, &entities.Template{Category: category, Name: name, Body: group[name]})
	}
	return out, nil
}

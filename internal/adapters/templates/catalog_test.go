package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/radyosim/backend/pkg/errors"
)

func TestStaticCatalog_GetByKey(t *testing.T) {
	catalog := NewStaticCatalog()

	tpl, err := catalog.GetByKey(context.Background(), "BT Beyin::Acil Kontrastsız Beyin BT")
	require.NoError(t, err)
	assert.Equal(t, "BT Beyin", tpl.Category)
	assert.Equal(t, "Acil Kontrastsız Beyin BT", tpl.Name)
	assert.Contains(t, tpl.Body, "{patient_name}")
	assert.Contains(t, tpl.Body, "ACİL KONTRASTSIZ BEYİN BT İNCELEMESİ")
}

func TestStaticCatalog_GetByKey_NotFound(t *testing.T) {
	catalog := NewStaticCatalog()

	_, err := catalog.GetByKey(context.Background(), "BT Beyin::Yok Böyle Bir Şablon")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestStaticCatalog_GetByKey_InvalidKey(t *testing.T) {
	catalog := NewStaticCatalog()

	_, err := catalog.GetByKey(context.Background(), "no-separator")
	assert.True(t, apperrors.IsValidationError(err))
}

func TestStaticCatalog_ListCategories(t *testing.T) {
	catalog := NewStaticCatalog()

	categories, err := catalog.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BT Beyin", "BT Toraks"}, categories)
}

func TestStaticCatalog_ListByCategory(t *testing.T) {
	catalog := NewStaticCatalog()

	tpls, err := catalog.ListByCategory(context.Background(), "BT Toraks")
	require.NoError(t, err)
	require.Len(t, tpls, 2)
	// Sorted by name.
	assert.Equal(t, "Acil Kontrastsız Toraks BT", tpls[0].Name)
	assert.Equal(t, "Normal Kontrastsız Toraks BT", tpls[1].Name)

	_, err = catalog.ListByCategory(context.Background(), "MR")
	assert.Error(t, err)
}

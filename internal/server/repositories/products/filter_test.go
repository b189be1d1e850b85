package products

import (
	"testing"

	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildFilter_Empty(t *testing.T) {
	w := buildFilter(models.ProductFilter{Search: "   "})
	assert.Equal(t, "", w.String())
	assert.Empty(t, w.args)
}

func TestBuildFilter_AllConditions(t *testing.T) {
	catID := uuid.New()
	minP := decimal.RequireFromString("10")
	maxP := decimal.RequireFromString("99.99")
	inStock := true

	w := buildFilter(models.ProductFilter{
		Search:       " laptop ",
		CategoryID:   &catID,
		CategoryName: "Electronics",
		MinPrice:     &minP,
		MaxPrice:     &maxP,
		InStock:      &inStock,
	})

	assert.Equal(t,
		" WHERE to_tsvector('english', p.name || ' ' || COALESCE(p.description, '')) @@ plainto_tsquery('english', $1)"+
			" AND p.category_id = $2"+
			" AND LOWER(c.name) = LOWER($3)"+
			" AND p.price >= $4"+
			" AND p.price <= $5"+
			" AND p.stock > 0",
		w.String())
	assert.Equal(t, []any{"laptop", catID, "Electronics", minP, maxP}, w.args)

	assert.Equal(t, "$6", w.next(10))
	assert.Equal(t, "$7", w.next(0))
}

func TestBuildFilter_OutOfStock(t *testing.T) {
	inStock := false
	w := buildFilter(models.ProductFilter{InStock: &inStock})
	assert.Equal(t, " WHERE p.stock = 0", w.String())
	assert.Empty(t, w.args)
}

package products

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
)

// whereClause accumulates AND-ed conditions with positional arguments.
type whereClause struct {
	conds []string
	args  []any
}

// add appends cond, replacing each "?" with the next positional placeholder.
func (w *whereClause) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// next returns the placeholder for an argument appended after the conditions.
func (w *whereClause) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func buildFilter(f models.ProductFilter) *whereClause {
	w := &whereClause{}

	if s := strings.TrimSpace(f.Search); s != "" {
		w.add("to_tsvector('english', p.name || ' ' || COALESCE(p.description, '')) @@ plainto_tsquery('english', ?)", s)
	}
	if f.CategoryID != nil {
		w.add("p.category_id = ?", *f.CategoryID)
	}
	if name := strings.TrimSpace(f.CategoryName); name != "" {
		w.add("LOWER(c.name) = LOWER(?)", name)
	}
	if f.MinPrice != nil {
		w.add("p.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.add("p.price <= ?", *f.MaxPrice)
	}
	if f.InStock != nil {
		if *f.InStock {
			w.add("p.stock > 0")
		} else {
			w.add("p.stock = 0")
		}
	}

	return w
}

package migrate

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/prodboard/prodboard/internal/models"
)

// ProductResolver resolves free-text product references from note metadata
// to product rows already present in the target store.
type ProductResolver struct {
	db *gorm.DB
}

// NewProductResolver creates a resolver against the given database handle
func NewProductResolver(db *gorm.DB) *ProductResolver {
	return &ProductResolver{db: db}
}

// Resolve turns a product reference into a product id. A numeric reference
// is matched exactly against the stored gitlab_issue_id; anything else is a
// best-effort case-insensitive substring match on the product name, first
// match in storage order. No match yields nil, never an error.
func (r *ProductResolver) Resolve(ref string) (*uint, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	var product models.Product
	var err error

	if sourceID, parseErr := strconv.ParseInt(ref, 10, 64); parseErr == nil {
		err = r.db.Where("gitlab_issue_id = ?", sourceID).First(&product).Error
	} else {
		pattern := "%" + strings.ToLower(ref) + "%"
		err = r.db.Where("LOWER(name) LIKE ?", pattern).First(&product).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product.ID, nil
}

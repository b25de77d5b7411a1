package sqlstore

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"strings"

	"gorm.io/gorm"
)

type AdRepository struct {
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) *AdRepository {
	return &AdRepository{db: db}
}

var _ interfaces.AdRepository = (*AdRepository)(nil)

func (r *AdRepository) Create(ctx context.Context, ad *entities.Ad) error {
	return translate(r.db.WithContext(ctx).Create(ad).Error)
}

func (r *AdRepository) GetByID(ctx context.Context, id string) (*entities.Ad, error) {
	var ad entities.Ad
	if err := r.db.WithContext(ctx).First(&ad, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &ad, nil
}

// List applies exact state/district filters and a case-insensitive text match
// over title, category and description. Newest first.
func (r *AdRepository) List(ctx context.Context, filter entities.AdFilter) ([]*entities.Ad, error) {
	query := r.db.WithContext(ctx).Model(&entities.Ad{})

	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.District != "" {
		query = query.Where("district = ?", filter.District)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'",
			like, like, like,
		)
	}

	ads := []*entities.Ad{}
	if err := query.Order("created_at DESC").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *AdRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&entities.Ad{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// escapeLike makes user input match literally inside a LIKE pattern.
// The escape character is '!' on both MySQL and SQLite.
func escapeLike(s string) string {
	return strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(s)
}

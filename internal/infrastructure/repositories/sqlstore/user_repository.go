package sqlstore

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ interfaces.UserRepository = (*UserRepository)(nil)

// Create returns entities.ErrConflict when username or email is taken
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByUsernameOrEmail matches either column
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

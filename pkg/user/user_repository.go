package user

import (
	"context"

	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string, viewerID string) (*entities.User, error)
		CheckEmailExists(ctx context.Context, email string) (bool, error)
		CheckUsernameExists(ctx context.Context, username string) (bool, error)
		GetSubscribedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error)
		GetAuthorsRecipes(ctx context.Context, authorIDs []uuid.UUID, perAuthor int) ([]*entities.Recipe, error)
		CountAuthorsRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// withSubscribedFlag selects whether the viewer follows each returned user.
func withSubscribedFlag(viewerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewerID == "" {
			return db.Select("users.*, FALSE AS is_subscribed")
		}
		return db.Select("users.*, EXISTS (SELECT 1 FROM subscriptions s WHERE s.author_id = users.id AND s.user_id = ?) AS is_subscribed", viewerID)
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string, viewerID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Scopes(withSubscribedFlag(viewerID)).
		Where("users.id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) GetSubscribedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return authors, 0, nil
	}

	if err := r.db.WithContext(ctx).
		Select("users.*, TRUE AS is_subscribed").
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at DESC").
		Order("users.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, count, nil
}

// GetAuthorsRecipes returns up to perAuthor newest recipes of each author in
// one query; perAuthor <= 0 returns all of them.
func (r *userRepository) GetAuthorsRecipes(ctx context.Context, authorIDs []uuid.UUID, perAuthor int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if len(authorIDs) == 0 {
		return recipes, nil
	}

	ranked := r.db.
		Model(&entities.Recipe{}).
		Select("recipes.*, ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY created_at DESC, id DESC) AS rn").
		Where("author_id IN ?", authorIDs)

	query := r.db.WithContext(ctx).Table("(?) AS recipes", ranked)
	if perAuthor > 0 {
		query = query.Where("rn <= ?", perAuthor)
	}
	if err := query.Order("author_id").Order("rn").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *userRepository) CountAuthorsRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

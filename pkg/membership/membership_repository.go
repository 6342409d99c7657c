package membership

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MembershipRepository interface {
		TargetExists(ctx context.Context, kind Kind, targetID uuid.UUID) (bool, error)
		CreateMembership(ctx context.Context, kind Kind, id, userID, targetID uuid.UUID) error
		DeleteMembership(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (int64, error)
		MembershipExists(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (bool, error)
	}

	membershipRepository struct {
		db *gorm.DB
	}
)

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) TargetExists(ctx context.Context, kind Kind, targetID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(kind.targetModel()).
		Where("id = ?", targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *membershipRepository) CreateMembership(ctx context.Context, kind Kind, id, userID, targetID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(kind.newRow(id, userID, targetID)).Error
}

func (r *membershipRepository) DeleteMembership(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND "+kind.TargetColumn+" = ?", userID, targetID).
		Delete(kind.model())
	return result.RowsAffected, result.Error
}

func (r *membershipRepository) MembershipExists(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(kind.model()).
		Where("user_id = ? AND "+kind.TargetColumn+" = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

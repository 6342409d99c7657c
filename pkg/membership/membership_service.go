package membership

import (
	"context"
	"errors"
	"time"

	"foodgram/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MembershipService interface {
		Add(ctx context.Context, kind Kind, userID, targetID string) (domain.Membership, error)
		Remove(ctx context.Context, kind Kind, userID, targetID string) error
		Exists(ctx context.Context, kind Kind, userID, targetID string) (bool, error)
	}

	membershipService struct {
		membershipRepository MembershipRepository
	}
)

func NewMembershipService(membershipRepository MembershipRepository) MembershipService {
	return &membershipService{membershipRepository: membershipRepository}
}

func (s *membershipService) Add(ctx context.Context, kind Kind, userID, targetID string) (domain.Membership, error) {
	userUUID, targetUUID, err := parseIDs(kind, userID, targetID)
	if err != nil {
		return domain.Membership{}, err
	}
	// Compare parsed ids: uppercase, braced and urn forms name the same user.
	if !kind.AllowSelf && userUUID == targetUUID {
		return domain.Membership{}, domain.ErrSelfSubscription
	}
	if err := s.targetExists(ctx, kind, targetUUID); err != nil {
		return domain.Membership{}, err
	}

	id := uuid.New()
	if err := s.membershipRepository.CreateMembership(ctx, kind, id, userUUID, targetUUID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return domain.Membership{}, kind.ErrAlready
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// the target was checked above, so the acting user is gone
			return domain.Membership{}, domain.ErrAuthenticationFailed
		}
		return domain.Membership{}, err
	}

	return domain.Membership{
		ID:        id.String(),
		Kind:      kind.Name,
		UserID:    userUUID.String(),
		TargetID:  targetUUID.String(),
		CreatedAt: time.Now(),
	}, nil
}

func (s *membershipService) Remove(ctx context.Context, kind Kind, userID, targetID string) error {
	userUUID, targetUUID, err := parseIDs(kind, userID, targetID)
	if err != nil {
		return err
	}
	if err := s.targetExists(ctx, kind, targetUUID); err != nil {
		return err
	}

	deleted, err := s.membershipRepository.DeleteMembership(ctx, kind, userUUID, targetUUID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return kind.ErrNotMember
	}
	return nil
}

func (s *membershipService) Exists(ctx context.Context, kind Kind, userID, targetID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return false, domain.ErrParseUUID
	}
	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return false, nil
	}
	return s.membershipRepository.MembershipExists(ctx, kind, userUUID, targetUUID)
}

func parseIDs(kind Kind, userID, targetID string) (uuid.UUID, uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrAuthenticationFailed
	}
	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return uuid.Nil, uuid.Nil, kind.ErrTargetNotFound
	}
	return userUUID, targetUUID, nil
}

func (s *membershipService) targetExists(ctx context.Context, kind Kind, targetID uuid.UUID) error {
	found, err := s.membershipRepository.TargetExists(ctx, kind, targetID)
	if err != nil {
		return err
	}
	if !found {
		return kind.ErrTargetNotFound
	}
	return nil
}

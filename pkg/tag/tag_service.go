package tag

import (
	"context"
	"errors"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.Tag, error)
		GetTagByID(ctx context.Context, id string) (domain.Tag, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		res = append(res, toTagResponse(t))
	}
	return res, nil
}

func (s *tagService) GetTagByID(ctx context.Context, id string) (domain.Tag, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Tag{}, domain.ErrTagNotFound
	}

	t, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, domain.ErrTagNotFound
		}
		return domain.Tag{}, err
	}
	return toTagResponse(t), nil
}

func toTagResponse(t *entities.Tag) domain.Tag {
	return domain.Tag{
		ID:    t.ID.String(),
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}

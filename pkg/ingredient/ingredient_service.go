package ingredient

import (
	"context"
	"errors"
	"strings"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
		GetIngredientByID(ctx context.Context, id string) (domain.Ingredient, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, strings.TrimSpace(namePrefix))
	if err != nil {
		return nil, err
	}

	res := make([]domain.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, toIngredientResponse(i))
	}
	return res, nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, id string) (domain.Ingredient, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Ingredient{}, domain.ErrIngredientNotFound
	}

	i, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}
	return toIngredientResponse(i), nil
}

func toIngredientResponse(i *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              i.ID.String(),
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

package recipe

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "recipes/images"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, authorID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		GetRecipe(ctx context.Context, recipeID string, viewerID string) (domain.Recipe, error)
		ListRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.RecipeListResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}

	ingredientAmount struct {
		id     uuid.UUID
		amount int
	}

	// composition is a write payload that passed every check and can be
	// stored without further reads.
	composition struct {
		tagIDs      []uuid.UUID
		ingredients []ingredientAmount
		image       *storage.Image
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, authorID string) (domain.Recipe, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.Recipe{}, domain.ErrAuthenticationFailed
	}

	c, err := s.compose(ctx, req, true)
	if err != nil {
		return domain.Recipe{}, err
	}

	imageURL, err := s.uploadImage(ctx, *c.image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        strings.TrimSpace(req.Name),
		Text:        req.Text,
		CookingTime: req.CookingTime,
		ImageURL:    imageURL,
	}
	tags, ingredients := c.links(recipe.ID)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tags, ingredients); err != nil {
		log.Errorf("create recipe %s: %v", recipe.ID, err)
		s.removeImage(ctx, imageURL)
		return domain.Recipe{}, domain.ErrSaveRecipeFailed
	}

	return s.GetRecipe(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.Recipe, error) {
	existing, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.Recipe{}, err
	}

	c, err := s.compose(ctx, req, false)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        strings.TrimSpace(req.Name),
		Text:        req.Text,
		CookingTime: req.CookingTime,
		ImageURL:    existing.ImageURL,
	}

	var newImageURL string
	if c.image != nil {
		newImageURL, err = s.uploadImage(ctx, *c.image)
		if err != nil {
			return domain.Recipe{}, err
		}
		recipe.ImageURL = newImageURL
	}

	tags, ingredients := c.links(recipe.ID)
	if err := s.recipeRepository.ReplaceRecipe(ctx, recipe, tags, ingredients); err != nil {
		if newImageURL != "" {
			s.removeImage(ctx, newImageURL)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		log.Errorf("update recipe %s: %v", recipe.ID, err)
		return domain.Recipe{}, domain.ErrSaveRecipeFailed
	}

	// The old image goes only once the new one is committed.
	if newImageURL != "" {
		s.removeImage(ctx, existing.ImageURL)
	}

	return s.GetRecipe(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	existing, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, existing.ID); err != nil {
		return err
	}

	s.removeImage(ctx, existing.ImageURL)
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID string, viewerID string) (domain.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}

	return toRecipeResponse(recipe), nil
}

func (s *recipeService) ListRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.RecipeListResponse, error) {
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)
	res := domain.RecipeListResponse{
		Recipes:    []domain.Recipe{},
		Pagination: domain.NewPagination(filter.Page, filter.Limit, 0),
	}

	// Membership filters only ever look at the viewer's own collections.
	if viewerID == "" && (filter.IsFavorited || filter.IsInShoppingCart) {
		return res, nil
	}
	if filter.AuthorID != "" {
		if _, err := uuid.Parse(filter.AuthorID); err != nil {
			return res, nil
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	for _, r := range recipes {
		res.Recipes = append(res.Recipes, toRecipeResponse(r))
	}
	res.Pagination = domain.NewPagination(filter.Page, filter.Limit, count)
	return res, nil
}

// compose runs every check a write needs before anything is stored.
func (s *recipeService) compose(ctx context.Context, req domain.RecipeRequest, requireImage bool) (composition, error) {
	var c composition
	var err error

	if c.tagIDs, err = parseTags(req.Tags); err != nil {
		return composition{}, err
	}
	if c.ingredients, err = parseIngredients(req.Ingredients); err != nil {
		return composition{}, err
	}
	if err := validateFields(req); err != nil {
		return composition{}, err
	}

	if req.Image == "" {
		if requireImage {
			return composition{}, domain.ErrImageRequired
		}
	} else {
		image, err := storage.DecodeDataURI(req.Image)
		if err != nil {
			return composition{}, domain.ErrInvalidImage
		}
		c.image = &image
	}

	if err := s.checkReferences(ctx, c); err != nil {
		return composition{}, err
	}
	return c, nil
}

func parseTags(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, domain.ErrEmptyTagSet
	}

	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, domain.Detail(domain.ErrUnknownTag, "%s", r)
		}
		if _, ok := seen[id]; ok {
			return nil, domain.ErrDuplicateTags
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseIngredients(raw []domain.RecipeIngredientRequest) ([]ingredientAmount, error) {
	if len(raw) == 0 {
		return nil, domain.ErrEmptyIngredientSet
	}

	items := make([]ingredientAmount, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, domain.Detail(domain.ErrUnknownIngredient, "%s", r.ID)
		}
		if _, ok := seen[id]; ok {
			return nil, domain.ErrDuplicateIngredients
		}
		seen[id] = struct{}{}
		items = append(items, ingredientAmount{id: id, amount: r.Amount})
	}

	for _, item := range items {
		if item.amount <= 0 {
			return nil, domain.ErrInvalidAmount
		}
	}
	return items, nil
}

func validateFields(req domain.RecipeRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > domain.RecipeNameMaxLength {
		return domain.ErrInvalidName
	}
	if strings.TrimSpace(req.Text) == "" {
		return domain.ErrInvalidText
	}
	if req.CookingTime < 1 {
		return domain.ErrInvalidCookingTime
	}
	return nil
}

func (s *recipeService) checkReferences(ctx context.Context, c composition) error {
	foundTags, err := s.recipeRepository.GetExistingTagIDs(ctx, c.tagIDs)
	if err != nil {
		return err
	}
	if missing, ok := firstMissing(c.tagIDs, foundTags); ok {
		return domain.Detail(domain.ErrUnknownTag, "%s", missing)
	}

	ingredientIDs := make([]uuid.UUID, 0, len(c.ingredients))
	for _, item := range c.ingredients {
		ingredientIDs = append(ingredientIDs, item.id)
	}
	foundIngredients, err := s.recipeRepository.GetExistingIngredientIDs(ctx, ingredientIDs)
	if err != nil {
		return err
	}
	if missing, ok := firstMissing(ingredientIDs, foundIngredients); ok {
		return domain.Detail(domain.ErrUnknownIngredient, "%s", missing)
	}
	return nil
}

func firstMissing(want, found []uuid.UUID) (uuid.UUID, bool) {
	present := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range want {
		if _, ok := present[id]; !ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (c composition) links(recipeID uuid.UUID) ([]*entities.RecipeTag, []*entities.RecipeIngredient) {
	tags := make([]*entities.RecipeTag, 0, len(c.tagIDs))
	for _, id := range c.tagIDs {
		tags = append(tags, &entities.RecipeTag{ID: uuid.New(), RecipeID: recipeID, TagID: id})
	}

	ingredients := make([]*entities.RecipeIngredient, 0, len(c.ingredients))
	for i, item := range c.ingredients {
		ingredients = append(ingredients, &entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: item.id,
			Amount:       item.amount,
			Position:     i,
		})
	}
	return tags, ingredients
}

func (s *recipeService) ownedRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeOwner(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	if recipe.AuthorID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) uploadImage(ctx context.Context, image storage.Image) (string, error) {
	key, err := s.s3.UploadFile(ctx, uuid.NewString()+image.Ext, image.Data, imageFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrExtensionNotAllowed) {
			return "", domain.ErrInvalidImage
		}
		log.Errorf("upload recipe image: %v", err)
		return "", domain.ErrSaveRecipeFailed
	}
	return s.s3.GetPublicLinkKey(key), nil
}

func (s *recipeService) removeImage(ctx context.Context, link string) {
	key := s.s3.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warnf("remove recipe image %s: %v", key, err)
	}
}

func toRecipeResponse(r *entities.Recipe) domain.Recipe {
	res := domain.Recipe{
		ID:               r.ID.String(),
		Tags:             make([]domain.RecipeTag, 0, len(r.RecipeTags)),
		Ingredients:      make([]domain.RecipeIngredient, 0, len(r.RecipeIngredients)),
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		CreatedAt:        r.CreatedAt,
	}

	if r.Author != nil {
		res.Author = &domain.UserResponse{
			ID:           r.Author.ID.String(),
			Email:        r.Author.Email,
			Username:     r.Author.Username,
			FirstName:    r.Author.FirstName,
			LastName:     r.Author.LastName,
			IsSubscribed: r.IsAuthorSubscribed,
		}
	}

	for _, rt := range r.RecipeTags {
		if rt.Tag == nil {
			continue
		}
		res.Tags = append(res.Tags, domain.RecipeTag{
			ID:    rt.Tag.ID.String(),
			Name:  rt.Tag.Name,
			Color: rt.Tag.Color,
			Slug:  rt.Tag.Slug,
		})
	}

	for _, ri := range r.RecipeIngredients {
		if ri.Ingredient == nil {
			continue
		}
		res.Ingredients = append(res.Ingredients, domain.RecipeIngredient{
			ID:              ri.Ingredient.ID.String(),
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}

	return res
}

package user

import (
	"context"
	"errors"
	"strings"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUserByID(ctx context.Context, id string, viewerID string) (domain.UserResponse, error)
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error)
		GetSubscriptionAuthor(ctx context.Context, authorID string, viewerID string, recipesLimit int) (domain.SubscriptionAuthor, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if exists {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	}

	exists, err = s.userRepository.CheckUsernameExists(ctx, req.Username)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if exists {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrUserAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	return domain.LoginResponse{
		AuthToken: s.jwtService.GenerateTokenUser(user.ID.String()),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	return s.GetUserByID(ctx, userID, "")
}

func (s *userService) GetUserByID(ctx context.Context, id string, viewerID string) (domain.UserResponse, error) {
	user, err := s.getUser(ctx, id, viewerID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error) {
	page, limit = domain.NormalizePage(page, limit)

	authors, count, err := s.userRepository.GetSubscribedAuthors(ctx, userID, page, limit)
	if err != nil {
		return domain.SubscriptionListResponse{}, err
	}

	res, err := s.withRecipes(ctx, authors, recipesLimit)
	if err != nil {
		return domain.SubscriptionListResponse{}, err
	}

	return domain.SubscriptionListResponse{
		Authors:    res,
		Pagination: domain.NewPagination(page, limit, count),
	}, nil
}

func (s *userService) GetSubscriptionAuthor(ctx context.Context, authorID string, viewerID string, recipesLimit int) (domain.SubscriptionAuthor, error) {
	author, err := s.getUser(ctx, authorID, viewerID)
	if err != nil {
		return domain.SubscriptionAuthor{}, err
	}

	res, err := s.withRecipes(ctx, []*entities.User{author}, recipesLimit)
	if err != nil {
		return domain.SubscriptionAuthor{}, err
	}
	return res[0], nil
}

func (s *userService) getUser(ctx context.Context, id string, viewerID string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.userRepository.GetUserByID(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// withRecipes attaches a recipe preview and total recipe count to every
// author with two queries for the whole page.
func (s *userService) withRecipes(ctx context.Context, authors []*entities.User, recipesLimit int) ([]domain.SubscriptionAuthor, error) {
	res := make([]domain.SubscriptionAuthor, 0, len(authors))
	if len(authors) == 0 {
		return res, nil
	}

	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	recipes, err := s.userRepository.GetAuthorsRecipes(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	counts, err := s.userRepository.CountAuthorsRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}

	byAuthor := make(map[uuid.UUID][]domain.RecipeSummary, len(authors))
	for _, r := range recipes {
		byAuthor[r.AuthorID] = append(byAuthor[r.AuthorID], domain.RecipeSummary{
			ID:          r.ID.String(),
			Name:        r.Name,
			Image:       r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}

	for _, a := range authors {
		summaries := byAuthor[a.ID]
		if summaries == nil {
			summaries = []domain.RecipeSummary{}
		}
		res = append(res, domain.SubscriptionAuthor{
			UserResponse: toUserResponse(a),
			Recipes:      summaries,
			RecipesCount: counts[a.ID],
		})
	}
	return res, nil
}

func toUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}

package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/pkg/membership"
	"foodgram/pkg/recipe"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type (
	// MembershipHandler adds and removes the target named by :id to one of
	// the caller's collections.
	MembershipHandler interface {
		Add(c *fiber.Ctx) error
		Remove(c *fiber.Ctx) error
	}

	// presentFunc renders the target after a successful add.
	presentFunc func(c *fiber.Ctx, targetID, userID string) (any, error)

	membershipHandler struct {
		kind              membership.Kind
		membershipService membership.MembershipService
		present           presentFunc
		addedMessage      string
	}
)

func NewFavoriteHandler(membershipService membership.MembershipService, recipeService recipe.RecipeService) MembershipHandler {
	return &membershipHandler{
		kind:              membership.Favorite,
		membershipService: membershipService,
		present:           recipeSummary(recipeService),
		addedMessage:      domain.MessageSuccessAddFavorite,
	}
}

func NewShoppingCartHandler(membershipService membership.MembershipService, recipeService recipe.RecipeService) MembershipHandler {
	return &membershipHandler{
		kind:              membership.ShoppingCart,
		membershipService: membershipService,
		present:           recipeSummary(recipeService),
		addedMessage:      domain.MessageSuccessAddShoppingCart,
	}
}

func NewSubscriptionHandler(membershipService membership.MembershipService, userService user.UserService) MembershipHandler {
	return &membershipHandler{
		kind:              membership.Subscription,
		membershipService: membershipService,
		present: func(c *fiber.Ctx, targetID, userID string) (any, error) {
			return userService.GetSubscriptionAuthor(c.UserContext(), targetID, userID, c.QueryInt("recipes_limit", 0))
		},
		addedMessage: domain.MessageSuccessSubscribe,
	}
}

func recipeSummary(recipeService recipe.RecipeService) presentFunc {
	return func(c *fiber.Ctx, targetID, userID string) (any, error) {
		r, err := recipeService.GetRecipe(c.UserContext(), targetID, userID)
		if err != nil {
			return nil, err
		}
		return r.Summary(), nil
	}
}

func (h *membershipHandler) Add(c *fiber.Ctx) error {
	userID, targetID := middleware.UserID(c), c.Params("id")

	if _, err := h.membershipService.Add(c.UserContext(), h.kind, userID, targetID); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedAddMembership, err)
	}

	res, err := h.present(c, targetID, userID)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedAddMembership, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, h.addedMessage)
}

func (h *membershipHandler) Remove(c *fiber.Ctx) error {
	if err := h.membershipService.Remove(c.UserContext(), h.kind, middleware.UserID(c), c.Params("id")); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedRemoveMembership, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}


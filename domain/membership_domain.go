package domain

import (
	"time"
)

var (
	MessageSuccessAddFavorite      = "recipe added to favorites"
	MessageSuccessRemoveFavorite   = "recipe removed from favorites"
	MessageSuccessAddShoppingCart  = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart   = "recipe removed from shopping cart"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedAddMembership    = "failed to add to collection"
	MessageFailedRemoveMembership = "failed to remove from collection"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrAlreadyMember = NewConflictError("errors", "already a member of this collection")
	ErrNotAMember    = NewConflictError("errors", "not a member of this collection")

	ErrAlreadyFavorited  = &Error{Kind: ErrAlreadyMember, Field: "errors", Message: "recipe is already in favorites"}
	ErrAlreadyInCart     = &Error{Kind: ErrAlreadyMember, Field: "errors", Message: "recipe is already in the shopping cart"}
	ErrAlreadySubscribed = &Error{Kind: ErrAlreadyMember, Field: "errors", Message: "already subscribed to this user"}

	ErrNotFavorited  = &Error{Kind: ErrNotAMember, Field: "errors", Message: "recipe is not in favorites"}
	ErrNotInCart     = &Error{Kind: ErrNotAMember, Field: "errors", Message: "recipe is not in the shopping cart"}
	ErrNotSubscribed = &Error{Kind: ErrNotAMember, Field: "errors", Message: "not subscribed to this user"}

	ErrSelfSubscription = NewConflictError("errors", "cannot subscribe to yourself")
)

type (
	Membership struct {
		ID        string    `json:"id"`
		Kind      string    `json:"kind"`
		UserID    string    `json:"user_id"`
		TargetID  string    `json:"target_id"`
		CreatedAt time.Time `json:"created_at"`
	}

	// SubscriptionAuthor is a followed user together with a preview of their recipes.
	SubscriptionAuthor struct {
		UserResponse
		Recipes      []RecipeSummary `json:"recipes"`
		RecipesCount int64           `json:"recipes_count"`
	}

	SubscriptionListResponse struct {
		Authors    []SubscriptionAuthor `json:"authors"`
		Pagination Pagination           `json:"pagination"`
	}
)

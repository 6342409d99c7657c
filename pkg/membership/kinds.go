package membership

import (
	"time"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
)

// Kind describes one membership collection: where its rows live and which
// errors it reports.
type Kind struct {
	Name         string
	Table        string
	TargetColumn string

	// AllowSelf permits a user to be their own target.
	AllowSelf bool

	ErrTargetNotFound error
	ErrAlready        error
	ErrNotMember      error

	targetModel func() any
	newRow      func(id, userID, targetID uuid.UUID) any
	model       func() any
}

var (
	Favorite = Kind{
		Name:              "favorite",
		Table:             "favorites",
		TargetColumn:      "recipe_id",
		AllowSelf:         true,
		ErrTargetNotFound: domain.ErrRecipeNotFound,
		ErrAlready:        domain.ErrAlreadyFavorited,
		ErrNotMember:      domain.ErrNotFavorited,
		targetModel:       func() any { return &entities.Recipe{} },
		model:             func() any { return &entities.Favorite{} },
		newRow: func(id, userID, targetID uuid.UUID) any {
			return &entities.Favorite{ID: id, UserID: userID, RecipeID: targetID, CreatedAt: time.Now()}
		},
	}

	ShoppingCart = Kind{
		Name:              "shopping_cart",
		Table:             "shopping_cart_entries",
		TargetColumn:      "recipe_id",
		AllowSelf:         true,
		ErrTargetNotFound: domain.ErrRecipeNotFound,
		ErrAlready:        domain.ErrAlreadyInCart,
		ErrNotMember:      domain.ErrNotInCart,
		targetModel:       func() any { return &entities.Recipe{} },
		model:             func() any { return &entities.ShoppingCartEntry{} },
		newRow: func(id, userID, targetID uuid.UUID) any {
			return &entities.ShoppingCartEntry{ID: id, UserID: userID, RecipeID: targetID, CreatedAt: time.Now()}
		},
	}

	Subscription = Kind{
		Name:              "subscription",
		Table:             "subscriptions",
		TargetColumn:      "author_id",
		AllowSelf:         false,
		ErrTargetNotFound: domain.ErrUserNotFound,
		ErrAlready:        domain.ErrAlreadySubscribed,
		ErrNotMember:      domain.ErrNotSubscribed,
		targetModel:       func() any { return &entities.User{} },
		model:             func() any { return &entities.Subscription{} },
		newRow: func(id, userID, targetID uuid.UUID) any {
			return &entities.Subscription{ID: id, UserID: userID, AuthorID: targetID, CreatedAt: time.Now()}
		},
	}
)

package shopping

import (
	"context"
	"errors"
	"fmt"

	"foodgram/domain"
	"foodgram/internal/utils/mailing"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	fileName    = "shopping_list"
	mailSubject = "Your Foodgram shopping list"
	mailBody    = "Hi %s,<br><br>your shopping list is attached.<br><br>Foodgram"
)

type (
	ShoppingService interface {
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		Export(ctx context.Context, userID string, format string) (domain.ShoppingListDocument, error)
		SendShoppingList(ctx context.Context, userID string) error
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		mailer             mailing.Mailer
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, mailer mailing.Mailer) ShoppingService {
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		mailer:             mailer,
	}
}

func (s *shoppingService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrAuthenticationFailed
	}
	return s.shoppingRepository.Aggregate(ctx, userID)
}

func (s *shoppingService) Export(ctx context.Context, userID string, format string) (domain.ShoppingListDocument, error) {
	renderer, err := RendererFor(format)
	if err != nil {
		return domain.ShoppingListDocument{}, err
	}
	return s.render(ctx, userID, renderer)
}

func (s *shoppingService) SendShoppingList(ctx context.Context, userID string) error {
	doc, err := s.render(ctx, userID, PDFRenderer{})
	if err != nil {
		return err
	}

	user, err := s.shoppingRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	err = s.mailer.SendMail(user.Email, mailSubject, fmt.Sprintf(mailBody, user.FirstName), mailing.Attachment{
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		Body:        doc.Body,
	})
	if err != nil {
		log.Errorf("send shopping list to %s: %v", user.Email, err)
		return domain.ErrSendMailFailed
	}
	return nil
}

func (s *shoppingService) render(ctx context.Context, userID string, renderer Renderer) (domain.ShoppingListDocument, error) {
	items, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return domain.ShoppingListDocument{}, err
	}

	body, err := renderer.Render(items)
	if err != nil {
		return domain.ShoppingListDocument{}, err
	}

	return domain.ShoppingListDocument{
		FileName:    fileName + "." + renderer.Extension(),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

package handlers

import (
	"fmt"

	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/pkg/shopping"

	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		DownloadShoppingCart(c *fiber.Ctx) error
		SendShoppingCart(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService) ShoppingHandler {
	return &shoppingHandler{shoppingService: shoppingService}
}

func (h *shoppingHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	doc, err := h.shoppingService.Export(c.UserContext(), middleware.UserID(c), c.Query("format"))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedExportShoppingList, err)
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	return c.Status(fiber.StatusOK).Send(doc.Body)
}

func (h *shoppingHandler) SendShoppingCart(c *fiber.Ctx) error {
	if err := h.shoppingService.SendShoppingList(c.UserContext(), middleware.UserID(c)); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedSendShoppingList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendShoppingList)
}

package handlers

import (
	"strconv"
	"strings"

	"foodgram/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// pageParams reads ?page and ?limit, falling back to the configured page size.
func pageParams(c *fiber.Ctx) (int, int) {
	defaultLimit, err := strconv.Atoi(utils.GetConfig("PAGE_SIZE"))
	if err != nil {
		defaultLimit = 0
	}
	return c.QueryInt("page", 1), c.QueryInt("limit", defaultLimit)
}

func queryFlag(c *fiber.Ctx, key string) bool {
	switch strings.ToLower(c.Query(key)) {
	case "1", "true":
		return true
	default:
		return false
	}
}

// queryValues returns every value of a repeated query parameter.
func queryValues(c *fiber.Ctx, key string) []string {
	var values []string
	for _, v := range c.Context().QueryArgs().PeekMulti(key) {
		if s := strings.TrimSpace(string(v)); s != "" {
			values = append(values, s)
		}
	}
	return values
}

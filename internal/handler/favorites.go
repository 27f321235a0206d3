package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-housing/internal/service"
)

type FavoriteHandler struct {
	Favorites *service.FavoriteService
}

func NewFavoriteHandler(s *service.FavoriteService) *FavoriteHandler {
	if s == nil {
		panic("nil service passed to NewFavoriteHandler")
	}
	return &FavoriteHandler{Favorites: s}
}

// List handles GET /favorites.
func (h *FavoriteHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.Favorites.List(ctx, callerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Toggle handles POST /favorites {listing_id} and answers {favorited}.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	var body struct {
		ListingID string `json:"listing_id"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	on, err := h.Favorites.Toggle(ctx, callerID(c), body.ListingID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favorited": on})
}

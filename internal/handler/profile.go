package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-housing/internal/service"
)

type ProfileHandler struct {
	Profiles *service.ProfileService
}

func NewProfileHandler(s *service.ProfileService) *ProfileHandler {
	if s == nil {
		panic("nil service passed to NewProfileHandler")
	}
	return &ProfileHandler{Profiles: s}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	p, err := h.Profiles.Get(ctx, callerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /profile {first_name, last_name}.
func (h *ProfileHandler) Update(c echo.Context) error {
	var in service.ProfileInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	p, err := h.Profiles.Update(ctx, callerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// SetAvatar handles POST /profile/avatar with a multipart "file" field.
func (h *ProfileHandler) SetAvatar(c echo.Context) error {
	up, closeFn, err := formUpload(c)
	if err != nil {
		return badRequest(c, "file is required")
	}
	defer closeFn()
	ctx, cancel := requestContext(c)
	defer cancel()
	p, err := h.Profiles.SetAvatar(ctx, callerID(c), up)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Listings handles GET /profile/listings: the caller's own sublets.
func (h *ProfileHandler) Listings(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.Profiles.Listings(ctx, callerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

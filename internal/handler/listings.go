package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-housing/internal/model"
	"github.com/iliyamo/campus-housing/internal/service"
)

// HeaderListingsSource is set on search responses served from the bundled
// snapshot.
const HeaderListingsSource = "X-Listings-Source"

// ListingHandler serves listing search and sublet posting.
type ListingHandler struct {
	Query   *service.QueryService
	Sublets *service.SubletService
}

func NewListingHandler(q *service.QueryService, s *service.SubletService) *ListingHandler {
	if q == nil || s == nil {
		panic("nil service passed to NewListingHandler")
	}
	return &ListingHandler{Query: q, Sublets: s}
}

// Search handles GET /listings.  Query keys: neighborhood, minPrice,
// maxPrice, bedrooms, heating, type.  It always answers 200; when the
// database is down the bundled snapshot is served instead, marked with
// X-Listings-Source: snapshot and Cache-Control: no-store.
func (h *ListingHandler) Search(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	f := model.ParseListingFilter(c.QueryParams())
	out, degraded := h.Query.Search(ctx, f)
	if degraded {
		hdr := c.Response().Header()
		hdr.Set(HeaderListingsSource, "snapshot")
		hdr.Set(echo.HeaderCacheControl, "no-store")
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /listings/:id and includes the host profile.
func (h *ListingHandler) Get(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	l, err := h.Query.Get(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// PostSublet handles POST /sublets.
func (h *ListingHandler) PostSublet(c echo.Context) error {
	var in service.SubletInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	l, err := h.Sublets.Post(ctx, callerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

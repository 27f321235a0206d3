package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-housing/internal/service"
)

type ReviewHandler struct {
	Reviews *service.ReviewService
}

func NewReviewHandler(s *service.ReviewService) *ReviewHandler {
	if s == nil {
		panic("nil service passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: s}
}

// List handles GET /reviews?listing_id=.  Each review carries the
// reviewer's names and avatar, its votes and their score.
func (h *ReviewHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.Reviews.ListForListing(ctx, c.QueryParam("listing_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Summary handles GET /reviews/summary?listing_id=.
func (h *ReviewHandler) Summary(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	sum, err := h.Reviews.Summary(ctx, c.QueryParam("listing_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

// Submit handles POST /reviews.  A second submission for the same listing
// replaces the caller's earlier review.
func (h *ReviewHandler) Submit(c echo.Context) error {
	var in service.ReviewInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	rev, err := h.Reviews.Submit(ctx, callerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rev)
}

// Delete handles DELETE /reviews?id=.  404 when the review does not exist,
// 403 when it belongs to someone else.
func (h *ReviewHandler) Delete(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Reviews.Delete(ctx, callerID(c), c.QueryParam("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Vote handles POST /reviews/vote {review_id, vote_type}.  vote_type 0
// withdraws the caller's vote.
func (h *ReviewHandler) Vote(c echo.Context) error {
	var body struct {
		ReviewID string `json:"review_id"`
		VoteType *int   `json:"vote_type"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if body.VoteType == nil {
		return badRequest(c, "vote_type is required")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Reviews.Vote(ctx, callerID(c), body.ReviewID, *body.VoteType); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

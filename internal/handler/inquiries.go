package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-housing/internal/service"
)

type InquiryHandler struct {
	Inquiries *service.InquiryService
}

func NewInquiryHandler(s *service.InquiryService) *InquiryHandler {
	if s == nil {
		panic("nil service passed to NewInquiryHandler")
	}
	return &InquiryHandler{Inquiries: s}
}

// Inbox handles GET /inquiries: messages sent about the caller's listings.
func (h *InquiryHandler) Inbox(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.Inquiries.Inbox(ctx, callerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Send handles POST /inquiries {listing_id, message}.
func (h *InquiryHandler) Send(c echo.Context) error {
	var in service.InquiryInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	inq, err := h.Inquiries.Send(ctx, callerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, inq)
}

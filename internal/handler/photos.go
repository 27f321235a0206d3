package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-housing/internal/service"
)

type PhotoHandler struct {
	Photos *service.PhotoService
}

func NewPhotoHandler(s *service.PhotoService) *PhotoHandler {
	if s == nil {
		panic("nil service passed to NewPhotoHandler")
	}
	return &PhotoHandler{Photos: s}
}

// Upload handles POST /photos with a multipart "file" field and answers
// {url}.  The caller must be authenticated.
func (h *PhotoHandler) Upload(c echo.Context) error {
	if callerID(c) == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	up, closeFn, err := formUpload(c)
	if err != nil {
		return badRequest(c, "file is required")
	}
	defer closeFn()
	ctx, cancel := requestContext(c)
	defer cancel()
	url, err := h.Photos.Save(ctx, up)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

// Get handles GET /photos/:id and streams the stored image.
func (h *PhotoHandler) Get(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	rc, contentType, err := h.Photos.Open(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	defer rc.Close()
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, rc)
}

func formUpload(c echo.Context) (service.Upload, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return service.Upload{}, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, nil, err
	}
	up := service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}
	return up, func() { _ = f.Close() }, nil
}

// Package router registers the HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-housing/internal/handler"
	"github.com/iliyamo/campus-housing/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Listings  *handler.ListingHandler
	Favorites *handler.FavoriteHandler
	Reviews   *handler.ReviewHandler
	Inquiries *handler.InquiryHandler
	Profiles  *handler.ProfileHandler
	Photos    *handler.PhotoHandler
}

// Options carries the shared middleware.  Cache wraps anonymous public
// reads and RateLimit wraps writes; nil means none.
type Options struct {
	JWTSecret string
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// Register mounts every route on e.
func Register(e *echo.Echo, h Handlers, opt Options) {
	RegisterRoutes(e)
	RegisterPublic(e, h, opt)
	RegisterMember(e, h, opt)
	RegisterHost(e, h, opt)
}

// RegisterRoutes mounts the unauthenticated health probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic mounts the anonymous read endpoints.
func RegisterPublic(e *echo.Echo, h Handlers, opt Options) {
	cached := []echo.MiddlewareFunc{}
	if opt.Cache != nil {
		cached = append(cached, opt.Cache)
	}
	e.GET("/listings", h.Listings.Search, cached...)
	e.GET("/listings/:id", h.Listings.Get, cached...)

	// Reviews change with every vote, so they are not cached.
	e.GET("/reviews", h.Reviews.List)
	e.GET("/reviews/summary", h.Reviews.Summary)

	e.GET("/photos/:id", h.Photos.Get)
}

func authed(opt Options) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{middleware.JWTAuth(opt.JWTSecret)}
}

func limited(opt Options) []echo.MiddlewareFunc {
	if opt.RateLimit == nil {
		return nil
	}
	return []echo.MiddlewareFunc{opt.RateLimit}
}

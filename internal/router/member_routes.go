package router

import "github.com/labstack/echo/v4"

// RegisterMember mounts the endpoints any signed-in user may call.  Every
// route requires a valid bearer token; writes are also rate limited.
//
// Middleware is attached per route: an echo group with an empty prefix
// would also claim unmatched paths and answer them with 401.
func RegisterMember(e *echo.Echo, h Handlers, opt Options) {
	read := authed(opt)
	write := append(authed(opt), limited(opt)...)

	e.POST("/sublets", h.Listings.PostSublet, write...)

	e.GET("/favorites", h.Favorites.List, read...)
	e.POST("/favorites", h.Favorites.Toggle, write...)

	e.POST("/reviews", h.Reviews.Submit, write...)
	e.DELETE("/reviews", h.Reviews.Delete, write...)
	e.POST("/reviews/vote", h.Reviews.Vote, write...)

	e.POST("/inquiries", h.Inquiries.Send, write...)

	e.GET("/profile", h.Profiles.Get, read...)
	e.PUT("/profile", h.Profiles.Update, write...)
	e.POST("/profile/avatar", h.Profiles.SetAvatar, write...)

	e.POST("/photos", h.Photos.Upload, write...)
}

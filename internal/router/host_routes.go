package router

import "github.com/labstack/echo/v4"

// RegisterHost mounts the views a sublet host uses to manage what they
// posted: their own listings and the inquiries sent about them.
func RegisterHost(e *echo.Echo, h Handlers, opt Options) {
	read := authed(opt)
	e.GET("/inquiries", h.Inquiries.Inbox, read...)
	e.GET("/profile/listings", h.Profiles.Listings, read...)
}

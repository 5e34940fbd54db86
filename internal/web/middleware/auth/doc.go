// Package auth provides the session middleware for the web application.
//
// Every request outside /static and /logout must carry a valid session
// cookie. Requests without one are redirected to the login page, and a
// logged-in user hitting the login page is sent to the tree list
// instead. On success the session's user is stored in fiber.Locals as
// "CurrentUser" for handlers and templates.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
package auth

// Package main provides the entry point for the Kinfolium genealogy
// web application. It initializes and runs a web server using the Fiber
// framework that serves family trees and their records, and lets each
// user maintain a personal favorites menu with named groups, sharing
// between users, and flat-text import/export. The application uses gorm
// for data persistence.
package main

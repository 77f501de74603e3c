// Package application provides application initialization and dependency wiring.
// It loads the settings source, builds the handler, router, and HTTP server, and
// owns the server lifecycle, keeping the main package focused on CLI parsing and
// signal handling.
package application

// Package views holds the models rendered by the HTTP layer.
package views

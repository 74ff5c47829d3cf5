// Package template defines the renderer contract the page handlers depend on.
// The gotemplate subpackage provides the pongo2-backed implementation.
package template

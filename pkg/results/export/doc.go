// Package export writes stored runs as JSON or CSV.
package export

// Package formats provides parsers for photometric data files.
package formats

// Note: IESNA LM-63 style photometry is implemented in ies.go

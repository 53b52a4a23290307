// Package photometry turns photometric data and light poses into visual light fields.
//
// Everything here is a pure function of its arguments. Poses and parameters are
// passed by value, so evaluators may be called from any number of goroutines.
// "No contribution" is reported with a false second return value rather than an error.
package photometry

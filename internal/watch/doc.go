// Package watch re-runs the repository compliance check whenever the observed
// directory changes on disk, until the surrounding context is cancelled.
package watch

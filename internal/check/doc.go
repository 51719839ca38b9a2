// Package check implements the repository baseline compliance checker.
//
// It exposes CommandBuilder for wiring the check Cobra command, Service for
// driving the presence check programmatically, and supporting abstractions for
// file system access and repository discovery collaborators.
package check

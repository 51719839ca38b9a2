// Package policy loads declarative compliance policies describing which files
// a repository must and must not contain.
package policy

// Package utils bundles shared infrastructure for the repocheck CLI:
// structured logger construction, Viper-backed configuration loading,
// context accessors for command metadata, and small writer helpers.
package utils

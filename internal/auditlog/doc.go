// Package auditlog records successful validation runs to AWS CloudWatch Logs
// through the aws CLI.
//
// It exposes CommandBuilder for wiring the audit-record Cobra command and
// Service for driving the recording workflow programmatically. Credential
// material is never read or validated here; the aws CLI consumes it from the
// process environment.
package auditlog

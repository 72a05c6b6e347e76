// Package services defines shared utilities consumed by the command workflows
// and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the running sub-command and the invocation
//     run ID for logging and manifests.
//   - Structured error markers plus the Wrap helper that separate the failure
//     classes the CLIs report: missing dependencies, refused overwrites and
//     absent data.
//
// Use these helpers when wiring new commands so error reporting stays uniform
// across both tools.
package services

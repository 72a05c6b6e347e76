// Package preflight provides readiness checks for the external binaries and
// filesystem paths the artifact tools depend on.
//
// The "doctor" sub-command of both binaries renders RunAll results as status
// lines; commands themselves call deps.Require directly so a missing binary
// fails with a dependency error at the point of use.
package preflight

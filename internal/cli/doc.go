// Package cli holds the cobra plumbing shared by pdftool and yttool: lazy
// configuration loading, the per-invocation logger and run ID, the config
// and doctor sub-commands, and terminal rendering helpers.
package cli

// Package config loads, normalizes, and validates artifex configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// ARTIFEX_YTDLP and ARTIFEX_PROJECT_ROOT. The Config type centralizes every
// knob pdftool and yttool need so artifact directories and external binaries
// are discovered in one pass.
//
// Always obtain settings through this package so commands receive sanitized
// paths, canonical log formats, and clear validation errors.
package config

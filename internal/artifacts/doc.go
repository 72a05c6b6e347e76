// Package artifacts owns the on-disk layout shared by pdftool and yttool:
// output directory resolution, the overwrite guard, dry-run aware writers,
// manifest records and the per-directory lock.
//
// Commands plan every output path first, call EnsureWritable once, and only
// then start writing, so a refused run leaves existing files untouched.
package artifacts

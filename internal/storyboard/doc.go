// Package storyboard turns the preview sprite sheets YouTube serves for its
// scrubber into individual timestamped JPEG frames.
//
// A storyboard format (sb0 through sb3, highest resolution first) describes
// a grid of thumbnails per sprite. Cells are numbered row-major across all
// sprites, and cell n shows the video at n/fps seconds. Cells that fall
// outside a sprite's bounds (the partially filled last sheet) are skipped
// without consuming an index.
package storyboard

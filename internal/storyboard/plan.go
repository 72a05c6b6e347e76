package storyboard

import (
	"fmt"
	"image"
	"math"
)

// Cell is one grid position selected for extraction.
type Cell struct {
	Index     int
	Timestamp float64
	Rect      image.Rectangle
}

// Plan walks the grid of one sprite with the given bounds, starting at
// startIndex. Cells outside bounds are dropped without consuming an index.
// When interval is positive, cells after the first whose timestamp is not
// within one frame of an interval boundary are dropped but still consume an
// index. It returns the kept cells and the index for the next sprite.
func Plan(spec Spec, bounds image.Rectangle, startIndex int, interval float64) ([]Cell, int) {
	frameDuration := spec.FrameDuration()
	index := startIndex
	cells := make([]Cell, 0, spec.Rows*spec.Columns)
	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Columns; col++ {
			rect := image.Rect(col*spec.Width, row*spec.Height, col*spec.Width+spec.Width, row*spec.Height+spec.Height).Add(bounds.Min)
			if rect.Max.X > bounds.Max.X || rect.Max.Y > bounds.Max.Y {
				continue
			}
			timestamp := float64(index) * frameDuration
			if interval > 0 && index > 0 && math.Mod(timestamp, interval) >= frameDuration {
				index++
				continue
			}
			cells = append(cells, Cell{Index: index, Timestamp: timestamp, Rect: rect})
			index++
		}
	}
	return cells, index
}

// FrameName is the file name for the frame at index and timestamp, such as
// "frame_007_01m05s.jpg".
func FrameName(index int, timestamp float64) string {
	minutes, seconds := clock(timestamp)
	return fmt.Sprintf("frame_%03d_%02dm%02ds.jpg", index, minutes, seconds)
}

// TimestampString renders timestamp as "MM:SS".
func TimestampString(timestamp float64) string {
	minutes, seconds := clock(timestamp)
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func clock(timestamp float64) (int, int) {
	return int(math.Floor(timestamp / 60)), int(math.Floor(math.Mod(timestamp, 60)))
}

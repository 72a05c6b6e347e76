package storyboard

import (
	"math"

	"artifex/internal/youtube"
)

// Manifest is written to storyboard_manifest.json.
type Manifest struct {
	VideoID    string            `json:"video_id"`
	FrameCount int               `json:"frame_count"`
	Frames     []Frame           `json:"frames"`
	Transcript []youtube.Segment `json:"transcript,omitempty"`
}

// Align sets each segment's nearest frame: the frame whose timestamp is
// closest to the segment start, the earliest frame winning ties. Segments
// are returned as a new slice.
func Align(segments []youtube.Segment, frames []Frame) []youtube.Segment {
	aligned := make([]youtube.Segment, len(segments))
	copy(aligned, segments)
	if len(frames) == 0 {
		return aligned
	}
	for i := range aligned {
		best := 0
		bestDistance := math.Abs(frames[0].Timestamp - aligned[i].Start)
		for j := 1; j < len(frames); j++ {
			if d := math.Abs(frames[j].Timestamp - aligned[i].Start); d < bestDistance {
				best, bestDistance = j, d
			}
		}
		index := frames[best].Index
		aligned[i].NearestFrame = &index
		aligned[i].NearestFramePath = frames[best].Path
	}
	return aligned
}

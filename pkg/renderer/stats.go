package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Total number of pixels rendered
	Hits          int           // Pixels whose primary ray hit an object
	Misses        int           // Pixels whose primary ray hit nothing
	ShadowedPaths int           // Paths that ended on a shadowed point
	RaysTraced    int           // Primary plus reflected segments
	Tiles         int           // Tiles rendered
	Workers       int           // Workers used
	Duration      time.Duration // Wall-clock render time
}

// AddPath folds the statistics of one traced pixel into the totals
func (s *RenderStats) AddPath(path PathStats) {
	s.TotalPixels++
	s.RaysTraced += path.Rays
	if path.Hit {
		s.Hits++
	} else {
		s.Misses++
	}
	if path.Shadowed {
		s.ShadowedPaths++
	}
}

// Merge adds another set of per-tile statistics to the totals
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.Hits += other.Hits
	s.Misses += other.Misses
	s.ShadowedPaths += other.ShadowedPaths
	s.RaysTraced += other.RaysTraced
	s.Tiles += other.Tiles
}

// AverageRaysPerPixel returns the mean number of segments traced per pixel
func (s RenderStats) AverageRaysPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.RaysTraced) / float64(s.TotalPixels)
}

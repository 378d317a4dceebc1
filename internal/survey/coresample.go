package survey

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// CoreSample is a physical sediment core pulled near a survey line. Layer
// boundaries are depths measured down from the lake bottom and give the
// editor ground truth when picking the pre-impoundment surface.
type CoreSample struct {
	ID              string
	Location        orb.Point
	LayerBoundaries []float64
}

// DistanceTo returns the planar distance from the core to a survey line's
// navigation track.
func (c CoreSample) DistanceTo(track orb.LineString) float64 {
	if len(track) == 0 {
		return math.Inf(1)
	}
	if len(track) == 1 {
		return planar.Distance(c.Location, track[0])
	}
	best := math.Inf(1)
	for i := 0; i < len(track)-1; i++ {
		p := projectToSegment(c.Location, track[i], track[i+1])
		if d := planar.Distance(c.Location, p); d < best {
			best = d
		}
	}
	return best
}

// NearbyCoreSamples filters cores to those within distTol map units of this
// line's navigation track.
func (sl *SurveyLine) NearbyCoreSamples(cores []CoreSample, distTol float64) []CoreSample {
	var near []CoreSample
	for _, c := range cores {
		if c.DistanceTo(sl.NavigationLine) < distTol {
			near = append(near, c)
		}
	}
	return near
}

// projectToSegment returns the closest point to p on segment [a,b].
func projectToSegment(p, a, b orb.Point) orb.Point {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	if dx == 0 && dy == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	if t < 0 {
		return a
	}
	if t > 1 {
		return b
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}

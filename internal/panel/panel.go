// Package panel assembles tracks that share one coordinate frame into
// an ordered panel for rendering.
package panel

import (
	"errors"
	"fmt"

	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

// ErrNoTracks means compose was called without any track.
var ErrNoTracks = errors.New("a panel needs at least one track")

// RegionMismatchError reports a track whose region differs from the
// panel's. The shared coordinate frame is the whole point of a panel,
// so this is fatal.
type RegionMismatchError struct {
	Kind  track.Kind
	Panel region.Region
	Track region.Region
}

func (e *RegionMismatchError) Error() string {
	return fmt.Sprintf("%s track region %s does not match panel region %s", e.Kind, e.Track, e.Panel)
}

// Panel is an ordered stack of tracks over one region. Transient:
// built per invocation and handed to the renderer.
type Panel struct {
	Region region.Region
	Tracks []track.Track
}

// Compose verifies every track was built against reg and returns the
// assembled panel. Track order is the caller's order; layout stacks
// them top to bottom.
func Compose(reg region.Region, tracks ...track.Track) (Panel, error) {
	if len(tracks) == 0 {
		return Panel{}, ErrNoTracks
	}
	for _, t := range tracks {
		if !t.Region.Equal(reg) {
			return Panel{}, &RegionMismatchError{Kind: t.Kind, Panel: reg, Track: t.Region}
		}
	}
	return Panel{Region: reg, Tracks: append([]track.Track(nil), tracks...)}, nil
}

// HeightRatio is the stacked layout weight of a track kind: repeats
// tallest, scaffold structure shortest.
func HeightRatio(k track.Kind) int {
	switch k {
	case track.Repeat:
		return 3
	case track.Depth:
		return 2
	default:
		return 1
	}
}

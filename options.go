package demand

// SinkOption configures a Sink invocation.
// Use functional options to override the defaults.
//
// Example:
//
//	// Default: GOMAXPROCS workers, hint-driven tiling
//	err := demand.Sink(im, start, gen, stop, ctx, nil)
//
//	// Two workers, 64x64 tiles for HintTile images
//	err := demand.Sink(im, start, gen, stop, ctx, nil,
//	    demand.WithWorkers(2), demand.WithTileSize(64, 64))
type SinkOption func(*sinkOptions)

// Default tiling constants. A given image, hint and option set always
// produces the same partition.
const (
	// DefaultTileSize is the square tile edge used for HintTile images.
	DefaultTileSize = 128

	// DefaultStripHeight is the strip height used for HintStrip images.
	DefaultStripHeight = 16

	// piecesPerWorker is the minimum piece count per worker targeted by
	// the HintNone/HintAny policy, keeping workers busy without making
	// pieces degenerate.
	piecesPerWorker = 4
)

// sinkOptions holds resolved configuration for one Sink invocation.
type sinkOptions struct {
	workers     int
	tileWidth   int
	tileHeight  int
	stripHeight int
}

// defaultSinkOptions returns the default sink configuration.
func defaultSinkOptions() sinkOptions {
	return sinkOptions{
		workers:     0, // resolved to GOMAXPROCS
		tileWidth:   DefaultTileSize,
		tileHeight:  DefaultTileSize,
		stripHeight: DefaultStripHeight,
	}
}

// WithWorkers sets the number of worker goroutines (and therefore
// sequences) used by the sink. Zero or negative selects GOMAXPROCS.
func WithWorkers(n int) SinkOption {
	return func(o *sinkOptions) {
		o.workers = n
	}
}

// WithTileSize overrides the tile dimensions used for HintTile images.
// Non-positive values are ignored.
func WithTileSize(w, h int) SinkOption {
	return func(o *sinkOptions) {
		if w > 0 {
			o.tileWidth = w
		}
		if h > 0 {
			o.tileHeight = h
		}
	}
}

// WithStripHeight overrides the strip height used for HintStrip images.
// Non-positive values are ignored.
func WithStripHeight(h int) SinkOption {
	return func(o *sinkOptions) {
		if h > 0 {
			o.stripHeight = h
		}
	}
}

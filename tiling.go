package demand

// partition splits bounds into a disjoint, complete list of pieces sized
// per the demand-shape hint. Every coordinate of bounds lands in exactly
// one piece; pieces are emitted row-major. The policies are deterministic:
//
//   - HintTile: tileWidth x tileHeight tiles, last column/row clipped.
//   - HintStrip: whole-width strips of stripHeight rows.
//   - HintNone, HintAny: whole-width strips sized so there are at least
//     piecesPerWorker pieces per worker, minimum one row.
func partition(bounds Rect, hint DemandHint, o sinkOptions, workers int) []Rect {
	if bounds.IsEmpty() {
		return nil
	}
	switch hint {
	case HintTile:
		return tilePieces(bounds, o.tileWidth, o.tileHeight)
	case HintStrip:
		return stripPieces(bounds, o.stripHeight)
	default:
		h := bounds.Height / (piecesPerWorker * max(workers, 1))
		return stripPieces(bounds, max(h, 1))
	}
}

// tilePieces cuts bounds into tw x th tiles, row-major.
func tilePieces(bounds Rect, tw, th int) []Rect {
	pieces := make([]Rect, 0, ((bounds.Width+tw-1)/tw)*((bounds.Height+th-1)/th))
	for y := bounds.Top; y < bounds.Bottom(); y += th {
		for x := bounds.Left; x < bounds.Right(); x += tw {
			pieces = append(pieces, Rect{
				Left:   x,
				Top:    y,
				Width:  min(tw, bounds.Right()-x),
				Height: min(th, bounds.Bottom()-y),
			})
		}
	}
	return pieces
}

// stripPieces cuts bounds into whole-width strips of height sh.
func stripPieces(bounds Rect, sh int) []Rect {
	pieces := make([]Rect, 0, (bounds.Height+sh-1)/sh)
	for y := bounds.Top; y < bounds.Bottom(); y += sh {
		pieces = append(pieces, Rect{
			Left:   bounds.Left,
			Top:    y,
			Width:  bounds.Width,
			Height: min(sh, bounds.Bottom()-y),
		})
	}
	return pieces
}

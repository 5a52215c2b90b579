// Package ops provides image operations built on the demand engine.
//
// Every operation returns a new internal image wired to its input(s); no
// pixels are computed until a Region of the result is prepared. The
// numeric kernels are external: pointwise operations plug flat buffer
// functions into the wrap layer, area and geometric operations attach full
// generating triples that prepare enlarged or remapped upstream rects.
package ops

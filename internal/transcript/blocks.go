package transcript

import "strings"

// Block is the span of lines strictly between two consecutive hook markers.
// Start and End are the marker indices; the block covers Start+1 .. End-1.
type Block struct {
	Start int
	End   int

	// Clean holds the cleaned lines of the span.
	Clean []string

	// Raw is the raw span joined with "\n", for OSC inspection. Empty for blocks
	// built from the whole-text fallback.
	Raw string
}

// Segment cuts one block per pair of consecutive hook indices. raw may be nil;
// when set it must be index-aligned with clean.
func Segment(hooks []int, clean, raw []string) []Block {
	if len(hooks) < 2 {
		return nil
	}
	blocks := make([]Block, 0, len(hooks)-1)
	for i := 0; i+1 < len(hooks); i++ {
		a, b := hooks[i], hooks[i+1]
		blk := Block{
			Start: a,
			End:   b,
			Clean: clean[a+1 : b],
		}
		if raw != nil {
			blk.Raw = strings.Join(raw[a+1:b], "\n")
		}
		blocks = append(blocks, blk)
	}
	return blocks
}

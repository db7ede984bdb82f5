package dmp

import "time"

// Config is the mutable option bundle shared by the Diff, Match, and
// Patch engines. It lives for as long as the caller holds onto it;
// EditScripts and Patches are values created per call and owned by the
// caller. Callers mutating fields between calls race only with
// themselves.
type Config struct {
	// DiffTimeout bounds DiffMain's wall-clock budget. Zero or negative
	// means unlimited, which also disables the half-match speedup (it
	// trades minimality for speed, and there's no reason to pay that
	// price when time isn't scarce).
	DiffTimeout time.Duration
	// DiffEditCost is the minimum edit size (in runes) worth keeping
	// around an equality during efficiency cleanup.
	DiffEditCost int
	// MatchThreshold is the maximum acceptable Bitap score: 0 means
	// exact match only, 1 means anything matches.
	MatchThreshold float64
	// MatchDistance is how many runes from the hinted location add 1.0
	// to the match score.
	MatchDistance int
	// PatchDeleteThreshold is the maximum acceptable
	// Levenshtein(diffs)/len(text1) ratio for an imperfect patch
	// application to be accepted.
	PatchDeleteThreshold float64
	// PatchMargin is the number of context runes kept around each patch.
	PatchMargin int
	// MatchMaxBits is the Bitap pattern length ceiling (the machine word
	// size the bit-parallel algorithm pretends to have). Zero means
	// unbounded: MatchMain then never fails with PatternTooLong. Bitap's
	// masks are 64 bits wide whatever this is set to, so a pattern longer
	// than 64 runes is found only where it occurs exactly.
	MatchMaxBits int
}

// New returns a Config with the package's documented defaults.
func New() *Config {
	return &Config{
		DiffTimeout:          time.Second,
		DiffEditCost:         4,
		MatchThreshold:       0.5,
		MatchDistance:        1000,
		PatchDeleteThreshold: 0.5,
		PatchMargin:          4,
		MatchMaxBits:         32,
	}
}

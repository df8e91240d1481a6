package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidRatio is returned for a train ratio outside [0, 1].
var ErrInvalidRatio = errors.New("train ratio must be within [0, 1]")

// Split is the train/validation partition of accepted items.
type Split struct {
	Train []Item
	Val   []Item
}

// NewRand returns the random source used for shuffling. The same seed
// always produces the same split.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SplitItems shuffles a copy of items with rng and cuts it at
// floor(ratio * len(items)): the first part is the train set, the rest the
// validation set.
func SplitItems(items []Item, ratio float64, rng *rand.Rand) (Split, error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return Split{}, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	shuffled := make([]Item, len(items))
	copy(shuffled, items)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(math.Floor(ratio * float64(len(shuffled))))

	return Split{Train: shuffled[:cut:cut], Val: shuffled[cut:]}, nil
}

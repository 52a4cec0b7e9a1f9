package app

import "fmt"

// DefaultPrizeAmounts is the classic 15-step ladder.
var DefaultPrizeAmounts = []int64{
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 16000, 32000,
	64000, 125000, 250000, 500000, 1000000,
}

// DefaultFireproofLevels are the guaranteed-payout steps of the default ladder.
var DefaultFireproofLevels = []int{4, 9, 14}

// PrizeTable is the static prize ladder: an amount per level plus the subset
// of levels whose amount is guaranteed on failure. Lookups are pure.
type PrizeTable struct {
	amounts   []int64
	fireproof []int
}

// NewPrizeTable validates and builds a prize ladder.
func NewPrizeTable(amounts []int64, fireproof []int) (*PrizeTable, error) {
	if len(amounts) == 0 {
		return nil, fmt.Errorf("prize table needs at least one level")
	}
	prev := int64(-1)
	for i, level := range fireproof {
		if level < 0 || level >= len(amounts) {
			return nil, fmt.Errorf("fireproof level %d outside ladder of %d", level, len(amounts))
		}
		if i > 0 && level <= fireproof[i-1] {
			return nil, fmt.Errorf("fireproof levels must be strictly increasing")
		}
		if amounts[level] < prev {
			return nil, fmt.Errorf("fireproof floor at level %d decreases", level)
		}
		prev = amounts[level]
	}
	table := &PrizeTable{
		amounts:   append([]int64(nil), amounts...),
		fireproof: append([]int(nil), fireproof...),
	}
	return table, nil
}

// DefaultPrizeTable returns the classic ladder.
func DefaultPrizeTable() *PrizeTable {
	table, err := NewPrizeTable(DefaultPrizeAmounts, DefaultFireproofLevels)
	if err != nil {
		panic(err)
	}
	return table
}

// Levels reports the ladder length.
func (t *PrizeTable) Levels() int {
	return len(t.amounts)
}

// Amount returns the prize at the given level, zero below the ladder and the
// top amount above it.
func (t *PrizeTable) Amount(level int) int64 {
	if level < 0 {
		return 0
	}
	if level >= len(t.amounts) {
		return t.amounts[len(t.amounts)-1]
	}
	return t.amounts[level]
}

// Top returns the maximum prize.
func (t *PrizeTable) Top() int64 {
	return t.amounts[len(t.amounts)-1]
}

// FireproofFloor returns the highest fireproof amount at or below the given
// level, or zero when no fireproof level has been reached.
func (t *PrizeTable) FireproofFloor(level int) int64 {
	floor := int64(0)
	for _, fp := range t.fireproof {
		if fp <= level && t.amounts[fp] > floor {
			floor = t.amounts[fp]
		}
	}
	return floor
}

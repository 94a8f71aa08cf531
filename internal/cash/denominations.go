package cash

import (
	"strconv"
	"strings"

	"github.com/ipang84/retailmaster/internal/domain"
)

type Kind string

const (
	Bill Kind = "bill"
	Coin Kind = "coin"
)

type Denomination struct {
	Key   string
	Value domain.Cents
	Kind  Kind
}

// Denominations is the fixed set counted in a drawer, largest first.
// "1" is the dollar bill and "1.00" the dollar coin.
var Denominations = []Denomination{
	{Key: "100", Value: 10000, Kind: Bill},
	{Key: "50", Value: 5000, Kind: Bill},
	{Key: "20", Value: 2000, Kind: Bill},
	{Key: "10", Value: 1000, Kind: Bill},
	{Key: "5", Value: 500, Kind: Bill},
	{Key: "1", Value: 100, Kind: Bill},
	{Key: "1.00", Value: 100, Kind: Coin},
	{Key: "0.25", Value: 25, Kind: Coin},
	{Key: "0.10", Value: 10, Kind: Coin},
	{Key: "0.05", Value: 5, Kind: Coin},
	{Key: "0.01", Value: 1, Kind: Coin},
}

var denominationByKey = func() map[string]Denomination {
	m := make(map[string]Denomination, len(Denominations))
	for _, d := range Denominations {
		m[d.Key] = d
	}
	return m
}()

// Lookup returns the denomination for key.
func Lookup(key string) (Denomination, bool) {
	d, ok := denominationByKey[key]
	return d, ok
}

// MaxCount is the largest count accepted for one denomination. Larger counts
// are treated as invalid input, which keeps every drawer total within int64.
const MaxCount = 1_000_000_000

func validCount(n int) bool {
	return n > 0 && n <= MaxCount
}

// Sanitize drops unknown denominations, zero entries and counts above MaxCount,
// and clamps negative counts to zero.
func Sanitize(counts map[string]int) domain.DenominationCount {
	out := make(domain.DenominationCount, len(counts))
	for key, n := range counts {
		if _, ok := denominationByKey[key]; !ok || !validCount(n) {
			continue
		}
		out[key] = n
	}
	return out
}

// ParseCounts converts raw operator input into a sanitized count.
// Values that are not non-negative integers count as zero.
func ParseCounts(raw map[string]string) domain.DenominationCount {
	counts := make(map[string]int, len(raw))
	for key, value := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		counts[strings.TrimSpace(key)] = n
	}
	return Sanitize(counts)
}

package runtable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(bench, version, size string, energy float64) Record {
	return Record{Benchmark: bench, Version: version, Size: size, CPUEnergyJ: energy}
}

func TestByKeyOrdersGroupsLexicographically(t *testing.T) {
	records := []Record{
		rec("nbody", "opt", "small", 1),
		rec("fannkuch", "opt", "small", 2),
		rec("fannkuch", "baseline", "small", 3),
		rec("fannkuch", "baseline", "small", 4),
	}

	groups := ByKey(records)
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key.String()
	}
	assert.Equal(t, []string{"fannkuch/baseline/small", "fannkuch/opt/small", "nbody/opt/small"}, keys)
	assert.Equal(t, []float64{3, 4}, Values(groups[0].Records, ColCPUEnergyJ))
}

func TestByPairKeyMergesVersions(t *testing.T) {
	records := []Record{
		rec("a", "baseline", "s", 1),
		rec("a", "opt", "s", 2),
		rec("a", "opt", "l", 3),
	}
	groups := ByPairKey(records)
	assert.Len(t, groups, 2)
	assert.Equal(t, PairKey{Benchmark: "a", Size: "l"}, groups[0].Key)
	assert.Len(t, groups[1].Records, 2)
}

func TestValuesSkipsMissing(t *testing.T) {
	records := []Record{rec("a", "b", "s", 1), rec("a", "b", "s", math.NaN()), rec("a", "b", "s", 3)}
	assert.Equal(t, []float64{1, 3}, Values(records, ColCPUEnergyJ))
	assert.Empty(t, Values(records, "unknown"))
}

func TestFilterKeepsNamedVersions(t *testing.T) {
	records := []Record{rec("a", "baseline", "s", 1), rec("a", "opt", "s", 2), rec("a", "other", "s", 3)}
	got := Filter(records, "baseline", "opt")
	assert.Len(t, got, 2)
	for _, r := range got {
		assert.NotEqual(t, "other", r.Version)
	}
}

func TestAggregateOneRowPerGroup(t *testing.T) {
	records := []Record{rec("a", "b", "s", 1), rec("a", "b", "s", 2), rec("c", "b", "s", 5)}
	sums := Aggregate(ByKey(records), func(_ Key, rs []Record) float64 {
		total := 0.0
		for _, r := range rs {
			total += r.CPUEnergyJ
		}
		return total
	})
	assert.Equal(t, []float64{3, 5}, sums)
}

package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmarkRegistered(t *testing.T) {
	b := Benchmark()
	assert.Equal(t, "Nifty 50", b.Name)
	assert.Equal(t, "^NSEI", b.IndexSymbol)
	assert.Empty(t, b.ETFSymbol, "benchmark has no ETF proxy")
}

func TestRankableSectorsExcludeBenchmark(t *testing.T) {
	all := Sectors()
	rankable := RankableSectors()
	assert.Len(t, rankable, len(all)-1)
	for _, s := range rankable {
		assert.NotEqual(t, BenchmarkName, s.Name)
	}
}

func TestSectorsSortedAndComplete(t *testing.T) {
	all := Sectors()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name)
	}
	it, ok := Find("IT")
	require.True(t, ok)
	assert.Equal(t, "^CNXIT", it.IndexSymbol)
	assert.Equal(t, "ITBEES.NS", it.ETFSymbol)
}

func TestFindUnknown(t *testing.T) {
	_, ok := Find("Shipping")
	assert.False(t, ok)
}

func TestCompaniesHeaviestFirst(t *testing.T) {
	list, ok := Companies("IT")
	require.True(t, ok)
	require.NotEmpty(t, list)
	assert.Equal(t, "TCS.NS", list[0].Symbol)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].Weight, list[i].Weight)
	}
}

func TestCompaniesCopyIsolated(t *testing.T) {
	a, _ := Companies("Pharma")
	a[0].Symbol = "MUTATED"
	b, _ := Companies("Pharma")
	assert.NotEqual(t, "MUTATED", b[0].Symbol)
}

func TestCompanySymbols(t *testing.T) {
	symbols := CompanySymbols("Pvt Bank")
	require.NotEmpty(t, symbols)
	assert.Equal(t, "HDFCBANK.NS", symbols[0])
	assert.Nil(t, CompanySymbols("Shipping"))
}

package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBM25RanksKeywordMatches(t *testing.T) {
	docs := []string{
		"Tesla acquired SolarCity in 2016 for 2.6 billion dollars.",
		"Microsoft was founded by Bill Gates and Paul Allen in 1975.",
		"Amazon Web Services dominates the cloud computing market.",
		"Tesla builds electric vehicles and battery storage.",
	}
	index := NewBM25(docs)

	top := index.TopN("Tesla SolarCity acquisition", 2)
	require.Len(t, top, 2)
	assert.Equal(t, docs[0], top[0])
}

func TestBM25RareTermsOutweighCommonOnes(t *testing.T) {
	docs := []string{
		"the cloud the cloud the cloud",
		"the quantum computer prototype",
		"the cloud provider list",
	}
	index := NewBM25(docs)

	top := index.TopN("quantum computer", 1)
	require.Len(t, top, 1)
	assert.Equal(t, docs[1], top[0])
}

func TestBM25TopNBounds(t *testing.T) {
	index := NewBM25([]string{"only document"})

	assert.Len(t, index.TopN("anything", 5), 1)
	assert.Nil(t, index.TopN("anything", 0))

	empty := NewBM25(nil)
	assert.Nil(t, empty.TopN("anything", 3))
}

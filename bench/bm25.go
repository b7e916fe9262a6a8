// Package bench compares retrieval strategies on a fixed question set and
// grades their answers with an LLM judge.
package bench

import (
	"math"
	"sort"
	"strings"
)

const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// BM25 is an Okapi BM25 index over a small in-memory corpus. It is the
// keyword-search baseline; the corpus is pulled from the vector store so
// every strategy sees the same chunks.
type BM25 struct {
	docs      []string
	tokenized [][]string
	docFreq   map[string]int
	docLen    []int
	avgDocLen float64
}

// NewBM25 indexes the given documents
func NewBM25(docs []string) *BM25 {
	idx := &BM25{
		docs:      docs,
		tokenized: make([][]string, len(docs)),
		docFreq:   make(map[string]int),
		docLen:    make([]int, len(docs)),
	}

	var total int
	for i, doc := range docs {
		tokens := tokenize(doc)
		idx.tokenized[i] = tokens
		idx.docLen[i] = len(tokens)
		total += len(tokens)

		seen := make(map[string]bool)
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				idx.docFreq[tok]++
			}
		}
	}
	if len(docs) > 0 {
		idx.avgDocLen = float64(total) / float64(len(docs))
	}
	return idx
}

// TopN returns the n highest-scoring documents for a query
func (b *BM25) TopN(query string, n int) []string {
	if len(b.docs) == 0 || n <= 0 {
		return nil
	}

	queryTokens := tokenize(query)
	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, len(b.docs))
	for i := range b.docs {
		scores[i] = scored{index: i, score: b.score(queryTokens, i)}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if n > len(scores) {
		n = len(scores)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = b.docs[scores[i].index]
	}
	return out
}

func (b *BM25) score(queryTokens []string, doc int) float64 {
	counts := make(map[string]int)
	for _, tok := range b.tokenized[doc] {
		counts[tok]++
	}

	var score float64
	n := float64(len(b.docs))
	lenNorm := 1 - bm25B + bm25B*float64(b.docLen[doc])/b.avgDocLen
	for _, tok := range queryTokens {
		tf := float64(counts[tok])
		if tf == 0 {
			continue
		}
		df := float64(b.docFreq[tok])
		idf := math.Log((n-df+0.5)/(df+0.5) + 1)
		score += idf * tf * (bm25K1 + 1) / (tf + bm25K1*lenNorm)
	}
	return score
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

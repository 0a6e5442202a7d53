package signal

// Counter accumulates corpus-wide token statistics: unigram occurrence
// counts, per-token document-frequency sets, and adjacent-bigram counts.
// Bigrams are only counted inside a run of consecutive content tokens,
// so filtered words act as phrase boundaries.
type Counter struct {
	unigrams      map[string]int64
	docFreq       map[string]map[string]struct{}
	bigrams       map[Bigram]int64
	totalUnigrams int64
	totalBigrams  int64
	totalDocs     int64
}

// Bigram is an ordered pair of adjacent tokens.
type Bigram struct {
	First, Second string
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		unigrams: make(map[string]int64),
		docFreq:  make(map[string]map[string]struct{}),
		bigrams:  make(map[Bigram]int64),
	}
}

// AddDocument consumes one document's token runs under the given ID.
func (c *Counter) AddDocument(docID string, runs [][]string) {
	c.totalDocs++
	for _, run := range runs {
		for i, tok := range run {
			c.unigrams[tok]++
			c.totalUnigrams++
			if c.docFreq[tok] == nil {
				c.docFreq[tok] = make(map[string]struct{})
			}
			c.docFreq[tok][docID] = struct{}{}
			if i+1 < len(run) {
				c.bigrams[Bigram{First: tok, Second: run[i+1]}]++
				c.totalBigrams++
			}
		}
	}
}

// UnigramCount returns the occurrence count for a token.
func (c *Counter) UnigramCount(token string) int64 {
	return c.unigrams[token]
}

// DocFreq returns the number of distinct documents containing a token.
func (c *Counter) DocFreq(token string) int64 {
	return int64(len(c.docFreq[token]))
}

// BigramCount returns the occurrence count for an adjacent token pair.
func (c *Counter) BigramCount(first, second string) int64 {
	return c.bigrams[Bigram{First: first, Second: second}]
}

// TotalDocs returns the number of documents processed.
func (c *Counter) TotalDocs() int64 {
	return c.totalDocs
}

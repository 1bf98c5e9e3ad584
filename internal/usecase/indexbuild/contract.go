package indexbuild

// ProbabilitySource exposes the per-document topic distributions computed at training time.
type ProbabilitySource interface {
	NumTopics() int
	DocumentProbabilities() [][]float64
}

// Corpus is the subset of catalog.Corpus the builder needs.
type Corpus interface {
	Len() int
}

package health

import "context"

// CachePinger checks cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// Sized is anything with a row count: the corpus or the index.
type Sized interface {
	Len() int
}

// Dimensioned reports the vector width of the index.
type Dimensioned interface {
	Sized
	Dim() int
}

// TopicCounter reports the width of the topic model output.
type TopicCounter interface {
	NumTopics() int
}

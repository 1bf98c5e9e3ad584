package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional dependency (cache, embedding provider) is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the search artifacts are inconsistent.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	CheckCorpus     = "corpus"
	CheckIndex      = "index"
	CheckTopicModel = "topic_model"
	CheckCache      = "cache"
	CheckEmbedding  = "embedding"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	corpus    Sized
	index     Dimensioned
	model     TopicCounter
	cache     CachePinger
	embedding EmbeddingChecker
}

// New creates a Service. cache and embedding can be nil.
func New(corpus Sized, idx Dimensioned, model TopicCounter, cache CachePinger, embedding EmbeddingChecker) *Service {
	return &Service{corpus: corpus, index: idx, model: model, cache: cache, embedding: embedding}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks[CheckCorpus] = result(s.corpus.Len() > 0)
	checks[CheckIndex] = result(s.index.Len() == s.corpus.Len())
	checks[CheckTopicModel] = result(s.model.NumTopics() == s.index.Dim())

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Unhealthy
		}
	}

	if s.cache != nil {
		checks[CheckCache] = result(s.cache.Ping(ctx) == nil)
	}
	if s.embedding != nil {
		checks[CheckEmbedding] = result(s.embedding.HealthCheck(ctx) == nil)
	}
	if status == Healthy && (checks[CheckCache] == CheckError || checks[CheckEmbedding] == CheckError) {
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}

// Package topicmodel reads and writes the JSON artifact produced by topic-model training.
package topicmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/museum-search/internal/domain"
	"github.com/kailas-cloud/museum-search/internal/domain/topic"
)

// Load decodes the artifact at path and validates it for the given inference path.
func Load(path string, inference topic.Inference) (*topic.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewMissingResource(domain.ResourceTopicModel, path, err)
		}
		return nil, &domain.ResourceError{Kind: domain.ResourceTopicModel, Path: path, Err: err}
	}

	var a topic.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, domain.NewMalformedResource(domain.ResourceTopicModel, path, err)
	}
	if err := a.Validate(inference); err != nil {
		return nil, &domain.ResourceError{Kind: domain.ResourceTopicModel, Path: path, Err: err}
	}
	return &a, nil
}

// Save writes the artifact to path, replacing any previous file.
func Save(path string, a *topic.Artifact) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal topic model: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create topic model dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec // artifact is not secret
		return fmt.Errorf("write topic model: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename topic model: %w", err)
	}
	return nil
}

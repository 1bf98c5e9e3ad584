package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/museum-search/internal/domain/catalog"
	domtopic "github.com/kailas-cloud/museum-search/internal/domain/topic"
	"github.com/kailas-cloud/museum-search/internal/repository/topicmodel"
)

// FixtureRecords is the five-record corpus written by WriteFixture.
// Exhibitions A,A,B,C,C sit in collections M1,M1,M2,M3,M3.
var FixtureRecords = []catalog.Record{
	{Title: "Золотая маска", Authors: []string{"Неизвестный мастер"}, Exhibition: "A", Collection: "M1",
		Description: "Погребальная маска из золота", URL: "https://example.org/items/0"},
	{Title: "Маска шамана", Authors: []string{"Мастер А", "Мастер Б"}, Exhibition: "A", Collection: "M1",
		Description: "Ритуальная маска", URL: "https://example.org/items/1"},
	{Title: "Морской пейзаж", Authors: []string{"Айвазовский"}, Exhibition: "B", Collection: "M2",
		Description: "Пейзаж с морем", URL: "https://example.org/items/2"},
	{Title: "Буря на море", Authors: []string{"Айвазовский"}, Exhibition: "C", Collection: "M3",
		Description: "Шторм", URL: "https://example.org/items/3"},
	{Title: "Натюрморт", Exhibition: "C", Collection: "M3", URL: "https://example.org/items/4"},
}

// FixtureModel is the two-topic term model written by WriteFixture.
// Topic 0 covers gold and masks, topic 1 covers the sea and landscapes.
var FixtureModel = domtopic.Artifact{
	Topics: []domtopic.Topic{
		{ID: 0, Label: "маски", Terms: map[string]float64{"золото": 1, "маска": 0.8}},
		{ID: 1, Label: "море", Terms: map[string]float64{"пейзаж": 1, "море": 0.8}},
	},
	IDF: map[string]float64{"золото": 1.2, "маска": 1.5, "пейзаж": 1.1, "море": 1.3},
	Probabilities: [][]float64{
		{0.9, 0.1},
		{0.8, 0.2},
		{0.1, 0.9},
		{0.2, 0.8},
		{0.5, 0.5},
	},
}

// WriteFixture writes the fixture corpus and topic model into dir, builds nothing,
// and returns Options pointing at them. IndexPath names a file that does not exist yet.
func WriteFixture(dir string) (Options, error) {
	corpusPath := filepath.Join(dir, "corpus.json")
	data, err := json.Marshal(FixtureRecords)
	if err != nil {
		return Options{}, fmt.Errorf("marshal fixture corpus: %w", err)
	}
	if err := os.WriteFile(corpusPath, data, 0o600); err != nil {
		return Options{}, fmt.Errorf("write fixture corpus: %w", err)
	}

	modelPath := filepath.Join(dir, "topic_model.json")
	model := FixtureModel
	if err := topicmodel.Save(modelPath, &model); err != nil {
		return Options{}, fmt.Errorf("write fixture topic model: %w", err)
	}

	return Options{
		CorpusPath:     corpusPath,
		TopicModelPath: modelPath,
		IndexPath:      filepath.Join(dir, "index.bin"),
		Inference:      domtopic.InferenceTerms,
	}, nil
}

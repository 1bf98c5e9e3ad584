package catalog

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/museum-search/internal/domain"
)

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestNew_PreservesOrder(t *testing.T) {
	c, err := New([]Record{{Title: "a"}, {Title: "b"}, {Title: "c"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d", c.Len())
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := c.At(i).Title; got != want {
			t.Errorf("At(%d).Title = %q, want %q", i, got, want)
		}
	}
}

func TestCorpus_Immutable(t *testing.T) {
	src := []Record{{Title: "a"}}
	c, _ := New(src)

	src[0].Title = "mutated"
	if c.At(0).Title != "a" {
		t.Error("corpus changed after source slice mutation")
	}

	out := c.Records()
	out[0].Title = "mutated"
	if c.At(0).Title != "a" {
		t.Error("corpus changed after Records() mutation")
	}
}

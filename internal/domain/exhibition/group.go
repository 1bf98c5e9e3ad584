package exhibition

import "strings"

// DefaultPlaceholder replaces a blank collection in display strings.
const DefaultPlaceholder = "Музей не указан"

// Group is one (exhibition, collection) pair and the number of records in it.
type Group struct {
	exhibition string
	collection string
	count      int
}

// NewGroup creates a group.
func NewGroup(exhibition, collection string, count int) Group {
	return Group{exhibition: exhibition, collection: collection, count: count}
}

// Exhibition returns the exhibition name.
func (g *Group) Exhibition() string { return g.exhibition }

// Collection returns the collection name as stored in the corpus.
func (g *Group) Collection() string { return g.collection }

// Count returns the number of records in the group.
func (g *Group) Count() int { return g.count }

// Display renders "<exhibition>, <collection>", substituting placeholder for a blank
// collection. An empty placeholder selects DefaultPlaceholder.
func (g *Group) Display(placeholder string) string {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	collection := g.collection
	if strings.TrimSpace(collection) == "" {
		collection = placeholder
	}
	return g.exhibition + ", " + collection
}

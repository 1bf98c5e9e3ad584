package chi

import (
	"context"

	domexh "github.com/kailas-cloud/museum-search/internal/domain/exhibition"
	"github.com/kailas-cloud/museum-search/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/museum-search/internal/usecase/health"
)

// Catalog is the query surface served over HTTP. *app.App implements it.
type Catalog interface {
	Search(ctx context.Context, query string, topK int) ([]result.Result, error)
	TopExhibitions(ctx context.Context, topK int) ([]domexh.Group, error)
	Display(g domexh.Group) string
	Health(ctx context.Context) healthuc.Report
}

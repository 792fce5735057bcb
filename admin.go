package elastickit

import (
	"context"

	"github.com/bdpiprava/elastickit/search"
)

// Response is the decoded body of an administrative call, nil when the cluster returned nothing
type Response map[string]any

// AliasAction is the kind of change applied to an alias
type AliasAction string

const (
	AliasAdd    AliasAction = "add"
	AliasRemove AliasAction = "remove"
)

// AdminClient is the administrative surface of a cluster client.
//
// Implementations return *RemoteError for error responses of the cluster and
// a nil Response when the cluster answered without a body.
type AdminClient interface {
	// IndexStats fetches the statistics of the index and discards them
	IndexStats(ctx context.Context, index string) error
	IndexExists(ctx context.Context, index string) (bool, error)
	OpenIndex(ctx context.Context, index string) (Response, error)
	CloseIndex(ctx context.Context, index string) (Response, error)
	CreateIndex(ctx context.Context, index string, body []byte) (Response, error)
	UpdateAliases(ctx context.Context, actions search.AliasActions) (Response, error)
	// ClusterHealth blocks on the cluster until the index reaches status or timeout (e.g. "600s") elapses
	ClusterHealth(ctx context.Context, index string, status HealthStatus, timeout string) (*search.ClusterHealth, error)
}

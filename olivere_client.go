package elastickit

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bdpiprava/elastickit/logging"
	"github.com/bdpiprava/elastickit/search"
)

// OlivereClient implements AdminClient with github.com/olivere/elastic.
//
// The library drops error bodies it cannot decode, so legacy string errors
// reach RemoteError with the HTTP status text as kind.
type OlivereClient struct {
	client *elastic.Client
	log    logrus.FieldLogger
}

// NewOlivereClient wraps the given client, log defaults to the base logger
func NewOlivereClient(client *elastic.Client, log logrus.FieldLogger) *OlivereClient {
	if log == nil {
		log = logging.Base()
	}
	return &OlivereClient{
		client: client,
		log:    log.WithField("client", "olivere"),
	}
}

// IndexStats fetches the index stats
func (s *OlivereClient) IndexStats(ctx context.Context, index string) error {
	s.log.WithField("index", index).Debug("fetching index stats")
	_, err := s.client.IndexStats(index).Do(ctx)
	return fromOlivereError(err)
}

// IndexExists checks if the index exists
func (s *OlivereClient) IndexExists(ctx context.Context, index string) (bool, error) {
	s.log.WithField("index", index).Debug("checking if index exists")
	exists, err := s.client.IndexExists(index).Do(ctx)
	if err != nil {
		return false, fromOlivereError(err)
	}
	return exists, nil
}

// OpenIndex opens the index
func (s *OlivereClient) OpenIndex(ctx context.Context, index string) (Response, error) {
	s.log.WithField("index", index).Debug("opening index")
	result, err := s.client.OpenIndex(index).Do(ctx)
	if err != nil {
		return nil, fromOlivereError(err)
	}
	return toResponse(result)
}

// CloseIndex closes the index
func (s *OlivereClient) CloseIndex(ctx context.Context, index string) (Response, error) {
	s.log.WithField("index", index).Debug("closing index")
	result, err := s.client.CloseIndex(index).Do(ctx)
	if err != nil {
		return nil, fromOlivereError(err)
	}
	return toResponse(result)
}

// CreateIndex creates a new index
func (s *OlivereClient) CreateIndex(ctx context.Context, index string, body []byte) (Response, error) {
	s.log.WithField("index", index).Debug("creating index")
	service := s.client.CreateIndex(index)
	if len(body) > 0 {
		service = service.BodyString(string(body))
	}

	result, err := service.Do(ctx)
	if err != nil {
		return nil, fromOlivereError(err)
	}
	return toResponse(result)
}

// UpdateAliases applies the alias actions, only add and remove are supported
func (s *OlivereClient) UpdateAliases(ctx context.Context, actions search.AliasActions) (Response, error) {
	service := s.client.Alias()
	for _, action := range actions.Actions {
		for kind, target := range action {
			switch AliasAction(kind) {
			case AliasAdd:
				service = service.Action(elastic.NewAliasAddAction(target.Alias).Index(target.Index))
			case AliasRemove:
				service = service.Action(elastic.NewAliasRemoveAction(target.Alias).Index(target.Index))
			default:
				return nil, errors.Errorf("unsupported alias action %q", kind)
			}
		}
	}

	s.log.WithField("actions", actions.Actions).Debug("updating aliases")
	result, err := service.Do(ctx)
	if err != nil {
		return nil, fromOlivereError(err)
	}
	return toResponse(result)
}

// ClusterHealth waits on the cluster until the index reaches the status or the timeout elapses
func (s *OlivereClient) ClusterHealth(
	ctx context.Context,
	index string,
	status HealthStatus,
	timeout string,
) (*search.ClusterHealth, error) {
	log := s.log.WithFields(logrus.Fields{
		"index":   index,
		"status":  status,
		"timeout": timeout,
	})

	log.Debug("waiting for cluster health")
	result, err := s.client.ClusterHealth().
		Index(index).
		WaitForStatus(string(status)).
		Timeout(timeout).
		Do(ctx)
	if elastic.IsTimeout(err) {
		log.Debug("cluster health wait timed out")
		return &search.ClusterHealth{TimedOut: true}, nil
	}
	if err != nil {
		return nil, fromOlivereError(err)
	}
	if result == nil {
		return nil, nil
	}

	return &search.ClusterHealth{
		ClusterName:         result.ClusterName,
		Status:              result.Status,
		TimedOut:            result.TimedOut,
		NumberOfNodes:       result.NumberOfNodes,
		ActivePrimaryShards: result.ActivePrimaryShards,
		ActiveShards:        result.ActiveShards,
		RelocatingShards:    result.RelocatingShards,
		InitializingShards:  result.InitializingShards,
		UnassignedShards:    result.UnassignedShards,
	}, nil
}

// fromOlivereError converts *elastic.Error into *RemoteError, other errors are returned as is
func fromOlivereError(err error) error {
	var elasticErr *elastic.Error
	if !errors.As(err, &elasticErr) {
		return err
	}

	remoteErr := &RemoteError{
		StatusCode: elasticErr.Status,
		Kind:       http.StatusText(elasticErr.Status),
	}
	if elasticErr.Details != nil {
		remoteErr.Kind = elasticErr.Details.Type
		remoteErr.Reason = elasticErr.Details.Reason
	}
	return remoteErr
}

// toResponse converts a typed olivere result into a Response, nil results stay nil
func toResponse(result any) (Response, error) {
	content, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal response")
	}

	var resp Response
	if err := json.Unmarshal(content, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}
	return resp, nil
}

package elastickit

import (
	"bytes"
	"context"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bdpiprava/elastickit/logging"
	"github.com/bdpiprava/elastickit/search"
)

// ElasticSearchClient implements AdminClient with the official elasticsearch client
type ElasticSearchClient struct {
	client *elasticsearch.Client
	log    logrus.FieldLogger
}

// NewElasticSearchClient wraps the given client, log defaults to the base logger
func NewElasticSearchClient(client *elasticsearch.Client, log logrus.FieldLogger) *ElasticSearchClient {
	if log == nil {
		log = logging.Base()
	}
	return &ElasticSearchClient{
		client: client,
		log:    log.WithField("client", "elasticsearch"),
	}
}

// IndexStats fetches the index stats
func (s *ElasticSearchClient) IndexStats(ctx context.Context, index string) error {
	log := s.log.WithFields(logrus.Fields{
		"index": index,
	})

	log.Debug("fetching index stats")
	resp, err := s.client.Indices.Stats(
		s.client.Indices.Stats.WithContext(ctx),
		s.client.Indices.Stats.WithIndex(index),
	)
	if err != nil {
		log.Debug("failed to execute index stats request")
		return err
	}
	defer closeSilently(resp.Body)

	_, err = readBody(resp.StatusCode, resp.Body)
	return err
}

// IndexExists checks if the index exists
func (s *ElasticSearchClient) IndexExists(ctx context.Context, index string) (bool, error) {
	log := s.log.WithFields(logrus.Fields{
		"index": index,
	})

	log.Debug("checking if index exists")
	resp, err := s.client.Indices.Exists(
		[]string{index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		log.Debug("failed to execute index exists request")
		return false, err
	}
	defer closeSilently(resp.Body)

	return parseExists(resp.StatusCode, resp.Body)
}

// OpenIndex opens the index
func (s *ElasticSearchClient) OpenIndex(ctx context.Context, index string) (Response, error) {
	log := s.log.WithFields(logrus.Fields{
		"index": index,
	})

	log.Debug("opening index")
	resp, err := s.client.Indices.Open(
		[]string{index},
		s.client.Indices.Open.WithContext(ctx),
	)
	if err != nil {
		log.Debug("failed to execute open index request")
		return nil, err
	}
	defer closeSilently(resp.Body)

	return parseResponse(resp.StatusCode, resp.Body)
}

// CloseIndex closes the index
func (s *ElasticSearchClient) CloseIndex(ctx context.Context, index string) (Response, error) {
	log := s.log.WithFields(logrus.Fields{
		"index": index,
	})

	log.Debug("closing index")
	resp, err := s.client.Indices.Close(
		[]string{index},
		s.client.Indices.Close.WithContext(ctx),
	)
	if err != nil {
		log.Debug("failed to execute close index request")
		return nil, err
	}
	defer closeSilently(resp.Body)

	return parseResponse(resp.StatusCode, resp.Body)
}

// CreateIndex creates a new index
func (s *ElasticSearchClient) CreateIndex(ctx context.Context, index string, body []byte) (Response, error) {
	log := s.log.WithFields(logrus.Fields{
		"index": index,
	})

	log.Debug("creating index")
	resp, err := s.client.Indices.Create(
		index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		log.Debug("failed to execute create index request")
		return nil, err
	}
	defer closeSilently(resp.Body)

	return parseResponse(resp.StatusCode, resp.Body)
}

// UpdateAliases applies the alias actions
func (s *ElasticSearchClient) UpdateAliases(ctx context.Context, actions search.AliasActions) (Response, error) {
	log := s.log.WithFields(logrus.Fields{
		"actions": actions.Actions,
	})

	body, err := marshalAliasActions(actions)
	if err != nil {
		return nil, err
	}

	log.Debug("updating aliases")
	resp, err := s.client.Indices.UpdateAliases(
		body,
		s.client.Indices.UpdateAliases.WithContext(ctx),
	)
	if err != nil {
		log.Debug("failed to execute update aliases request")
		return nil, err
	}
	defer closeSilently(resp.Body)

	return parseResponse(resp.StatusCode, resp.Body)
}

// ClusterHealth waits on the cluster until the index reaches the status or the timeout elapses
func (s *ElasticSearchClient) ClusterHealth(
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

	wait, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid health timeout %q", timeout)
	}

	log.Debug("waiting for cluster health")
	resp, err := s.client.Cluster.Health(
		s.client.Cluster.Health.WithContext(ctx),
		s.client.Cluster.Health.WithIndex(index),
		s.client.Cluster.Health.WithWaitForStatus(string(status)),
		s.client.Cluster.Health.WithTimeout(wait),
	)
	if err != nil {
		log.Debug("failed to execute cluster health request")
		return nil, err
	}
	defer closeSilently(resp.Body)

	return parseClusterHealth(resp.StatusCode, resp.Body)
}

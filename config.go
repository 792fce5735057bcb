package elastickit

import (
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/olivere/elastic/v7"
	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bdpiprava/elastickit/internal"
	"github.com/bdpiprava/elastickit/logging"
)

// Config is the configuration read from .elastickit.config.yaml
type Config = internal.Config

// ClusterConfig is the connection configuration of a cluster
type ClusterConfig = internal.ClusterConfig

const (
	DriverESAPI   = internal.DriverESAPI
	DriverOlivere = internal.DriverOlivere
)

type clientOptions struct {
	transport http.RoundTripper
	log       logrus.FieldLogger
}

// ClientOption customises the client built by NewClient
type ClientOption func(*clientOptions)

// WithTransport sets the HTTP transport used by the underlying client
func WithTransport(transport http.RoundTripper) ClientOption {
	return func(o *clientOptions) {
		o.transport = transport
	}
}

// WithLogger sets the logger of the client
func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(o *clientOptions) {
		o.log = log
	}
}

// NewClientFromConfig builds the client described by the config file, see internal.ReadConfigFile for its location
func NewClientFromConfig(opts ...ClientOption) (AdminClient, error) {
	config, err := internal.ReadConfigAs[Config]()
	if err != nil {
		return nil, err
	}

	path, viaEnv := internal.LoadedFrom()
	logging.Base().WithFields(logrus.Fields{
		"path":   path,
		"viaEnv": viaEnv,
	}).Debug("loaded config")

	return NewClient(config, opts...)
}

// NewClient builds an AdminClient for the elasticsearch cluster of the config, or the opensearch one when absent
func NewClient(config Config, opts ...ClientOption) (AdminClient, error) {
	options := clientOptions{log: logging.Base()}
	for _, opt := range opts {
		opt(&options)
	}

	if config.LogLevel != "" {
		level, err := logrus.ParseLevel(config.LogLevel)
		if err != nil {
			options.log.WithError(err).Warn("failed to parse log level, keeping current level")
		} else {
			logging.SetLogLevel(level)
		}
	}

	switch {
	case config.ElasticSearch != nil:
		return newElasticSearchAdminClient(*config.ElasticSearch, options)
	case config.OpenSearch != nil:
		return newOpenSearchAdminClient(*config.OpenSearch, options)
	default:
		return nil, ErrMissingClusterConfig
	}
}

func newElasticSearchAdminClient(config ClusterConfig, options clientOptions) (AdminClient, error) {
	addresses := splitAddresses(config.Addresses)

	switch config.Driver {
	case "", DriverESAPI:
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: addresses,
			Username:  config.Username,
			Password:  config.Password,
			Transport: options.transport,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create elasticsearch client")
		}
		return NewElasticSearchClient(client, options.log), nil
	case DriverOlivere:
		clientOpts := []elastic.ClientOptionFunc{
			elastic.SetURL(addresses...),
			elastic.SetErrorLog(options.log),
		}
		if config.Username != "" {
			clientOpts = append(clientOpts, elastic.SetBasicAuth(config.Username, config.Password))
		}
		if options.transport != nil {
			clientOpts = append(clientOpts, elastic.SetHttpClient(&http.Client{Transport: options.transport}))
		}

		client, err := elastic.NewSimpleClient(clientOpts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create olivere client")
		}
		return NewOlivereClient(client, options.log), nil
	default:
		return nil, errors.Errorf("unsupported elasticsearch driver %q", config.Driver)
	}
}

func newOpenSearchAdminClient(config ClusterConfig, options clientOptions) (AdminClient, error) {
	if config.Driver != "" && config.Driver != DriverESAPI {
		return nil, errors.Errorf("unsupported opensearch driver %q", config.Driver)
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: splitAddresses(config.Addresses),
		Username:  config.Username,
		Password:  config.Password,
		Transport: options.transport,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create opensearch client")
	}
	return NewOpenSearchClient(client, options.log), nil
}

func splitAddresses(addresses string) []string {
	result := make([]string, 0)
	for _, address := range strings.Split(addresses, ",") {
		if address = strings.TrimSpace(address); address != "" {
			result = append(result, address)
		}
	}
	return result
}

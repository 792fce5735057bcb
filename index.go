package elastickit

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bdpiprava/elastickit/logging"
)

// CreateIndex creates the index with the given settings and mappings body
func CreateIndex(ctx context.Context, client AdminClient, index string, body []byte) (Response, error) {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"func":  "CreateIndex",
		"index": index,
	})

	log.Debug("creating index")
	resp, err := client.CreateIndex(ctx, index, body)
	return requireResponse(log, resp, err, "problem occurred creating index %s", index)
}

// OpenIndex opens the index
func OpenIndex(ctx context.Context, client AdminClient, index string) (Response, error) {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"func":  "OpenIndex",
		"index": index,
	})

	log.Debug("opening index")
	resp, err := client.OpenIndex(ctx, index)
	return requireResponse(log, resp, err, "problem occurred opening index %s", index)
}

// CloseIndex closes the index
func CloseIndex(ctx context.Context, client AdminClient, index string) (Response, error) {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"func":  "CloseIndex",
		"index": index,
	})

	log.Debug("closing index")
	resp, err := client.CloseIndex(ctx, index)
	return requireResponse(log, resp, err, "problem occurred closing index %s", index)
}

// IsIndexClosed checks whether the index is closed.
//
// The cluster answers a stats request on a closed index with 403 and an
// IndexClosedException. Every other error, including a missing index, is
// returned unchanged.
func IsIndexClosed(ctx context.Context, client AdminClient, index string) (bool, error) {
	err := client.IndexStats(ctx, index)
	if err == nil {
		return false, nil
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.IsIndexClosed() {
		logging.FromContext(ctx).WithField("index", index).Debug("index is closed")
		return true, nil
	}
	return false, err
}

// requireResponse turns an empty response into an error wrapping ErrNoResponse
func requireResponse(log logrus.FieldLogger, resp Response, err error, msg string, args ...any) (Response, error) {
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, err
	}

	if resp == nil {
		log.Debug("empty response")
		return nil, errors.Wrapf(ErrNoResponse, msg, args...)
	}
	return resp, nil
}

package elastickit

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bdpiprava/elastickit/logging"
)

// DefaultWaitTimeout is used when WaitForIndex is given a non-positive timeout
const DefaultWaitTimeout = 600 * time.Second

// WaitForIndex blocks until the index reaches the given health status.
//
// It fails fast when the index is missing or closed. The wait itself is a
// single cluster health request with wait_for_status, so the cluster owns the
// polling and the timeout.
func WaitForIndex(ctx context.Context, client AdminClient, index string, status HealthStatus, timeout time.Duration) error {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"func":   "WaitForIndex",
		"index":  index,
		"status": status,
	})

	exists, err := client.IndexExists(ctx, index)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(ErrIndexNotFound, "cannot wait for index %s", index)
	}

	closed, err := IsIndexClosed(ctx, client, index)
	if err != nil {
		return err
	}
	if closed {
		return errors.Wrapf(ErrIndexClosed, "cannot wait for index %s", index)
	}

	wait := formatTimeout(timeout)
	log.WithField("timeout", wait).Debug("waiting for index status")
	health, err := client.ClusterHealth(ctx, index, status, wait)
	if err != nil {
		return err
	}
	if health == nil {
		return errors.Wrapf(ErrNoResponse, "problem occurred waiting for index %s", index)
	}

	if HealthStatus(health.Status) != status {
		log.WithField("actual", health.Status).Debug("index did not reach status")
		return errors.Wrapf(ErrStatusMismatch, "index %s is %q, wanted %q", index, health.Status, status)
	}
	return nil
}

// WaitForIndexGreen blocks until the index is green
func WaitForIndexGreen(ctx context.Context, client AdminClient, index string, timeout time.Duration) error {
	return WaitForIndex(ctx, client, index, StatusGreen, timeout)
}

// formatTimeout renders the timeout in whole seconds, e.g. "600s"
func formatTimeout(timeout time.Duration) string {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	seconds := int64(math.Ceil(timeout.Seconds()))
	return strconv.FormatInt(seconds, 10) + "s"
}

package elastickit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bdpiprava/elastickit/logging"
)

// ApplyAll applies op to every item in order and returns the items for which op failed.
// A failing item never stops the remaining ones.
func ApplyAll[T any](ctx context.Context, items []T, op func(context.Context, T) error) []T {
	failures := make([]T, 0)
	for _, item := range items {
		if err := op(ctx, item); err != nil {
			logFailure(ctx, item, err)
			failures = append(failures, item)
		}
	}
	return failures
}

// ApplyAllConcurrently is ApplyAll running at most limit operations at once, no limit when limit <= 0.
// The order of the returned failures is unspecified.
func ApplyAllConcurrently[T any](ctx context.Context, items []T, limit int, op func(context.Context, T) error) []T {
	var mu sync.Mutex
	failures := make([]T, 0)

	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, item := range items {
		g.Go(func() error {
			if err := op(ctx, item); err != nil {
				logFailure(ctx, item, err)
				mu.Lock()
				failures = append(failures, item)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return failures
}

// CloseIndices closes every index and returns the ones that failed
func CloseIndices(ctx context.Context, client AdminClient, indices []string) []string {
	return ApplyAll(ctx, indices, func(ctx context.Context, index string) error {
		_, err := CloseIndex(ctx, client, index)
		return err
	})
}

// OpenIndices opens every index and returns the ones that failed
func OpenIndices(ctx context.Context, client AdminClient, indices []string) []string {
	return ApplyAll(ctx, indices, func(ctx context.Context, index string) error {
		_, err := OpenIndex(ctx, client, index)
		return err
	})
}

// AddAliases adds every index to the alias and returns the indices that failed
func AddAliases(ctx context.Context, client AdminClient, alias string, indices []string) []string {
	return ApplyAll(ctx, indices, func(ctx context.Context, index string) error {
		_, err := AddAlias(ctx, client, alias, index)
		return err
	})
}

// RemoveAliases removes every index from the alias and returns the indices that failed
func RemoveAliases(ctx context.Context, client AdminClient, alias string, indices []string) []string {
	return ApplyAll(ctx, indices, func(ctx context.Context, index string) error {
		_, err := RemoveAlias(ctx, client, alias, index)
		return err
	})
}

func logFailure(ctx context.Context, item any, err error) {
	logging.FromContext(ctx).WithFields(logrus.Fields{
		"item": item,
	}).WithError(err).Warn("operation failed")
}

package elastickit

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bdpiprava/elastickit/logging"
	"github.com/bdpiprava/elastickit/search"
)

// UpdateAlias applies a single add or remove action for the alias and index
func UpdateAlias(ctx context.Context, client AdminClient, alias, index string, action AliasAction) (Response, error) {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"func":   "UpdateAlias",
		"alias":  alias,
		"index":  index,
		"action": action,
	})

	log.Debug("updating alias")
	resp, err := client.UpdateAliases(ctx, search.NewAliasActions(string(action), alias, index))
	return requireResponse(log, resp, err, "problem occurred updating alias %s for index %s", alias, index)
}

// AddAlias adds the index to the alias
func AddAlias(ctx context.Context, client AdminClient, alias, index string) (Response, error) {
	return UpdateAlias(ctx, client, alias, index, AliasAdd)
}

// RemoveAlias removes the index from the alias
func RemoveAlias(ctx context.Context, client AdminClient, alias, index string) (Response, error) {
	return UpdateAlias(ctx, client, alias, index, AliasRemove)
}

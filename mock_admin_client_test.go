package elastickit_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bdpiprava/elastickit"
	"github.com/bdpiprava/elastickit/search"
)

type mockAdminClient struct {
	mock.Mock
}

var _ elastickit.AdminClient = (*mockAdminClient)(nil)

func (m *mockAdminClient) IndexStats(ctx context.Context, index string) error {
	args := m.Called(ctx, index)
	return args.Error(0)
}

func (m *mockAdminClient) IndexExists(ctx context.Context, index string) (bool, error) {
	args := m.Called(ctx, index)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdminClient) OpenIndex(ctx context.Context, index string) (elastickit.Response, error) {
	args := m.Called(ctx, index)
	resp, _ := args.Get(0).(elastickit.Response)
	return resp, args.Error(1)
}

func (m *mockAdminClient) CloseIndex(ctx context.Context, index string) (elastickit.Response, error) {
	args := m.Called(ctx, index)
	resp, _ := args.Get(0).(elastickit.Response)
	return resp, args.Error(1)
}

func (m *mockAdminClient) CreateIndex(ctx context.Context, index string, body []byte) (elastickit.Response, error) {
	args := m.Called(ctx, index, body)
	resp, _ := args.Get(0).(elastickit.Response)
	return resp, args.Error(1)
}

func (m *mockAdminClient) UpdateAliases(ctx context.Context, actions search.AliasActions) (elastickit.Response, error) {
	args := m.Called(ctx, actions)
	resp, _ := args.Get(0).(elastickit.Response)
	return resp, args.Error(1)
}

func (m *mockAdminClient) ClusterHealth(
	ctx context.Context,
	index string,
	status elastickit.HealthStatus,
	timeout string,
) (*search.ClusterHealth, error) {
	args := m.Called(ctx, index, status, timeout)
	health, _ := args.Get(0).(*search.ClusterHealth)
	return health, args.Error(1)
}

var acknowledged = elastickit.Response{"acknowledged": true}

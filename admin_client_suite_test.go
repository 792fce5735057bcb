package elastickit_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/bdpiprava/elastickit"
	"github.com/bdpiprava/elastickit/search"
)

const clusterURL = "http://localhost:9200"

type namedClient struct {
	name   string
	client elastickit.AdminClient
	// legacy is true when the client keeps error bodies it cannot decode
	legacy bool
}

type AdminClientTestSuite struct {
	suite.Suite
	transport *httpmock.MockTransport
	clients   []namedClient
}

func TestAdminClientTestSuite(t *testing.T) {
	suite.Run(t, new(AdminClientTestSuite))
}

func (s *AdminClientTestSuite) SetupTest() {
	s.transport = httpmock.NewMockTransport()
	s.reset()

	cluster := &elastickit.ClusterConfig{Addresses: clusterURL}
	olivere := &elastickit.ClusterConfig{Addresses: clusterURL, Driver: elastickit.DriverOlivere}

	s.clients = []namedClient{
		{name: "ElasticSearch", client: s.newClient(elastickit.Config{ElasticSearch: cluster}), legacy: true},
		{name: "OpenSearch", client: s.newClient(elastickit.Config{OpenSearch: cluster}), legacy: true},
		{name: "Olivere", client: s.newClient(elastickit.Config{ElasticSearch: olivere})},
	}
}

func (s *AdminClientTestSuite) Test_IsIndexClosed() {
	for _, tc := range s.clients {
		ctx := context.Background()
		index := randomIndex()

		s.Run(tc.name+"#Open", func() {
			s.reset()
			s.respond(http.MethodGet, "/"+index+"/_stats", 200, `{"_all":{}}`)

			closed, err := elastickit.IsIndexClosed(ctx, tc.client, index)

			s.Require().NoError(err)
			s.False(closed)
		})

		s.Run(tc.name+"#Closed", func() {
			s.reset()
			s.respond(http.MethodGet, "/"+index+"/_stats", 403,
				`{"error":{"type":"index_closed_exception","reason":"closed","index":"`+index+`"},"status":403}`)

			closed, err := elastickit.IsIndexClosed(ctx, tc.client, index)

			s.Require().NoError(err)
			s.True(closed)
		})

		s.Run(tc.name+"#NotFound", func() {
			s.reset()
			s.respond(http.MethodGet, "/"+index+"/_stats", 404,
				`{"error":{"type":"index_not_found_exception","reason":"no such index [`+index+`]"},"status":404}`)

			closed, err := elastickit.IsIndexClosed(ctx, tc.client, index)

			s.False(closed)
			var remoteErr *elastickit.RemoteError
			s.Require().ErrorAs(err, &remoteErr)
			s.True(remoteErr.IsNotFound())
			s.Equal("index_not_found_exception", remoteErr.Kind)
			s.Equal("no such index ["+index+"]", remoteErr.Reason)
		})

		s.Run(tc.name+"#ForbiddenWithoutMarker", func() {
			s.reset()
			s.respond(http.MethodGet, "/"+index+"/_stats", 403,
				`{"error":{"type":"security_exception","reason":"action is unauthorized"},"status":403}`)

			closed, err := elastickit.IsIndexClosed(ctx, tc.client, index)

			s.False(closed)
			var remoteErr *elastickit.RemoteError
			s.Require().ErrorAs(err, &remoteErr)
			s.Equal(403, remoteErr.StatusCode)
			s.Equal("security_exception", remoteErr.Kind)
		})

		if !tc.legacy {
			continue
		}

		s.Run(tc.name+"#ClosedLegacyBody", func() {
			s.reset()
			s.respond(http.MethodGet, "/"+index+"/_stats", 403,
				`{"error":"IndexClosedException[[`+index+`] closed]","status":403}`)

			closed, err := elastickit.IsIndexClosed(ctx, tc.client, index)

			s.Require().NoError(err)
			s.True(closed)
		})
	}
}

func (s *AdminClientTestSuite) Test_IndexAdministration() {
	for _, tc := range s.clients {
		ctx := context.Background()
		index := randomIndex()

		s.Run(tc.name+"#OpenIndex", func() {
			s.reset()
			s.respond(http.MethodPost, "/"+index+"/_open", 200, `{"acknowledged":true,"shards_acknowledged":true}`)

			resp, err := elastickit.OpenIndex(ctx, tc.client, index)

			s.Require().NoError(err)
			s.Equal(true, resp["acknowledged"])
			s.Equal(1, s.calls(http.MethodPost, "/"+index+"/_open"))
		})

		s.Run(tc.name+"#CloseIndex", func() {
			s.reset()
			s.respond(http.MethodPost, "/"+index+"/_close", 200, `{"acknowledged":true,"shards_acknowledged":true}`)

			resp, err := elastickit.CloseIndex(ctx, tc.client, index)

			s.Require().NoError(err)
			s.Equal(true, resp["acknowledged"])
			s.Equal(1, s.calls(http.MethodPost, "/"+index+"/_close"))
		})

		s.Run(tc.name+"#CreateIndex", func() {
			s.reset()
			var received map[string]any
			s.transport.RegisterResponder(http.MethodPut, clusterURL+"/"+index, func(req *http.Request) (*http.Response, error) {
				content, _ := io.ReadAll(req.Body)
				_ = json.Unmarshal(content, &received)
				return newResponse(200, `{"acknowledged":true,"shards_acknowledged":true,"index":"`+index+`"}`), nil
			})

			settings := search.CreateIndexSettings{
				NumberOfShards:    1,
				NumberOfReplicas:  1,
				MappingProperties: map[string]any{"name": map[string]any{"type": "keyword"}},
			}
			body, err := settings.GetBody()
			s.Require().NoError(err)

			resp, err := elastickit.CreateIndex(ctx, tc.client, index, body)

			s.Require().NoError(err)
			s.Equal(index, resp["index"])
			var want map[string]any
			s.Require().NoError(json.Unmarshal(body, &want))
			s.Equal(want, received)
		})

		s.Run(tc.name+"#CreateIndexAlreadyExists", func() {
			s.reset()
			s.respond(http.MethodPut, "/"+index, 400,
				`{"error":{"type":"resource_already_exists_exception","reason":"index already exists"},"status":400}`)

			_, err := elastickit.CreateIndex(ctx, tc.client, index, []byte(`{}`))

			s.ErrorContains(err, "resource_already_exists_exception")
		})

		s.Run(tc.name+"#IndexExists", func() {
			s.reset()
			s.respond(http.MethodHead, "/"+index, 200, "")
			s.respond(http.MethodHead, "/missing-"+index, 404, "")

			exists, err := tc.client.IndexExists(ctx, index)
			s.Require().NoError(err)
			s.True(exists)

			exists, err = tc.client.IndexExists(ctx, "missing-"+index)
			s.Require().NoError(err)
			s.False(exists)
		})
	}
}

func (s *AdminClientTestSuite) Test_UpdateAlias() {
	for _, tc := range s.clients {
		ctx := context.Background()

		s.Run(tc.name+"#AddAlias", func() {
			s.reset()
			received := s.captureAliases()

			_, err := elastickit.UpdateAlias(ctx, tc.client, "a", "idx", elastickit.AliasAdd)

			s.Require().NoError(err)
			want := map[string]any{
				"actions": []any{
					map[string]any{"add": map[string]any{"alias": "a", "index": "idx"}},
				},
			}
			if diff := cmp.Diff(want, *received); diff != "" {
				s.Failf("unexpected alias payload", "(-want +got):\n%s", diff)
			}
		})

		s.Run(tc.name+"#RemoveAliases", func() {
			s.reset()
			s.respond(http.MethodPost, "/_aliases", 404,
				`{"error":{"type":"aliases_not_found_exception","reason":"aliases [a] missing"},"status":404}`)

			failures := elastickit.RemoveAliases(ctx, tc.client, "a", []string{"idx-1", "idx-2"})

			s.Equal([]string{"idx-1", "idx-2"}, failures)
			s.Equal(2, s.calls(http.MethodPost, "/_aliases"))
		})
	}
}

func (s *AdminClientTestSuite) Test_WaitForIndex() {
	for _, tc := range s.clients {
		ctx := context.Background()
		index := randomIndex()

		s.Run(tc.name+"#Green", func() {
			s.reset()
			s.respondIndexReady(index)
			s.transport.RegisterResponder(http.MethodGet, clusterURL+"/_cluster/health/"+index, func(req *http.Request) (*http.Response, error) {
				s.Equal("green", req.URL.Query().Get("wait_for_status"))
				s.NotEmpty(req.URL.Query().Get("timeout"))
				return newResponse(200, `{"cluster_name":"test","status":"green","timed_out":false}`), nil
			})

			err := elastickit.WaitForIndexGreen(ctx, tc.client, index, 30*time.Second)

			s.Require().NoError(err)
			s.Equal(1, s.calls(http.MethodGet, "/_cluster/health/"+index))
		})

		s.Run(tc.name+"#TimedOut", func() {
			s.reset()
			s.respondIndexReady(index)
			s.respond(http.MethodGet, "/_cluster/health/"+index, 408, `{"cluster_name":"test","status":"yellow","timed_out":true}`)

			err := elastickit.WaitForIndexGreen(ctx, tc.client, index, time.Second)

			s.ErrorIs(err, elastickit.ErrStatusMismatch)
		})

		s.Run(tc.name+"#Missing", func() {
			s.reset()
			s.respond(http.MethodHead, "/"+index, 404, "")

			err := elastickit.WaitForIndex(ctx, tc.client, index, elastickit.StatusYellow, time.Second)

			s.ErrorIs(err, elastickit.ErrIndexNotFound)
			s.Equal(0, s.calls(http.MethodGet, "/_cluster/health/"+index))
		})

		s.Run(tc.name+"#Closed", func() {
			s.reset()
			s.respond(http.MethodHead, "/"+index, 200, "")
			s.respond(http.MethodGet, "/"+index+"/_stats", 403,
				`{"error":{"type":"index_closed_exception","reason":"closed"},"status":403}`)

			err := elastickit.WaitForIndex(ctx, tc.client, index, elastickit.StatusYellow, time.Second)

			s.ErrorIs(err, elastickit.ErrIndexClosed)
			s.Equal(0, s.calls(http.MethodGet, "/_cluster/health/"+index))
		})
	}
}

func (s *AdminClientTestSuite) Test_EmptyResponse() {
	for _, tc := range s.clients {
		if !tc.legacy {
			// olivere always decodes into a typed result
			continue
		}

		s.Run(tc.name, func() {
			s.reset()
			s.respond(http.MethodPost, "/idx/_open", 200, "")

			resp, err := elastickit.OpenIndex(context.Background(), tc.client, "idx")

			s.Nil(resp)
			s.ErrorIs(err, elastickit.ErrNoResponse)
		})
	}
}

func (s *AdminClientTestSuite) newClient(config elastickit.Config) elastickit.AdminClient {
	client, err := elastickit.NewClient(config, elastickit.WithTransport(s.transport))
	s.Require().NoError(err)
	return client
}

// reset drops all responders and keeps the product check endpoint answering
func (s *AdminClientTestSuite) reset() {
	s.transport.Reset()
	s.respond(http.MethodGet, "/", 200,
		`{"version":{"number":"7.17.10","build_flavor":"default"},"tagline":"You Know, for Search"}`)
}

func (s *AdminClientTestSuite) respond(method, path string, status int, body string) {
	s.transport.RegisterResponder(method, clusterURL+path, func(*http.Request) (*http.Response, error) {
		return newResponse(status, body), nil
	})
}

func (s *AdminClientTestSuite) respondIndexReady(index string) {
	s.respond(http.MethodHead, "/"+index, 200, "")
	s.respond(http.MethodGet, "/"+index+"/_stats", 200, `{"_all":{}}`)
}

func (s *AdminClientTestSuite) captureAliases() *map[string]any {
	received := map[string]any{}
	s.transport.RegisterResponder(http.MethodPost, clusterURL+"/_aliases", func(req *http.Request) (*http.Response, error) {
		content, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(content, &received)
		return newResponse(200, `{"acknowledged":true}`), nil
	})
	return &received
}

func (s *AdminClientTestSuite) calls(method, path string) int {
	return s.transport.GetCallCountInfo()[method+" "+clusterURL+path]
}

func newResponse(status int, body string) *http.Response {
	resp := httpmock.NewStringResponse(status, body)
	if resp.Header == nil {
		resp.Header = http.Header{}
	}
	resp.Header.Set("Content-Type", "application/json")
	resp.Header.Set("X-Elastic-Product", "Elasticsearch")
	return resp
}

func randomIndex() string {
	return "test_index_" + uuid.New().String()
}

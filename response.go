package elastickit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/bdpiprava/elastickit/search"
)

const successStatusCode = 299

// readBody reads the response body, error statuses become *RemoteError and an empty or null body yields nil
func readBody(statusCode int, body io.Reader) ([]byte, error) {
	var content []byte
	if body != nil {
		var err error
		content, err = io.ReadAll(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read response body")
		}
	}

	if statusCode > successStatusCode {
		return nil, newRemoteError(statusCode, content)
	}

	content = bytes.TrimSpace(content)
	if len(content) == 0 || bytes.Equal(content, []byte("null")) {
		return nil, nil
	}
	return content, nil
}

// parseResponse decodes an administrative response
func parseResponse(statusCode int, body io.Reader) (Response, error) {
	content, err := readBody(statusCode, body)
	if err != nil || content == nil {
		return nil, err
	}

	var result Response
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}
	return result, nil
}

// parseExists maps the status of a HEAD request onto index existence
func parseExists(statusCode int, body io.Reader) (bool, error) {
	if statusCode == http.StatusNotFound {
		return false, nil
	}

	if _, err := readBody(statusCode, body); err != nil {
		return false, err
	}
	return true, nil
}

// parseClusterHealth decodes a cluster health response. The cluster answers 408
// with a regular health body when wait_for_status timed out.
func parseClusterHealth(statusCode int, body io.Reader) (*search.ClusterHealth, error) {
	if statusCode == http.StatusRequestTimeout {
		statusCode = http.StatusOK
	}

	content, err := readBody(statusCode, body)
	if err != nil || content == nil {
		return nil, err
	}

	var health search.ClusterHealth
	if err := json.Unmarshal(content, &health); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal cluster health")
	}
	return &health, nil
}

func marshalAliasActions(actions search.AliasActions) (io.Reader, error) {
	content, err := json.Marshal(actions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal alias actions")
	}
	return bytes.NewReader(content), nil
}

func closeSilently(closable io.Closer) {
	if closable == nil {
		return
	}
	_ = closable.Close()
}

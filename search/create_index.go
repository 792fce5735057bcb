package search

import (
	"encoding/json"
	"fmt"
)

const createIndexBodyTemplate = `{
	"settings": {
		"index": {
			"number_of_shards": %d,
			"number_of_replicas": %d
		}
	},
	"mappings": {
		"dynamic": %t,
		"properties": %s
	}
}`

// CreateIndexSettings describes a create index request body
type CreateIndexSettings struct {
	NumberOfShards          int
	NumberOfReplicas        int
	Dynamic                 bool
	MappingProperties       map[string]any
	MappingPropertiesString string
}

// GetBody renders the create index body, shards and replicas default to 1
func (c *CreateIndexSettings) GetBody() ([]byte, error) {
	props := c.MappingPropertiesString
	if props == "" && len(c.MappingProperties) > 0 {
		propBytes, err := json.Marshal(c.MappingProperties)
		if err != nil {
			return nil, err
		}
		props = string(propBytes)
	}

	if props == "" {
		props = "{}"
	}

	if c.NumberOfShards == 0 {
		c.NumberOfShards = 1
	}

	if c.NumberOfReplicas == 0 {
		c.NumberOfReplicas = 1
	}

	body := fmt.Sprintf(
		createIndexBodyTemplate,
		c.NumberOfShards,
		c.NumberOfReplicas,
		c.Dynamic, props,
	)
	if !json.Valid([]byte(body)) {
		return nil, fmt.Errorf("invalid mapping properties: %s", props)
	}
	return []byte(body), nil
}

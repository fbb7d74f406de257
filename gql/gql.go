// gql declares the transport capability this library depends on. The
// GraphQL client itself lives elsewhere; everything here works against the
// opaque Executor interface and the raw saved-view spec documents it
// returns.
package gql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/tracelab/workspaces-go/filters"
)

// Executor runs a GraphQL query against the backend and returns the parsed
// response data.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (map[string]interface{}, error)
}

// ProjectInternalID resolves the internal id of a project by entity and
// project name.
const ProjectInternalID = `
query ProjectInternalId($projectName: String!, $entityName: String!) {
    project(name: $projectName, entityName: $entityName) {
        id
        internalId
    }
}`

// DecodeFilters decodes a filter tree embedded in a raw spec document node.
func DecodeFilters(raw map[string]interface{}) (*filters.Filters, error) {
	var tree filters.Filters
	if err := mapstructure.Decode(raw, &tree); err != nil {
		return nil, fmt.Errorf("malformed filters node: %w", err)
	}
	return &tree, nil
}

// EncodeFilters renders a filter tree as the generic map shape stored in
// spec documents, using the wire (camelCase) field spelling.
func EncodeFilters(tree *filters.Filters) (map[string]interface{}, error) {
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

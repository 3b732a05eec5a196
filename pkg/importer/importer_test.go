package importer

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/validation"
)

const candidateSpec = `
openapi: 3.0.0
info:
  title: ATS Candidate API
  version: 1.0.0
paths:
  /candidates:
    get:
      summary: List candidates
      operationId: listCandidates
      parameters:
        - name: status
          in: query
          required: false
          schema:
            type: string
            enum: [new, screening, hired]
        - name: limit
          in: query
          required: true
          schema:
            type: integer
            minimum: 1
            maximum: 100
        - name: X-Request-ID
          in: header
          schema:
            type: string
      responses:
        '200':
          description: Candidate list
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Candidate'
    post:
      summary: Create candidate
      operationId: createCandidate
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [age]
              properties:
                age:
                  type: integer
                  minimum: 0
      responses:
        '201':
          description: Created
        '400':
          description: Bad input
  /candidates/{id}:
    delete:
      summary: Remove candidate
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        '204':
          description: Deleted
components:
  schemas:
    Candidate:
      type: object
      properties:
        id:
          type: string
          format: uuid
        full_name:
          type: string
        score:
          type: number
`

func TestImportSpec(t *testing.T) {
	im := New()
	result, err := im.ImportSpec(context.Background(), candidateSpec, FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalEndpoints)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Endpoints, 3)

	// Paths are visited in sorted order, methods in GET/POST/PUT/DELETE/PATCH order.
	list := result.Endpoints[0]
	create := result.Endpoints[1]
	remove := result.Endpoints[2]

	assert.Equal(t, "GET", list.Endpoint.Method)
	assert.Equal(t, "/candidates", list.Endpoint.Path)
	assert.Equal(t, "List candidates", list.Endpoint.Name)
	assert.True(t, list.Endpoint.IsActive)

	assert.Equal(t, "POST", create.Endpoint.Method)
	assert.Equal(t, "DELETE", remove.Endpoint.Method)
	assert.Equal(t, "/candidates/{id}", remove.Endpoint.Path)
}

func TestImportSpecQueryParameters(t *testing.T) {
	im := New()
	result, err := im.ImportSpec(context.Background(), candidateSpec, FormatAuto)
	require.NoError(t, err)

	schema := result.Endpoints[0].Schema
	require.NotNil(t, schema)
	assert.Equal(t, "listCandidates Schema", schema.Name)
	assert.True(t, schema.IsDefault)

	rules, err := validation.ParseRules(schema.Validations)
	require.NoError(t, err)
	require.Len(t, rules, 2, "x- header must be skipped")

	assert.Equal(t, "status", rules[0].FieldName)
	assert.Equal(t, validation.TypeString, rules[0].FieldType)
	assert.False(t, rules[0].Required)
	assert.Equal(t, []string{"new", "screening", "hired"}, rules[0].Choices)

	assert.Equal(t, "limit", rules[1].FieldName)
	assert.Equal(t, validation.TypeInt, rules[1].FieldType)
	assert.True(t, rules[1].Required)
	require.NotNil(t, rules[1].MinValue)
	assert.Equal(t, 1.0, *rules[1].MinValue)
	require.NotNil(t, rules[1].MaxValue)
	assert.Equal(t, 100.0, *rules[1].MaxValue)
}

func TestImportSpecRequestBody(t *testing.T) {
	im := New()
	result, err := im.ImportSpec(context.Background(), candidateSpec, FormatAuto)
	require.NoError(t, err)

	schema := result.Endpoints[1].Schema
	require.NotNil(t, schema)
	assert.Equal(t, "createCandidate Schema", schema.Name)

	rules, err := validation.ParseRules(schema.Validations)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "age", rules[0].FieldName)
	assert.Equal(t, validation.TypeInt, rules[0].FieldType)
	assert.True(t, rules[0].Required)
	require.NotNil(t, rules[0].MinValue)
	assert.Equal(t, 0.0, *rules[0].MinValue)
	assert.Nil(t, rules[0].MaxValue)
}

func TestImportSpecPathParamsProduceNoSchema(t *testing.T) {
	im := New()
	result, err := im.ImportSpec(context.Background(), candidateSpec, FormatAuto)
	require.NoError(t, err)

	assert.Nil(t, result.Endpoints[2].Schema, "path-only parameters derive no rules")
}

func TestImportSpecResponseTemplates(t *testing.T) {
	im := New()
	result, err := im.ImportSpec(context.Background(), candidateSpec, FormatAuto)
	require.NoError(t, err)

	// GET /candidates: schema-directed synthesis from the Candidate array.
	listTemplates := result.Endpoints[0].Templates
	require.Len(t, listTemplates, 1)
	tmpl := listTemplates[0]
	assert.Equal(t, "HTTP_200", tmpl.Name)
	assert.Equal(t, 200, tmpl.StatusCode)
	assert.Equal(t, "application/json", tmpl.ContentType)
	assert.True(t, tmpl.IsDefault)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(tmpl.Template), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "${mock.uuid}", items[0]["id"])
	assert.Equal(t, "${request.full_name}", items[0]["full_name"])
	assert.Equal(t, "${mock.float[0.1-100.0]}", items[0]["score"])

	// POST /candidates: fallback templates, first 2xx is the default.
	createTemplates := result.Endpoints[1].Templates
	require.Len(t, createTemplates, 2)
	assert.Equal(t, "HTTP_201", createTemplates[0].Name)
	assert.True(t, createTemplates[0].IsDefault)
	assert.Equal(t, "HTTP_400", createTemplates[1].Name)
	assert.False(t, createTemplates[1].IsDefault)

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(createTemplates[0].Template), &created))
	data := created["data"].(map[string]any)
	assert.Equal(t, "${mock.uuid}", data["id"])

	// DELETE: 204 degenerates to an empty object.
	removeTemplates := result.Endpoints[2].Templates
	require.Len(t, removeTemplates, 1)
	var empty map[string]any
	require.NoError(t, json.Unmarshal([]byte(removeTemplates[0].Template), &empty))
	assert.Empty(t, empty)
}

func TestImportSpecJSONFormat(t *testing.T) {
	spec := `{
		"openapi": "3.0.0",
		"info": {"title": "Minimal", "version": "1.0.0"},
		"paths": {
			"/ping": {
				"get": {
					"responses": {"200": {"description": "pong"}}
				}
			}
		}
	}`

	im := New()
	result, err := im.ImportSpec(context.Background(), spec, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalEndpoints)
	assert.Equal(t, "GET /ping", result.Endpoints[0].Endpoint.Name)
}

func TestImportSpecInvalidDocumentIsFatal(t *testing.T) {
	im := New()

	_, err := im.ImportSpec(context.Background(), "not: an: openapi: doc", FormatAuto)
	assert.Error(t, err)

	_, err = im.ImportSpec(context.Background(), `{"openapi": "3.0.0"}`, FormatAuto)
	assert.Error(t, err, "missing info and paths must fail structural validation")

	_, err = im.ImportSpec(context.Background(), "{broken json", FormatJSON)
	assert.Error(t, err)
}

func TestImportSpecPartialFailure(t *testing.T) {
	// A range status code like 2XX is structurally valid OpenAPI but has
	// no single numeric status, so that operation fails while the rest of
	// the batch converts.
	spec := `
openapi: 3.0.0
info:
  title: Partial
  version: 1.0.0
paths:
  /bad:
    get:
      responses:
        '2XX':
          description: Any success
  /good:
    get:
      responses:
        '200':
          description: OK
`
	im := New()
	result, err := im.ImportSpec(context.Background(), spec, FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalEndpoints)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "Error processing GET /bad:"), result.Errors[0])
	require.Len(t, result.Endpoints, 1)
	assert.Equal(t, "/good", result.Endpoints[0].Endpoint.Path)
}

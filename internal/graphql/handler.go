package graphql

import (
	"encoding/json"
	"net/http"

	gql "github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/ast"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/parser"
	"github.com/botobag/artemis/graphql/token"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/middleware"
)

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves queries and mutations on POST and GET /graphql.
type Handler struct {
	schema gql.Schema
}

// NewHandler creates the HTTP transport for the schema.
func NewHandler(schema *gql.Schema) *Handler {
	return &Handler{schema: *schema}
}

// Serve is the gin handler for the /graphql endpoint.
func (h *Handler) Serve(c *gin.Context) {
	req, ok := parseRequest(c)
	if !ok {
		return
	}

	operation, ok := h.prepare(c, req)
	if !ok {
		return
	}

	switch operation.Type() {
	case ast.OperationTypeSubscription:
		writeErrorResponse(c, http.StatusBadRequest, "subscriptions must use the /graphql/stream endpoint")
		return

	case ast.OperationTypeMutation:
		if c.Request.Method == http.MethodGet {
			writeErrorResponse(c, http.StatusMethodNotAllowed, "mutations are not allowed over GET")
			return
		}
	}

	result := <-operation.Execute(c.Request.Context(), executor.ExecuteParams{
		AppContext:     &RequestContext{User: middleware.CurrentUser(c)},
		VariableValues: req.Variables,
	})

	writeResult(c, &result)
}

// parseRequest reads the GraphQL request from the query string on GET and
// from the JSON body otherwise, writing the error response on failure.
func parseRequest(c *gin.Context) (Request, bool) {
	var req Request

	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				writeErrorResponse(c, http.StatusBadRequest, "variables must be a JSON-encoded object")
				return req, false
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return req, false
	}

	if req.Query == "" {
		writeErrorResponse(c, http.StatusBadRequest, "Must provide query string")
		return req, false
	}

	return req, true
}

// prepare parses and prepares the operation, writing the error response on
// failure.
func (h *Handler) prepare(c *gin.Context, req Request) (*executor.PreparedOperation, bool) {
	document, err := parser.Parse(token.NewSource(&token.SourceConfig{
		Body: token.SourceBody([]byte(req.Query)),
	}), parser.ParseOptions{})
	if err != nil {
		writeErrorResponse(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:        h.schema,
		Document:      document,
		OperationName: req.OperationName,
	})
	if errs.HaveOccurred() {
		writeGraphQLErrors(c, http.StatusBadRequest, errs)
		return nil, false
	}

	return operation, true
}

func writeResult(c *gin.Context, result *executor.ExecutionResult) {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Status(http.StatusOK)

	if err := result.MarshalJSONTo(c.Writer); err != nil {
		log.Error().Err(err).Msg("failed to write GraphQL response")
	}
}

// writeGraphQLErrors encodes prepare-stage errors with the same marshaler as
// execution results, so clients always see spec-shaped error objects.
func writeGraphQLErrors(c *gin.Context, status int, errs gql.Errors) {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Status(status)

	result := executor.ExecutionResult{Errors: errs}
	if err := result.MarshalJSONTo(c.Writer); err != nil {
		log.Error().Err(err).Msg("failed to write GraphQL error response")
	}
}

func writeErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"errors": []gin.H{
			{"message": message},
		},
	})
}

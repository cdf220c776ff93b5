package graphql

import (
	"net/http"

	gql "github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/ast"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	bookservice "library-backend/internal/domains/book/service"
	"library-backend/internal/shared/middleware"
)

// StreamHandler serves subscription operations over Server-Sent Events on
// GET /graphql/stream. Each published book is executed through the prepared
// operation and emitted as one SSE message.
type StreamHandler struct {
	inner *Handler
	books bookservice.Service
}

// NewStreamHandler creates the SSE transport for subscription operations.
func NewStreamHandler(schema *gql.Schema, books bookservice.Service) *StreamHandler {
	return &StreamHandler{
		inner: NewHandler(schema),
		books: books,
	}
}

// Serve is the gin handler for the /graphql/stream endpoint.
func (h *StreamHandler) Serve(c *gin.Context) {
	req, ok := parseRequest(c)
	if !ok {
		return
	}

	operation, ok := h.inner.prepare(c, req)
	if !ok {
		return
	}

	if operation.Type() != ast.OperationTypeSubscription {
		writeErrorResponse(c, http.StatusBadRequest, "only subscription operations are accepted on this endpoint")
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		writeErrorResponse(c, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := c.Request.Context()
	appCtx := &RequestContext{User: middleware.CurrentUser(c)}

	events, cancel := h.books.Subscribe(ctx)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return

		case book, open := <-events:
			if !open {
				return
			}

			result := <-operation.Execute(ctx, executor.ExecuteParams{
				RootValue:      book,
				AppContext:     appCtx,
				VariableValues: req.Variables,
			})

			payload, err := result.MarshalJSON()
			if err != nil {
				log.Error().Err(err).Msg("failed to encode subscription event")
				continue
			}

			if _, err := c.Writer.WriteString("event: next\ndata: "); err != nil {
				return
			}
			if _, err := c.Writer.Write(payload); err != nil {
				return
			}
			if _, err := c.Writer.WriteString("\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

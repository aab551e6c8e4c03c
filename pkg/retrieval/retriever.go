package retrieval

import (
	"context"
	"fmt"
	"log"
)

// Retriever fetches study material for a query. A real implementation
// would sit on a vector index; the contract is a context string that
// may be empty when nothing matches.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (string, error)
}

// StubRetriever returns a tagged placeholder. It never fails and is the
// default until a vector index is wired in.
type StubRetriever struct {
	logger *log.Logger
}

var _ Retriever = &StubRetriever{}

func NewStubRetriever(logger *log.Logger) *StubRetriever {
	return &StubRetriever{logger: logger}
}

func (r *StubRetriever) Retrieve(_ context.Context, query string) (string, error) {
	if r.logger != nil {
		r.logger.Printf("[RETRIEVAL] searching material for: %s", query)
	}
	return fmt.Sprintf("[RAG CONTEXT] The user asked about: %s. (Indexed source material would be inserted here.)", query), nil
}

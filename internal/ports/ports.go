// Package ports defines the interfaces the exporter consumes.
package ports

import "context"

// SeriesSender ships prebuilt payload bodies to the ingestion API. An
// empty payload list is a no-op success. Implementations post payloads
// concurrently and report the first failure after all requests finish.
type SeriesSender interface {
	Send(ctx context.Context, payloads [][]byte) error
}

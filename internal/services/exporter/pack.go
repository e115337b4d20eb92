package exporter

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"

	"github.com/vshulcz/Telemetra/internal/domain"
	"github.com/vshulcz/Telemetra/internal/misc"
)

// Payload ceilings mandated by the ingestion API; see
// https://docs.datadoghq.com/api/latest/metrics/#submit-metrics
const (
	maxPayloadBytes      = 3_200_000
	maxDecompressedBytes = 62_914_560
)

// payloadLimits carries the two independent ceilings so tests can
// shrink them. send applies to the bytes actually transmitted; raw
// applies to the pre-compression body when gzip is enabled.
type payloadLimits struct {
	send int
	raw  int
}

var apiLimits = payloadLimits{send: maxPayloadBytes, raw: maxDecompressedBytes}

var bufPool = misc.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) })

// pack serializes series into one or more payload bodies, each under
// the API ceilings for the given compression setting. The union of
// series across the returned payloads is exactly the input, in order.
func pack(series []domain.Series, compress bool) ([][]byte, error) {
	return packBounded(series, compress, apiLimits)
}

// packBounded is the worklist form of recursive midpoint bisection:
// depth stays logarithmic for uniform batches and a single series that
// cannot fit is a terminal error, never an endless split.
func packBounded(series []domain.Series, compress bool, lim payloadLimits) ([][]byte, error) {
	if len(series) == 0 {
		return nil, nil
	}

	var out [][]byte
	// LIFO worklist: pushing the right half before the left keeps the
	// emitted payloads in input order.
	work := [][]domain.Series{series}
	for len(work) > 0 {
		batch := work[len(work)-1]
		work = work[:len(work)-1]

		body, err := json.Marshal(domain.SeriesBatch{Series: batch})
		if err != nil {
			return nil, fmt.Errorf("encode series: %w", err)
		}

		if compress && len(body) >= lim.raw {
			// Already over the decompressed ceiling: compressing this
			// batch cannot help, split immediately.
			if len(batch) == 1 {
				return nil, unsplittable(batch[0], len(body))
			}
			mid := len(batch) / 2
			work = append(work, batch[mid:], batch[:mid])
			continue
		}

		wire := body
		if compress {
			if wire, err = gzipBytes(body); err != nil {
				return nil, err
			}
		}
		if len(wire) < lim.send {
			out = append(out, wire)
			continue
		}
		if len(batch) == 1 {
			return nil, unsplittable(batch[0], len(wire))
		}
		mid := len(batch) / 2
		work = append(work, batch[mid:], batch[:mid])
	}
	return out, nil
}

func unsplittable(s domain.Series, size int) error {
	return fmt.Errorf("metric %q: %d bytes: %w", s.Metric, size, domain.ErrUnsplittable)
}

func gzipBytes(src []byte) ([]byte, error) {
	buf := bufPool.Get()
	defer bufPool.Put(buf)

	zw := gzip.NewWriter(buf)
	if _, err := zw.Write(src); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("gzip write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip close: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

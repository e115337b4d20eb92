package exporter

import (
	"github.com/vshulcz/Telemetra/internal/domain"
)

// seriesFrom converts drained metrics into wire series. Counters and
// gauges map one-to-one; a histogram expands into its four summary
// series: name.count as a count, name.sum/.min/.max as gauges.
func seriesFrom(metrics []domain.Metric) []domain.Series {
	out := make([]domain.Series, 0, len(metrics))
	for _, m := range metrics {
		switch m.Kind {
		case domain.Histogram:
			st := m.Stats
			if st == nil {
				continue
			}
			out = append(out,
				wireSeries(m.Name+".count", domain.Counter, m, float64(st.Count)),
				wireSeries(m.Name+".sum", domain.Gauge, m, st.Sum),
				wireSeries(m.Name+".min", domain.Gauge, m, st.Min),
				wireSeries(m.Name+".max", domain.Gauge, m, st.Max),
			)
		default:
			out = append(out, wireSeries(m.Name, m.Kind, m, m.Value))
		}
	}
	return out
}

func wireSeries(name string, kind domain.MetricKind, m domain.Metric, value float64) domain.Series {
	return domain.Series{
		Metric: name,
		Type:   string(kind),
		Points: []domain.Point{{Timestamp: m.Timestamp, Value: value}},
		Tags:   m.Tags,
	}
}

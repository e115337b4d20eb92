package domain

import (
	"encoding/json"
	"fmt"
)

// Point is a single (unix timestamp, value) observation. It marshals
// as the two-element array the series API expects.
type Point struct {
	Timestamp int64
	Value     float64
}

// MarshalJSON encodes the point as [timestamp, value].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{float64(p.Timestamp), p.Value})
}

// UnmarshalJSON decodes a [timestamp, value] pair.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	p.Timestamp = int64(pair[0])
	p.Value = pair[1]
	return nil
}

// Series is one named, tagged time series destined for the ingestion API.
type Series struct {
	Metric string   `json:"metric"`
	Type   string   `json:"type"`
	Points []Point  `json:"points"`
	Tags   []string `json:"tags,omitempty"`
}

// SeriesBatch is the request body of POST /series.
type SeriesBatch struct {
	Series []Series `json:"series"`
}

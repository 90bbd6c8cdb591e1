package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FeeRecommendation holds mempool fee tiers in sat/vB.
type FeeRecommendation struct {
	FastestFee  float64
	HalfHourFee float64
	HourFee     float64
}

// decodePrice extracts bitcoin.<currency> from {"bitcoin":{"<currency>":n}}.
// Unsupported currencies come back as an empty object, so absence is an error.
func decodePrice(body []byte, currency string) (float64, error) {
	var resp struct {
		Bitcoin map[string]*float64 `json:"bitcoin"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, &ShapeError{Reason: "invalid price payload", Err: err}
	}
	if resp.Bitcoin == nil {
		return 0, &ShapeError{Reason: `missing "bitcoin" object`}
	}
	price := resp.Bitcoin[currency]
	if price == nil {
		return 0, &ShapeError{Reason: fmt.Sprintf("no bitcoin price returned for currency %q", currency)}
	}
	return *price, nil
}

// decodeHeight parses a bare non-negative integer body.
func decodeHeight(body []byte) (int64, error) {
	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return 0, &ShapeError{Reason: "block height is null"}
	}
	var height int64
	if err := json.Unmarshal(trimmed, &height); err != nil {
		return 0, &ShapeError{Reason: fmt.Sprintf("block height is not an integer: %q", truncate(trimmed)), Err: err}
	}
	if height < 0 {
		return 0, &ShapeError{Reason: fmt.Sprintf("negative block height %d", height)}
	}
	return height, nil
}

// decodeFees requires all three fee tiers to be present and numeric.
func decodeFees(body []byte) (FeeRecommendation, error) {
	var resp struct {
		FastestFee  *float64 `json:"fastestFee"`
		HalfHourFee *float64 `json:"halfHourFee"`
		HourFee     *float64 `json:"hourFee"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return FeeRecommendation{}, &ShapeError{Reason: "invalid fees payload", Err: err}
	}

	var missing []string
	if resp.FastestFee == nil {
		missing = append(missing, "fastestFee")
	}
	if resp.HalfHourFee == nil {
		missing = append(missing, "halfHourFee")
	}
	if resp.HourFee == nil {
		missing = append(missing, "hourFee")
	}
	if len(missing) > 0 {
		return FeeRecommendation{}, &ShapeError{Reason: fmt.Sprintf("missing fee fields %v", missing)}
	}

	return FeeRecommendation{
		FastestFee:  *resp.FastestFee,
		HalfHourFee: *resp.HalfHourFee,
		HourFee:     *resp.HourFee,
	}, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}

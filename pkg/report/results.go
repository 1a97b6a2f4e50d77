package report

import (
	"io"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/optirota/optirota/pkg/analyzer"
	"github.com/optirota/optirota/pkg/util"
)

// DestinationResult Distance is null for an unreachable destination.
type DestinationResult struct {
	Distance *float64 `json:"distance"`
	HopCount int      `json:"hop_count"`
}

type SourceResult struct {
	TotalCost      float64                      `json:"total_cost"`
	ValidCount     int                          `json:"valid_count"`
	InvalidCount   int                          `json:"invalid_count"`
	ElapsedSeconds float64                      `json:"elapsed_seconds"`
	Details        map[string]DestinationResult `json:"details,omitempty"`
}

// BuildResults converts analyzer reports into their serializable form, keyed by the decimal source id.
func BuildResults(reports map[int64]*analyzer.RouteReport) map[string]SourceResult {
	results := make(map[string]SourceResult, len(reports))
	for source, r := range reports {
		res := SourceResult{
			TotalCost:      r.TotalCost,
			ValidCount:     r.ValidCount,
			InvalidCount:   r.InvalidCount,
			ElapsedSeconds: r.Elapsed.Seconds(),
		}
		if r.Details != nil {
			res.Details = make(map[string]DestinationResult, len(r.Details))
			for dest, d := range r.Details {
				dr := DestinationResult{HopCount: d.HopCount}
				if d.Reachable() {
					dist := d.Distance
					dr.Distance = &dist
				}
				res.Details[strconv.FormatInt(dest, 10)] = dr
			}
		}
		results[strconv.FormatInt(source, 10)] = res
	}
	return results
}

func WriteResultsJSON(w io.Writer, reports map[int64]*analyzer.RouteReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildResults(reports)); err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "encode analysis results")
	}
	return nil
}

func SaveResultsJSON(path string, reports map[int64]*analyzer.RouteReport) error {
	f, err := os.Create(path)
	if err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "create results file %s", path)
	}
	defer f.Close()
	return WriteResultsJSON(f, reports)
}

// ReadResultsJSON loads a file written by SaveResultsJSON.
func ReadResultsJSON(r io.Reader) (map[string]SourceResult, error) {
	var results map[string]SourceResult
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "decode analysis results")
	}
	return results, nil
}

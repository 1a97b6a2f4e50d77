package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/optirota/optirota/pkg/analyzer"
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/util"
)

const (
	TEXT_REPORT_TOP = 10
	CONSOLE_TOP     = 5
)

// Summary statistics of one analysis run. Mean, Max and Min are over sources with at least one valid path.
type Summary struct {
	Algorithm string
	Analyzed  int
	Ranking   []analyzer.RankEntry
	Best      *analyzer.RankEntry
	BestLat   float64
	BestLon   float64
	Mean      float64
	Max       float64
	Min       float64
}

// Summarize ranks the reports and looks up the coordinates of the best source. A run without any valid source
// yields a Summary with a nil Best.
func Summarize(graph *da.Graph, algorithm string, reports map[int64]*analyzer.RouteReport) (Summary, error) {
	s := Summary{Algorithm: algorithm, Analyzed: len(reports)}

	ranking, err := analyzer.Rank(reports)
	if errors.Is(err, analyzer.ErrNoValidSource) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	s.Ranking = ranking

	best := ranking[0]
	s.Best = &best
	if node, ok := graph.GetNodeByID(best.Source); ok {
		s.BestLat, s.BestLon = node.GetLat(), node.GetLon()
	}

	s.Min, s.Max = ranking[0].TotalCost, ranking[len(ranking)-1].TotalCost
	sum := 0.0
	for _, e := range ranking {
		sum += e.TotalCost
	}
	s.Mean = sum / float64(len(ranking))
	return s, nil
}

func WriteTextReport(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "BEST STARTING POINT ANALYSIS (%s)\n", s.Algorithm)
	fmt.Fprintf(bw, "%s\n\n", separator(50))

	fmt.Fprintf(bw, "GENERAL STATISTICS:\n")
	fmt.Fprintf(bw, "- Points analyzed: %d\n", s.Analyzed)
	if s.Best == nil {
		fmt.Fprintf(bw, "- Best starting point: none, no point reaches another point\n")
		return flush(bw)
	}
	fmt.Fprintf(bw, "- Best starting point: %d\n", s.Best.Source)
	fmt.Fprintf(bw, "- Minimum total distance: %.2f meters\n", s.Best.TotalCost)
	fmt.Fprintf(bw, "- Minimum total distance: %.2f km\n\n", s.Best.TotalCost/1000)

	fmt.Fprintf(bw, "BEST POINT COORDINATES:\n")
	fmt.Fprintf(bw, "- Latitude: %v\n", s.BestLat)
	fmt.Fprintf(bw, "- Longitude: %v\n\n", s.BestLon)

	fmt.Fprintf(bw, "TOP %d POINTS:\n", TEXT_REPORT_TOP)
	writeRanking(bw, s.Ranking, TEXT_REPORT_TOP, true)

	fmt.Fprintf(bw, "\nDETAILED STATISTICS:\n")
	fmt.Fprintf(bw, "- Mean distance: %.2f meters\n", s.Mean)
	fmt.Fprintf(bw, "- Max distance: %.2f meters\n", s.Max)
	fmt.Fprintf(bw, "- Min distance: %.2f meters\n", s.Min)
	return flush(bw)
}

func SaveTextReport(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "create report file %s", path)
	}
	defer f.Close()
	return WriteTextReport(f, s)
}

// WriteConsoleSummary short form printed at the end of an analysis run.
func WriteConsoleSummary(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\nFINAL RESULTS:\n%s\n", separator(40))
	if s.Best == nil {
		fmt.Fprintf(bw, "Could not determine the best starting point.\n")
		return flush(bw)
	}
	fmt.Fprintf(bw, "BEST STARTING POINT: %d\n", s.Best.Source)
	fmt.Fprintf(bw, "Coordinates: (%v, %v)\n", s.BestLat, s.BestLon)
	fmt.Fprintf(bw, "Total distance: %.2f meters (%.2f km)\n", s.Best.TotalCost, s.Best.TotalCost/1000)
	fmt.Fprintf(bw, "\nTOP %d POINTS:\n", CONSOLE_TOP)
	writeRanking(bw, s.Ranking, CONSOLE_TOP, false)
	return flush(bw)
}

func writeRanking(w io.Writer, ranking []analyzer.RankEntry, top int, withKm bool) {
	for i := 0; i < util.MinInt(top, len(ranking)); i++ {
		e := ranking[i]
		if withKm {
			fmt.Fprintf(w, "%d. Point %d: %.2f meters (%.2f km)\n", i+1, e.Source, e.TotalCost, e.TotalCost/1000)
			continue
		}
		fmt.Fprintf(w, "%d. Point %d: %.2f meters\n", i+1, e.Source, e.TotalCost)
	}
}

func separator(n int) string {
	return strings.Repeat("=", n)
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "write report")
	}
	return nil
}

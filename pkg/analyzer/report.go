package analyzer

import (
	"math"
	"time"
)

// DestinationDetail outcome of one source/destination query. Distance is +Inf when the destination is
// unreachable.
type DestinationDetail struct {
	Distance float64
	HopCount int
}

func (d DestinationDetail) Reachable() bool {
	return !math.IsInf(d.Distance, 1)
}

// RouteReport aggregate of every query issued from one source. TotalCost sums only the reachable destinations.
type RouteReport struct {
	Source       int64
	TotalCost    float64
	ValidCount   int
	InvalidCount int
	Elapsed      time.Duration
	Details      map[int64]DestinationDetail
}

func newRouteReport(source int64, keepDetails bool, numDestinations int) *RouteReport {
	r := &RouteReport{Source: source}
	if keepDetails {
		r.Details = make(map[int64]DestinationDetail, numDestinations)
	}
	return r
}

func (r *RouteReport) addReached(dest int64, cost float64, hops int) {
	r.ValidCount++
	r.TotalCost += cost
	if r.Details != nil {
		r.Details[dest] = DestinationDetail{Distance: cost, HopCount: hops}
	}
}

func (r *RouteReport) addUnreached(dest int64) {
	r.InvalidCount++
	if r.Details != nil {
		r.Details[dest] = DestinationDetail{Distance: math.Inf(1)}
	}
}

type RankEntry struct {
	Source    int64
	TotalCost float64
}

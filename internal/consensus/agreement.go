package consensus

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

const earthRadius = 6371000.0 // meters

// SourceResult counts how often a provider supplied a point and how
// often that point sat inside the modal cluster.
type SourceResult struct {
	AgreementCount uint32 `json:"agreement_count"`
	HitCount       uint32 `json:"hit_count"`
}

// Agreement scores how well providers concur on point locations. One
// instance per consensus run; not safe for concurrent use.
type Agreement struct {
	results     map[string]*SourceResult
	threshold   float64
	sampleCount uint32
}

// NewAgreement registers the sources and the agreement distance
// threshold in meters.
func NewAgreement(sources []string, threshold float64) *Agreement {
	results := make(map[string]*SourceResult, len(sources))
	for _, source := range sources {
		results[source] = &SourceResult{}
	}
	return &Agreement{results: results, threshold: threshold}
}

// ProcessPoints scores one sample: the modal single-linkage cluster of
// the supplied points is found and every source inside it credited.
// Fewer than three points cannot agree and are counted as hits only.
func (a *Agreement) ProcessPoints(points map[string]*orb.Point) {
	a.sampleCount++

	labels := make([]string, 0, len(points))
	for source, point := range points {
		if point == nil {
			continue
		}
		labels = append(labels, source)
	}
	sort.Strings(labels)

	coordinates := make([]orb.Point, len(labels))
	for i, source := range labels {
		coordinates[i] = *points[source]
		if r, ok := a.results[source]; ok {
			r.HitCount++
		}
	}

	if len(coordinates) < 3 {
		return
	}

	n := len(coordinates)
	condensed := make([]float64, 0, n*(n-1)/2)
	for row := 0; row < n-1; row++ {
		for col := row + 1; col < n; col++ {
			condensed = append(condensed, haversine(coordinates[row], coordinates[col]))
		}
	}

	steps := singleLinkage(condensed, n)

	var modal []int
	for _, step := range steps {
		if step.dissimilarity >= a.threshold {
			break
		}
		modal = append(modal, step.cluster1, step.cluster2)
	}

	for _, cluster := range modal {
		// internal dendrogram nodes carry labels >= n
		if cluster >= n {
			continue
		}
		if r, ok := a.results[labels[cluster]]; ok {
			r.AgreementCount++
		}
	}
}

// Results exposes the per-source counters.
func (a *Agreement) Results() map[string]*SourceResult {
	return a.results
}

// SampleCount reports how many samples were processed.
func (a *Agreement) SampleCount() uint32 {
	return a.sampleCount
}

type linkageStep struct {
	cluster1      int
	cluster2      int
	dissimilarity float64
	size          int
}

// singleLinkage builds the dendrogram over a condensed upper-triangular
// distance matrix. Observations are labelled 0..n-1; the cluster formed
// by step i is labelled n+i. Single linkage merges in non-decreasing
// dissimilarity order.
func singleLinkage(condensed []float64, n int) []linkageStep {
	dist := func(i, j int) float64 {
		if i > j {
			i, j = j, i
		}
		return condensed[i*n-i*(i+1)/2+(j-i-1)]
	}

	type cluster struct {
		label   int
		members []int
	}

	active := make([]cluster, n)
	for i := 0; i < n; i++ {
		active[i] = cluster{label: i, members: []int{i}}
	}

	steps := make([]linkageStep, 0, n-1)
	for len(active) > 1 {
		bestA, bestB := 0, 1
		bestDist := math.Inf(1)
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				d := math.Inf(1)
				for _, mi := range active[i].members {
					for _, mj := range active[j].members {
						if dm := dist(mi, mj); dm < d {
							d = dm
						}
					}
				}
				if d < bestDist {
					bestDist = d
					bestA, bestB = i, j
				}
			}
		}

		merged := cluster{
			label:   n + len(steps),
			members: append(append([]int{}, active[bestA].members...), active[bestB].members...),
		}
		steps = append(steps, linkageStep{
			cluster1:      active[bestA].label,
			cluster2:      active[bestB].label,
			dissimilarity: bestDist,
			size:          len(merged.members),
		})

		// bestB > bestA; drop both, keep the merge
		active = append(active[:bestB], active[bestB+1:]...)
		active = append(active[:bestA], active[bestA+1:]...)
		active = append(active, merged)
	}

	return steps
}

// haversine is the great-circle distance in meters between two
// (lon, lat) points.
func haversine(p1, p2 orb.Point) float64 {
	lon1, lat1 := p1.Lon()*math.Pi/180, p1.Lat()*math.Pi/180
	lon2, lat2 := p2.Lon()*math.Pi/180, p2.Lat()*math.Pi/180

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	x := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(x)))
}

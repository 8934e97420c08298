package consensus

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/street-conflate/internal/linker"
	"github.com/street-conflate/internal/stream"
	"github.com/street-conflate/internal/types"
)

// CandidateSource hands back stored provider addresses sharing a house
// number near a point, ordered by ascending distance.
type CandidateSource interface {
	NearbyAddresses(ctx context.Context, number string, point orb.Point, radiusDeg float64, source string) ([]*types.Address, error)
}

// Options tunes a consensus run.
type Options struct {
	Sources   []string
	Threshold float64 // agreement distance in meters, 0 => 25
	RadiusDeg float64 // candidate search radius, 0 => 0.01
}

// Run matches every test-set address against each provider's stored
// points (strict mode) and scores provider agreement on the matched
// coordinates.
func Run(ctx context.Context, store CandidateSource, testSet *stream.AddrStream, opts Options, logger *zap.Logger) (map[string]*SourceResult, error) {
	if len(opts.Sources) == 0 {
		return nil, fmt.Errorf("consensus requires at least one source")
	}
	if opts.Threshold <= 0 {
		opts.Threshold = 25
	}
	if opts.RadiusDeg <= 0 {
		opts.RadiusDeg = 0.01
	}

	agreement := NewAgreement(opts.Sources, opts.Threshold)

	for {
		addr, err := testSet.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// one fresh map per sample; sources without a match stay absent
		points := make(map[string]*orb.Point, len(opts.Sources))

		for _, source := range opts.Sources {
			candidates, err := store.NearbyAddresses(ctx, addr.Number, addr.Geom, opts.RadiusDeg, source)
			if err != nil {
				return nil, err
			}

			matched, err := compare(addr, candidates)
			if err != nil {
				return nil, err
			}
			if matched != nil {
				point := matched.Geom
				points[source] = &point
			}
		}

		agreement.ProcessPoints(points)
	}

	logger.Info("consensus complete",
		zap.Uint32("samples", agreement.SampleCount()),
		zap.Int("sources", len(opts.Sources)))
	return agreement.Results(), nil
}

// compare runs the strict linker over the proximal candidates and
// resolves the matched address record.
func compare(addr *types.Address, candidates []*types.Address) (*types.Address, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	primary := linker.NewLink(0, addr.Names)
	potentials := make([]linker.Link, len(candidates))
	for i, candidate := range candidates {
		if candidate.ID == nil {
			return nil, fmt.Errorf("stored candidate missing id")
		}
		potentials[i] = linker.NewLink(*candidate.ID, candidate.Names)
	}

	result, err := linker.Match(primary, potentials, true)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	for _, candidate := range candidates {
		if *candidate.ID == result.ID {
			return candidate, nil
		}
	}
	return nil, nil
}

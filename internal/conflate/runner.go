package conflate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/street-conflate/internal/stream"
	"github.com/street-conflate/internal/types"
)

// CandidateSource hands back persistent addresses sharing a house
// number near a point, ordered by ascending distance.
type CandidateSource interface {
	NearbyAddresses(ctx context.Context, number string, point orb.Point, radiusDeg float64, source string) ([]*types.Address, error)
}

// Options tunes a conflation run.
type Options struct {
	RadiusDeg float64 // candidate search radius, 0 => 0.01
	Generated bool    // include generated synonyms in output
}

// Run compares every incoming address against the persistent set and
// writes the create/modify features to out as line-delimited GeoJSON.
func Run(ctx context.Context, store CandidateSource, addrs *stream.AddrStream, out io.Writer, opts Options, logger *zap.Logger) error {
	if opts.RadiusDeg <= 0 {
		opts.RadiusDeg = 0.01
	}

	enc := json.NewEncoder(out)
	var created, modified int64

	for {
		addr, err := addrs.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		persistents, err := store.NearbyAddresses(ctx, addr.Number, addr.Geom, opts.RadiusDeg, "")
		if err != nil {
			return err
		}

		action, result, err := Decide(addr, persistents)
		if err != nil {
			return err
		}

		switch action {
		case ActionCreate:
			created++
		case ActionModify:
			modified++
		default:
			continue
		}

		if err := enc.Encode(Feature(result, action, opts.Generated)); err != nil {
			return fmt.Errorf("conflate output: %w", err)
		}
	}

	logger.Info("conflation complete",
		zap.Int64("created", created),
		zap.Int64("modified", modified))
	return nil
}

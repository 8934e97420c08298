package store

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.uber.org/zap"

	"github.com/street-conflate/internal/linker"
	"github.com/street-conflate/internal/types"
)

// LinkOptions tunes the address to network link step.
type LinkOptions struct {
	Workers   int     // 0 => one per CPU core
	Window    int64   // id window per transaction, 0 => 5000
	RadiusDeg float64 // candidate search radius, 0 => 0.02
	TopK      int     // nearest candidates per address, 0 => 10
}

func (o *LinkOptions) defaults() {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Window <= 0 {
		o.Window = 5000
	}
	if o.RadiusDeg <= 0 {
		o.RadiusDeg = 0.02
	}
	if o.TopK <= 0 {
		o.TopK = 10
	}
}

// LinkAddresses associates every address with the closest network whose
// name matches, writing netid in per-worker transactions. The id range
// is partitioned so each address belongs to exactly one worker; a
// failed worker fails the run.
func (s *Store) LinkAddresses(ctx context.Context, opts LinkOptions) error {
	opts.defaults()

	count, err := s.MaxAddressID(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	workers := int64(opts.Workers)
	batchExtra := count % workers
	batch := (count - batchExtra) / workers

	group, gctx := errgroup.WithContext(ctx)
	for cpu := int64(0); cpu < workers; cpu++ {
		cpu := cpu
		group.Go(func() error {
			minID := batch * cpu
			maxID := batch*cpu + batch + batchExtra
			if cpu != 0 {
				minID += batchExtra + 1
			}

			s.logger.Debug("link worker started",
				zap.Int64("worker", cpu),
				zap.Int64("min_id", minID),
				zap.Int64("max_id", maxID))

			for it := minID; it <= maxID; it += opts.Window + 1 {
				hi := it + opts.Window
				if hi > maxID {
					hi = maxID
				}
				if err := s.linkWindow(gctx, it, hi, opts); err != nil {
					return fmt.Errorf("link worker %d: %w", cpu, err)
				}
			}
			return nil
		})
	}
	return group.Wait()
}

type linkCandidate struct {
	ID    int64        `json:"id"`
	Names []types.Name `json:"names"`
}

func (s *Store) linkWindow(ctx context.Context, minID, maxID int64, opts LinkOptions) error {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT
			a.id,
			a.names,
			Array_To_Json((Array_Agg(
				JSON_Build_Object('id', n.id, 'names', n.names)
				ORDER BY ST_Distance(n.geom, a.geom)
			))[:%d])
		FROM
			address a
			INNER JOIN network n
			ON ST_DWithin(a.geom, n.geom, $3)
		WHERE a.id >= $1 AND a.id <= $2
		GROUP BY a.id, a.names, a.geom`, opts.TopK),
		minID, maxID, opts.RadiusDeg)
	if err != nil {
		return fmt.Errorf("link query: %w", err)
	}

	type matchRow struct {
		addrID int64
		netID  int64
	}
	var matches []matchRow

	for rows.Next() {
		var (
			id            int64
			namesRaw      []byte
			candidatesRaw []byte
		)
		if err := rows.Scan(&id, &namesRaw, &candidatesRaw); err != nil {
			rows.Close()
			return fmt.Errorf("link scan: %w", err)
		}

		var names []types.Name
		if err := json.Unmarshal(namesRaw, &names); err != nil {
			rows.Close()
			return fmt.Errorf("link names decode: %w", err)
		}
		var candidates []linkCandidate
		if err := json.Unmarshal(candidatesRaw, &candidates); err != nil {
			rows.Close()
			return fmt.Errorf("link candidates decode: %w", err)
		}

		primary := linker.NewLink(id, &types.Names{Names: names})
		potentials := make([]linker.Link, 0, len(candidates))
		for _, candidate := range candidates {
			potentials = append(potentials, linker.NewLink(candidate.ID, &types.Names{Names: candidate.Names}))
		}

		result, err := linker.Match(primary, potentials, false)
		if err != nil {
			rows.Close()
			return fmt.Errorf("link address %d: %w", id, err)
		}
		if result != nil {
			matches = append(matches, matchRow{addrID: id, netID: result.ID})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if len(matches) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("link tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, match := range matches {
		if _, err := tx.Exec(ctx, `UPDATE address SET netid = $1 WHERE id = $2`, match.netID, match.addrID); err != nil {
			return fmt.Errorf("link update: %w", err)
		}
	}
	return tx.Commit(ctx)
}

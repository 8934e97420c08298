// Package store is the PostGIS adapter: feature imports, spatial
// indexing, proximity candidate queries and the parallel address to
// network link step.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/street-conflate/internal/stream"
	"github.com/street-conflate/internal/types"
)

const importBatch = 500

// Store owns a connection pool against the spatial database.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New connects to the database and verifies the link.
func New(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store ping: %w", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// CreateAddressTable drops and recreates the address relation.
func (s *Store) CreateAddressTable(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS POSTGIS`,
		`DROP TABLE IF EXISTS address`,
		`CREATE UNLOGGED TABLE address (
			id BIGINT,
			version BIGINT,
			netid BIGINT,
			names JSONB,
			number TEXT,
			source TEXT,
			output BOOLEAN,
			props JSONB,
			geom GEOMETRY(POINT, 4326)
		)`,
	}
	return s.execAll(ctx, stmts)
}

// CreateNetworkTable drops and recreates the network relation.
func (s *Store) CreateNetworkTable(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS POSTGIS`,
		`DROP TABLE IF EXISTS network`,
		`CREATE UNLOGGED TABLE network (
			id BIGINT,
			names JSONB,
			source TEXT,
			props JSONB,
			geom GEOMETRY(MULTILINESTRING, 4326)
		)`,
	}
	return s.execAll(ctx, stmts)
}

func (s *Store) execAll(ctx context.Context, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("store exec: %w", err)
		}
	}
	return nil
}

// ImportAddresses drains the stream into the address table.
func (s *Store) ImportAddresses(ctx context.Context, addrs *stream.AddrStream) (int64, error) {
	var count int64
	batch := &pgx.Batch{}

	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("address import: %w", err)
		}
		batch = &pgx.Batch{}
		return nil
	}

	for {
		addr, err := addrs.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}

		names, err := json.Marshal(addr.Names.Names)
		if err != nil {
			return count, fmt.Errorf("names encode: %w", err)
		}
		props, err := json.Marshal(addr.Props)
		if err != nil {
			return count, fmt.Errorf("props encode: %w", err)
		}

		batch.Queue(`
			INSERT INTO address (id, version, names, number, source, output, props, geom)
			VALUES ($1, $2, $3, $4, $5, $6, $7, ST_SetSRID(ST_MakePoint($8, $9), 4326))`,
			addr.ID, addr.Version, names, addr.Number, addr.Source,
			addr.Output, props, addr.Geom.Lon(), addr.Geom.Lat(),
		)
		count++

		if batch.Len() >= importBatch {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}

	if err := flush(); err != nil {
		return count, err
	}
	s.logger.Info("addresses imported", zap.Int64("count", count))
	return count, nil
}

// ImportNetworks drains the stream into the network table.
func (s *Store) ImportNetworks(ctx context.Context, nets *stream.NetStream) (int64, error) {
	var count int64
	batch := &pgx.Batch{}

	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("network import: %w", err)
		}
		batch = &pgx.Batch{}
		return nil
	}

	for {
		net, err := nets.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}

		names, err := json.Marshal(net.Names.Names)
		if err != nil {
			return count, fmt.Errorf("names encode: %w", err)
		}
		props, err := json.Marshal(net.Props)
		if err != nil {
			return count, fmt.Errorf("props encode: %w", err)
		}
		geom, err := geojson.NewGeometry(net.Geom).MarshalJSON()
		if err != nil {
			return count, fmt.Errorf("geom encode: %w", err)
		}

		batch.Queue(`
			INSERT INTO network (id, names, source, props, geom)
			VALUES ($1, $2, $3, $4, ST_SetSRID(ST_GeomFromGeoJSON($5), 4326))`,
			net.ID, names, net.Source, props, string(geom),
		)
		count++

		if batch.Len() >= importBatch {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}

	if err := flush(); err != nil {
		return count, err
	}
	s.logger.Info("networks imported", zap.Int64("count", count))
	return count, nil
}

// SeqAddressIDs renumbers addresses with a fresh sequence.
func (s *Store) SeqAddressIDs(ctx context.Context) error {
	return s.execAll(ctx, []string{
		`DROP SEQUENCE IF EXISTS address_seq`,
		`CREATE SEQUENCE address_seq`,
		`UPDATE address SET id = nextval('address_seq')`,
	})
}

// SeqNetworkIDs renumbers networks with a fresh sequence.
func (s *Store) SeqNetworkIDs(ctx context.Context) error {
	return s.execAll(ctx, []string{
		`DROP SEQUENCE IF EXISTS network_seq`,
		`CREATE SEQUENCE network_seq`,
		`UPDATE network SET id = nextval('network_seq')`,
	})
}

// IndexAddresses builds the id and spatial indexes.
func (s *Store) IndexAddresses(ctx context.Context) error {
	return s.execAll(ctx, []string{
		`CREATE INDEX IF NOT EXISTS address_idx ON address (id)`,
		`CREATE INDEX IF NOT EXISTS address_gix ON address USING GIST (geom)`,
		`ANALYZE address`,
	})
}

// IndexNetworks builds the id and spatial indexes.
func (s *Store) IndexNetworks(ctx context.Context) error {
	return s.execAll(ctx, []string{
		`CREATE INDEX IF NOT EXISTS network_idx ON network (id)`,
		`CREATE INDEX IF NOT EXISTS network_gix ON network USING GIST (geom)`,
		`ANALYZE network`,
	})
}

// MaxAddressID returns the highest address id, 0 on an empty table.
func (s *Store) MaxAddressID(ctx context.Context) (int64, error) {
	var max *int64
	if err := s.pool.QueryRow(ctx, `SELECT max(id) FROM address`).Scan(&max); err != nil {
		return 0, fmt.Errorf("max address id: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// NearbyAddresses returns the stored addresses sharing the house number
// within radiusDeg of the point, ordered by ascending distance. Source
// narrows the match to one provider when non-empty.
func (s *Store) NearbyAddresses(ctx context.Context, number string, point orb.Point, radiusDeg float64, source string) ([]*types.Address, error) {
	query := `
		SELECT id, version, names, number, source, output, props, ST_X(geom), ST_Y(geom)
		FROM address
		WHERE number = $1
		  AND ST_DWithin(ST_SetSRID(ST_Point($2, $3), 4326), geom, $4)
		  AND ($5 = '' OR source = $5)
		ORDER BY ST_Distance(ST_SetSRID(ST_Point($2, $3), 4326), geom)`

	rows, err := s.pool.Query(ctx, query, number, point.Lon(), point.Lat(), radiusDeg, source)
	if err != nil {
		return nil, fmt.Errorf("nearby addresses: %w", err)
	}
	defer rows.Close()

	var out []*types.Address
	for rows.Next() {
		addr, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, rows.Err()
}

func scanAddress(rows pgx.Rows) (*types.Address, error) {
	var (
		id       *int64
		version  int64
		namesRaw []byte
		number   string
		source   *string
		output   bool
		propsRaw []byte
		lon, lat float64
	)
	if err := rows.Scan(&id, &version, &namesRaw, &number, &source, &output, &propsRaw, &lon, &lat); err != nil {
		return nil, fmt.Errorf("address scan: %w", err)
	}

	var names []types.Name
	if err := json.Unmarshal(namesRaw, &names); err != nil {
		return nil, fmt.Errorf("names decode: %w", err)
	}
	var props map[string]interface{}
	if err := json.Unmarshal(propsRaw, &props); err != nil {
		return nil, fmt.Errorf("props decode: %w", err)
	}

	addr := &types.Address{
		ID:          id,
		Version:     version,
		Number:      number,
		Names:       &types.Names{Names: names},
		Output:      output,
		Interpolate: true,
		Props:       props,
		Geom:        orb.Point{lon, lat},
	}
	if source != nil {
		addr.Source = *source
	}
	return addr, nil
}

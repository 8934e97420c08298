// Package stream reads line-delimited GeoJSON feature streams.
// Malformed features are rejected one at a time: logged, written to the
// optional error sink, and skipped.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/street-conflate/internal/types"
)

// GeoStream yields one GeoJSON feature per input line.
type GeoStream struct {
	scanner *bufio.Scanner
}

// NewGeoStream wraps a reader of newline-delimited GeoJSON.
func NewGeoStream(r io.Reader) *GeoStream {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &GeoStream{scanner: scanner}
}

// Next returns the next feature, io.EOF at end of stream, or a parse
// error for the offending line.
func (g *GeoStream) Next() (*geojson.Feature, error) {
	for g.scanner.Scan() {
		line := strings.TrimSpace(strings.Trim(g.scanner.Text(), "\x1e"))
		if line == "" {
			continue
		}
		feat, err := geojson.UnmarshalFeature([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("not a GeoJSON feature: %w", err)
		}
		return feat, nil
	}
	if err := g.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// AddrStream converts a feature stream into validated addresses.
type AddrStream struct {
	input  *GeoStream
	ctx    *types.Context
	errors io.Writer
	logger *zap.Logger
}

// NewAddrStream wires an address stream; errors may be nil to discard
// per-feature rejections.
func NewAddrStream(input *GeoStream, ctx *types.Context, errors io.Writer, logger *zap.Logger) *AddrStream {
	return &AddrStream{input: input, ctx: ctx, errors: errors, logger: logger}
}

// Next returns the next valid address or io.EOF. Invalid features are
// skipped.
func (s *AddrStream) Next() (*types.Address, error) {
	for {
		feat, err := s.input.Next()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			s.reject(err)
			continue
		}

		addr, err := types.AddressFromFeature(feat, s.ctx)
		if err != nil {
			s.reject(err)
			continue
		}
		return addr, nil
	}
}

func (s *AddrStream) reject(err error) {
	s.logger.Debug("address feature rejected", zap.Error(err))
	if s.errors != nil {
		fmt.Fprintf(s.errors, "%s\n", err)
	}
}

// NetStream converts a feature stream into validated networks.
type NetStream struct {
	input  *GeoStream
	ctx    *types.Context
	errors io.Writer
	logger *zap.Logger
}

// NewNetStream wires a network stream; errors may be nil.
func NewNetStream(input *GeoStream, ctx *types.Context, errors io.Writer, logger *zap.Logger) *NetStream {
	return &NetStream{input: input, ctx: ctx, errors: errors, logger: logger}
}

// Next returns the next valid network or io.EOF. Invalid features are
// skipped.
func (s *NetStream) Next() (*types.Network, error) {
	for {
		feat, err := s.input.Next()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			s.reject(err)
			continue
		}

		net, err := types.NetworkFromFeature(feat, s.ctx)
		if err != nil {
			s.reject(err)
			continue
		}
		return net, nil
	}
}

func (s *NetStream) reject(err error) {
	s.logger.Debug("network feature rejected", zap.Error(err))
	if s.errors != nil {
		fmt.Fprintf(s.errors, "%s\n", err)
	}
}

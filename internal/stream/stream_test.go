package stream

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/street-conflate/internal/text"
	"github.com/street-conflate/internal/types"
)

func testContext(t *testing.T) *types.Context {
	t.Helper()
	tokens, err := text.Generate([]string{"en"})
	if err != nil {
		t.Fatal(err)
	}
	return types.NewContext("us", "", tokens)
}

func TestAddrStream(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[-77.0,38.9]},"properties":{"number":"100","street":"Main Street"}}`,
		``,
		`not json`,
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[-77.0,38.9]},"properties":{"number":"bogus number","street":"Main Street"}}`,
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[-77.1,38.8]},"properties":{"number":"200 B","street":"Elm Avenue"}}`,
	}, "\n")

	var sink bytes.Buffer
	addrs := NewAddrStream(NewGeoStream(strings.NewReader(input)), testContext(t), &sink, zap.NewNop())

	first, err := addrs.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first.Number != "100" {
		t.Errorf("number = %q", first.Number)
	}

	second, err := addrs.Next()
	if err != nil {
		t.Fatal(err)
	}
	if second.Number != "200b" {
		t.Errorf("number = %q", second.Number)
	}

	if _, err := addrs.Next(); err != io.EOF {
		t.Errorf("err = %v, want EOF", err)
	}

	// two rejected features landed in the error sink
	rejected := strings.Count(sink.String(), "\n")
	if rejected != 2 {
		t.Errorf("error sink carries %d lines, want 2: %q", rejected, sink.String())
	}
}

func TestNetStream(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"properties":{"street":"Main Street"}}`,
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},"properties":{"street":"Main Street"}}`,
	}, "\n")

	nets := NewNetStream(NewGeoStream(strings.NewReader(input)), testContext(t), nil, zap.NewNop())

	net, err := nets.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got := net.Names.Names[0].TokenizedString(); got != "main st" {
		t.Errorf("tokenized = %q", got)
	}

	if _, err := nets.Next(); err != io.EOF {
		t.Errorf("err = %v, want EOF", err)
	}
}

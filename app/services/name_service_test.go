package services

import (
	"testing"

	"go.uber.org/zap"

	"github.com/street-conflate/app/requests"
)

func newService(t *testing.T) *NameService {
	t.Helper()
	s, err := NewNameService(64, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestServiceTokenize(t *testing.T) {
	s := newService(t)

	tokens, err := s.Tokenize(requests.TokenizeRequest{
		Name:    "Saint Peter Street",
		Context: requests.ContextRequest{Country: "us", Languages: []string{"en"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 || tokens[0].Token != "st" || tokens[2].Token != "st" {
		t.Errorf("tokens = %+v", tokens)
	}

	// memoized second call returns the same value
	again, err := s.Tokenize(requests.TokenizeRequest{
		Name:    "Saint Peter Street",
		Context: requests.ContextRequest{Country: "us", Languages: []string{"en"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(tokens) {
		t.Errorf("memoized call diverged: %+v", again)
	}
}

func TestServiceTokenizeUnknownLanguage(t *testing.T) {
	s := newService(t)

	_, err := s.Tokenize(requests.TokenizeRequest{
		Name:    "Main Street",
		Context: requests.ContextRequest{Country: "us", Languages: []string{"zz"}},
	})
	if err == nil {
		t.Error("unknown language must fail")
	}
}

func TestServiceTitlecase(t *testing.T) {
	s := newService(t)

	got, err := s.Titlecase(requests.TitlecaseRequest{
		Name:    "main st ne",
		Context: requests.ContextRequest{Country: "us"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Main St NE" {
		t.Errorf("got %q", got)
	}
}

func TestServiceMatch(t *testing.T) {
	s := newService(t)

	result, err := s.Match(requests.MatchRequest{
		Primary: []string{"Main Street"},
		Candidates: []requests.MatchCandidate{
			{ID: 2, Names: []string{"Main Street"}},
		},
		Context: requests.ContextRequest{Country: "us", Languages: []string{"en"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.ID != 2 || result.Score != 100.0 {
		t.Errorf("result = %+v", result)
	}

	result, err = s.Match(requests.MatchRequest{
		Primary: []string{"Main Street"},
		Candidates: []requests.MatchCandidate{
			{ID: 2, Names: []string{"Anne Boulevard"}},
		},
		Context: requests.ContextRequest{Country: "us", Languages: []string{"en"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Errorf("result = %+v, want no match", result)
	}
}

func TestServiceMatchDuplicateIDs(t *testing.T) {
	s := newService(t)

	_, err := s.Match(requests.MatchRequest{
		Primary: []string{"Main Street"},
		Candidates: []requests.MatchCandidate{
			{ID: 2, Names: []string{"Main Street"}},
			{ID: 2, Names: []string{"Elm Avenue"}},
		},
		Context: requests.ContextRequest{Country: "us", Languages: []string{"en"}},
	})
	if err == nil {
		t.Error("duplicate candidate ids must fail")
	}
}

func TestServiceFingerprint(t *testing.T) {
	s := newService(t)

	a := requests.MatchRequest{Primary: []string{"Main Street"}}
	b := requests.MatchRequest{Primary: []string{"Elm Avenue"}}

	if s.Fingerprint(a) == s.Fingerprint(b) {
		t.Error("different requests must not collide")
	}
	if s.Fingerprint(a) != s.Fingerprint(a) {
		t.Error("fingerprint must be stable")
	}
}

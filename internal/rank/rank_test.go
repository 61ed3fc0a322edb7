package rank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nao1215/looter/internal/fetcher"
)

func TestExpandNum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{in: "61.8K", want: 61800},
		{in: "61.8M", want: 61800000},
		{in: "61.8", want: 61.8},
		{in: "61", want: 61},
		{in: "1.2B", want: 1200000000},
		{in: "3k", want: 3000},
		{in: " 1,234 ", want: 1234},
		{in: "2.5 M", want: 2500000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ExpandNum(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandNum(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandNum_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "K", "abc", "12Q", "1.2.3", "NaN", "Inf", "-infinity", "infK", "1e400"} {
		if _, err := ExpandNum(in); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("ExpandNum(%q): expected ErrInvalidNumber, got %v", in, err)
		}
	}
}

const alexaXML = `<?xml version="1.0" encoding="UTF-8"?>
<ALEXA VER="0.9" URL="konachan.com/" HOME="0" AID="=" IDN="konachan.com/">
<SD><POPULARITY URL="konachan.com/" TEXT="8241" SOURCE="panel"/>
<REACH RANK="7065"/><RANK DELTA="+1011"/></SD></ALEXA>`

func TestParse(t *testing.T) {
	t.Parallel()

	r, err := Parse("konachan.com", alexaXML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Reach != 7065 || r.Popularity != 8241 || r.Site != "konachan.com" {
		t.Errorf("unexpected rank %+v", r)
	}

	if _, err := Parse("x", "<ALEXA></ALEXA>"); !errors.Is(err, ErrRankNotFound) {
		t.Errorf("expected ErrRankNotFound, got %v", err)
	}
}

func TestClientLookup(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cli") != "10" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("url") != "konachan.com" {
			_, _ = w.Write([]byte("<ALEXA/>"))
			return
		}
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = w.Write([]byte(alexaXML))
	}))
	t.Cleanup(server.Close)

	client := NewClient(
		fetcher.NewClient(fetcher.WithTimeout(5*time.Second)),
		WithEndpoint(server.URL+"/data?cli=10&dat=snbamz"),
	)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		r, err := client.Lookup(context.Background(), "konachan.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Reach != 7065 || r.Popularity != 8241 {
			t.Errorf("unexpected rank %+v", r)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := client.Lookup(context.Background(), "unknown.example")
		if !errors.Is(err, ErrRankNotFound) {
			t.Errorf("expected ErrRankNotFound, got %v", err)
		}
	})
}

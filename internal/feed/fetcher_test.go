package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="utf-8"?>
<stations>
  <location id="Sydney">
    <name>syd</name>
    <index>7.5</index>
    <time>10:00 AM</time>
    <date>30/08/2026</date>
    <status>ok</status>
  </location>
  <location id="Melbourne">
    <name>mel</name>
    <index>N/A</index>
    <time>10:00 AM</time>
    <date>30/08/2026</date>
    <status>maintenance</status>
  </location>
  <location id="Brisbane">
    <name>bri</name>
    <index>9.1</index>
    <time>10:00 AM</time>
    <date>30/08/2026</date>
    <status>ok</status>
  </location>
</stations>`

func TestFetchParsesReadings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleXML))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second)
	readings, err := f.Fetch(context.Background())
	require.NoError(t, err)

	// The N/A reading is dropped, the ones after it survive.
	require.Len(t, readings, 2)
	assert.Equal(t, "Sydney", readings[0].StationID)
	assert.Equal(t, "syd", readings[0].ShortName)
	assert.Equal(t, 7.5, readings[0].UVIndex)
	assert.Equal(t, "10:00 AM", readings[0].Time)
	assert.Equal(t, "30/08/2026", readings[0].Date)
	assert.Equal(t, "ok", readings[0].Status)
	assert.Equal(t, "Brisbane", readings[1].StationID)
	assert.Equal(t, 9.1, readings[1].UVIndex)
}

func TestFetchSingleLocation(t *testing.T) {
	single := `<stations><location id="Perth"><name>per</name><index>4.2</index></location></stations>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(single))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second)
	readings, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "Perth", readings[0].StationID)
	assert.Equal(t, 4.2, readings[0].UVIndex)
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second)
	_, err := f.Fetch(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestFetchMalformedXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not xml at all"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second)
	_, err := f.Fetch(context.Background())

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestParseUVIndex(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"7.5", 7.5, false},
		{" 0 ", 0, false},
		{"", 0, false},
		{"N/A", 0, true},
		{"-1.2", 0, true},
		{"NaN", 0, true},
		{"+Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := parseUVIndex(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "raw=%q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

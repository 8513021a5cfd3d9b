package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-strategy-lab/internal/domain"
)

const sampleCSV = `Date,Open,High,Low,Close,Volume
2021-03-01,9.8,10.2,9.7,10,1000
2021-03-02,10,10.1,8.9,9,1200
2021-03-03,9,11.3,9,11,900
`

func TestClient_DailyCloses(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"s":  r.URL.Query().Get("s"),
			"i":  r.URL.Query().Get("i"),
			"d1": r.URL.Query().Get("d1"),
			"d2": r.URL.Query().Get("d2"),
		}
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	window := domain.DateWindow{
		Start: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	points, err := client.DailyCloses(context.Background(), "AMD.US", window)
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Symbol is lowercased, window bounds are passed through
	assert.Equal(t, "amd.us", gotQuery["s"])
	assert.Equal(t, "d", gotQuery["i"])
	assert.Equal(t, "20210301", gotQuery["d1"])
	assert.Equal(t, "20210331", gotQuery["d2"])

	assert.Equal(t, "amd.us", points[0].Symbol)
	assert.Equal(t, "10", points[0].Close.String())
}

func TestClient_EmptySymbol(t *testing.T) {
	client := NewClient("http://localhost:0")
	_, err := client.DailyCloses(context.Background(), "  ", domain.DateWindow{})
	assert.ErrorIs(t, err, ErrEmptySymbol)
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.DailyCloses(context.Background(), "amd.us", domain.DateWindow{})
	assert.Error(t, err)
}

func TestClient_NoRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Date,Open,High,Low,Close,Volume\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.DailyCloses(context.Background(), "amd.us", domain.DateWindow{})
	assert.ErrorIs(t, err, ErrNoData)
}

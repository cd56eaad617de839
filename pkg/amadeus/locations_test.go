package amadeus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocation_IATACodeSkipsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())

	codes, err := client.ResolveLocation(context.Background(), " fco ")
	require.NoError(t, err)
	assert.Equal(t, LocationCode{CityCode: "FCO", AirportCode: "FCO"}, codes)
}

func TestResolveLocation_PrefersCityAndAirportEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			writeToken(w, "tok", 1799)
			return
		}
		assert.Equal(t, "Rome", r.URL.Query().Get("keyword"))
		assert.Equal(t, "CITY,AIRPORT", r.URL.Query().Get("subType"))
		fmt.Fprint(w, `{"data":[
			{"subType":"AIRPORT","iataCode":"FCO","name":"Fiumicino"},
			{"subType":"CITY","iataCode":"ROM","name":"Rome"},
			{"subType":"CITY","iataCode":"XXX","name":"Other"}
		]}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())

	codes, err := client.ResolveLocation(context.Background(), "Rome")
	require.NoError(t, err)
	assert.Equal(t, "ROM", codes.CityCode)
	assert.Equal(t, "FCO", codes.AirportCode)
}

func TestResolveLocation_FallsBackToFirstResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			writeToken(w, "tok", 1799)
			return
		}
		fmt.Fprint(w, `{"data":[{"subType":"AIRPORT","iataCode":"ISB","name":"Islamabad"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())

	codes, err := client.ResolveLocation(context.Background(), "Islamabad")
	require.NoError(t, err)
	assert.Equal(t, "ISB", codes.CityCode)
	assert.Equal(t, "ISB", codes.AirportCode)
}

func TestResolveLocation_NoMatchIsResolutionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			writeToken(w, "tok", 1799)
			return
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "id", "secret", testLogger())

	_, err := client.ResolveLocation(context.Background(), "Atlantis")
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "Atlantis", resErr.Keyword)
}

func TestIsIATACode(t *testing.T) {
	assert.True(t, isIATACode("LHE"))
	assert.False(t, isIATACode("lhe"))
	assert.False(t, isIATACode("LHEX"))
	assert.False(t, isIATACode("L1E"))
	assert.False(t, isIATACode(""))
}

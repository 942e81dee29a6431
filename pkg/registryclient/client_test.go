package registryclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestClient_LoginKeepsToken(t *testing.T) {
	var gotAuth string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			var body loginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "maria", body.Username)
			w.Write([]byte(`{"token":"tok","username":"maria","lang":"EN"}`))
		case "/drugs/drugs":
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, "asp", r.URL.Query().Get("drname"))
			assert.Equal(t, "startsWith", r.URL.Query().Get("drnameMatch"))
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			assert.False(t, r.URL.Query().Has("offset"))
			w.Write([]byte(`{"results":[{"drugid":"D1","drname":"ASPIRIN"}],"total":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	res, err := c.Login(context.Background(), "maria", "pw", "en")
	require.NoError(t, err)
	assert.Equal(t, "EN", res.Lang)
	assert.Equal(t, "tok", c.Token())

	page, err := c.SearchDrugs(context.Background(), DrugQuery{DrName: "asp", StartsWith: true, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "ASPIRIN", page.Results[0].DrName)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestClient_LookupReadsEnvelope(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pltab", r.URL.Path)
		assert.Equal(t, "FORM", r.URL.Query().Get("column"))
		w.Write([]byte(`{"results":[{"column":"FORM","code":"TAB","language":"EL","longText":"Δισκίο"}],"total":1}`))
	})

	entries, err := c.Lookup(context.Background(), "FORM", "EL")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "TAB", entries[0].Code)
	assert.Equal(t, "Δισκίο", *entries[0].LongText)
}

func TestClient_APIError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/pltab":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Invalid column: BOGUS"}`))
		case "/company":
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Forbidden"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>bad gateway</html>`))
		}
	})

	_, err := c.Lookup(context.Background(), "BOGUS", "EL")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid column: BOGUS", apiErr.Message)

	_, err = c.SearchCompanies(context.Background(), CompanyQuery{CoName: "pharma"})
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Unauthorized())

	_, err = c.PriceList(context.Background(), "P1")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_PriceList(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pcpricelist/P 1", r.URL.Path)
		w.Write([]byte(`{"results":[{"datefrom":"2024-03-01","dateuntil":null,"retailPrice":"12.40","producerPrice":null,"vat":"6","misyfa":true,"negative":false,"status":"ACTIVE"}],"total":1,"flags":{"misyfa":true,"negative":false,"rule":"leadingRow","sourceDateFrom":"2024-03-01","ambiguous":false}}`))
	})

	pl, err := c.PriceList(context.Background(), "P 1")
	require.NoError(t, err)
	require.Len(t, pl.Results, 1)
	assert.Equal(t, "12.4", pl.Results[0].RetailPrice.Decimal.String())
	assert.False(t, pl.Results[0].ProducerPrice.Valid)
	assert.Nil(t, pl.Results[0].DateUntil)
	assert.Equal(t, "leadingRow", pl.Flags.Rule)
}

func TestAutocompleter_Gate(t *testing.T) {
	calls := 0
	a := NewAutocompleter(func(_ context.Context, q string) ([]string, error) {
		calls++
		return []string{q}, nil
	})

	res, err := a.Lookup(context.Background(), " as ")
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Zero(t, calls)

	res, err = a.Lookup(context.Background(), "ασπ")
	require.NoError(t, err)
	assert.Equal(t, []string{"ασπ"}, res)
	assert.Equal(t, 1, calls)
}

func TestAutocompleter_DropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	a := NewAutocompleter(func(_ context.Context, q string) ([]string, error) {
		if q == "asp" {
			close(started)
			<-release
		}
		return []string{q}, nil
	})

	type result struct {
		res []string
		err error
	}
	first := make(chan result, 1)
	go func() {
		res, err := a.Lookup(context.Background(), "asp")
		first <- result{res, err}
	}()

	<-started
	res, err := a.Lookup(context.Background(), "aspi")
	require.NoError(t, err)
	assert.Equal(t, []string{"aspi"}, res)

	close(release)
	r := <-first
	assert.True(t, errors.Is(r.err, ErrStale))
	assert.Nil(t, r.res)
}

func TestAutocompleter_ErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	a := NewAutocompleter(func(context.Context, string) ([]string, error) { return nil, boom })

	_, err := a.Lookup(context.Background(), "aspirin")
	assert.ErrorIs(t, err, boom)
}

func TestClient_DrugAutocompleter(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drugs/dr/autocomplete", r.URL.Path)
		w.Write([]byte(`{"results":[{"drname":"ASPIRIN"},{"drname":"ASPIRIN C"}],"total":2}`))
	})

	names, err := c.DrugAutocompleter().Lookup(context.Background(), "asp")
	require.NoError(t, err)
	assert.Equal(t, []string{"ASPIRIN", "ASPIRIN C"}, names)
}

func TestSortPage(t *testing.T) {
	rows := []DrugRow{
		{DrugID: "1", DrName: "B"},
		{DrugID: "2", DrName: "A"},
		{DrugID: "3", DrName: "B"},
	}
	byName := func(r DrugRow) string { return r.DrName }

	SortPage(rows, byName, false)
	assert.Equal(t, []string{"2", "1", "3"}, ids(rows))

	SortPage(rows, byName, true)
	assert.Equal(t, []string{"1", "3", "2"}, ids(rows))
}

func ids(rows []DrugRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.DrugID
	}
	return out
}

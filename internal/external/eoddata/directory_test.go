package eoddata

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantline/eodsync/pkg/config"
	"github.com/quantline/eodsync/pkg/logger"
)

const sampleDirectoryHTML = `
	<html>
	<body>
	<table class="quotes">
		<tr><th>Code</th><th>Name</th><th>High</th><th>Low</th></tr>
		<tr class="ro">
			<td><a href="/stockquote/NYSE/A.htm">A</a></td>
			<td>Agilent Technologies Inc</td>
			<td>148.12</td>
			<td>145.30</td>
		</tr>
		<tr class="re">
			<td><a href="/stockquote/NYSE/AA.htm">AA</a></td>
			<td>Alcoa Corp</td>
			<td>31.07</td>
			<td>30.11</td>
		</tr>
		<tr class="ro">
			<td></td>
			<td>row without a symbol</td>
		</tr>
	</table>
	</body>
	</html>
`

func TestParseListings(t *testing.T) {
	listings, err := parseListings(sampleDirectoryHTML)
	require.NoError(t, err)

	require.Len(t, listings, 2)
	assert.Equal(t, Listing{Symbol: "A", Name: "Agilent Technologies Inc"}, listings[0])
	assert.Equal(t, Listing{Symbol: "AA", Name: "Alcoa Corp"}, listings[1])
}

func TestParseListingsNoTable(t *testing.T) {
	listings, err := parseListings("<html><body><p>maintenance</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestFetchListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/NYSE.htm", r.URL.Path)
		io.WriteString(w, sampleDirectoryHTML)
	}))
	defer server.Close()

	client := NewClient(config.DirectoryConfig{BaseURL: server.URL}, logger.NewWithWriter(io.Discard))

	listings, err := client.FetchListings(context.Background(), "NYSE")
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestFetchListingsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(config.DirectoryConfig{BaseURL: server.URL}, logger.NewWithWriter(io.Discard))

	_, err := client.FetchListings(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

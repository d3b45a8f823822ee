package europepmc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleResponse = `{
  "hitCount": 2,
  "resultList": {"result": [
    {"pmid": "123", "doi": "10.1000/sleep", "title": "Sleep and memory.", "authorString": "Doe J, Smith A.",
     "journalTitle": "Nature Neuroscience", "pubYear": "2021",
     "fullTextUrlList": {"fullTextUrl": [
       {"availabilityCode": "S", "documentStyle": "html", "url": "https://example.org/html"},
       {"availabilityCode": "OA", "documentStyle": "pdf", "url": "https://example.org/a.pdf"}]}},
    {"pmid": "456", "title": "Preprint on naps", "authorString": "",
     "journalInfo": {"journal": {"title": "bioRxiv"}}, "firstPublicationDate": "2019-05-02"}
  ]}
}`

func TestSearchMapsArticles(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("query")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	refs, err := NewClient(srv.URL, zap.NewNop()).Search(context.Background(), "sleep memory", 5)
	require.NoError(t, err)
	assert.Equal(t, "sleep memory", query)
	require.Len(t, refs, 2)

	first := refs[0]
	assert.Equal(t, "Sleep and memory", first.Title)
	assert.Equal(t, []string{"Doe J", "Smith A"}, []string(first.Authors))
	require.NotNil(t, first.Year)
	assert.Equal(t, 2021, *first.Year)
	assert.Equal(t, "Nature Neuroscience", first.Source)
	assert.Equal(t, "https://example.org/a.pdf", first.URL)

	second := refs[1]
	assert.Empty(t, second.Authors)
	assert.Equal(t, "bioRxiv", second.Source)
	require.NotNil(t, second.Year)
	assert.Equal(t, 2019, *second.Year)
	assert.Equal(t, "https://europepmc.org/article/MED/456", second.URL)
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, zap.NewNop()).Search(context.Background(), "x", 0)
	assert.Error(t, err)
}

// Package europepmc sucht bibliografische Metadaten, um Literatureinträge vorzubefüllen.
package europepmc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"thesis-hand/models"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

const maxResults = 25

// Client fragt die Europe PMC REST-API ab.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
}

// Name gibt den Namen der Quelle zurück.
func (c *Client) Name() string {
	return "europepmc"
}

// Search liefert bis zu limit Treffer als ungespeicherte Literatureinträge.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]models.Reference, error) {
	if limit <= 0 || limit > maxResults {
		limit = maxResults
	}
	log := c.logger.With(zap.String("term", term))

	q := url.Values{}
	q.Set("query", term)
	q.Set("format", "json")
	q.Set("resultType", "core")
	q.Set("pageSize", fmt.Sprint(limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("europepmc: unexpected status %d", resp.StatusCode)
	}

	var searchResponse SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("europepmc: decode response: %w", err)
	}

	refs := make([]models.Reference, 0, len(searchResponse.ResultList.Result))
	for i := range searchResponse.ResultList.Result {
		refs = append(refs, mapArticle(&searchResponse.ResultList.Result[i]))
	}
	log.Debug("Europe PMC search finished", zap.Int("hits", searchResponse.HitCount), zap.Int("returned", len(refs)))
	return refs, nil
}

// mapArticle konvertiert einen Treffer in einen Literatureintrag ohne Thesis-Zuordnung.
func mapArticle(a *Article) models.Reference {
	ref := models.Reference{
		Title:   strings.TrimSuffix(strings.TrimSpace(a.Title), "."),
		Authors: a.authors(),
		Year:    a.year(),
		Source:  a.JournalTitle,
		DOI:     a.DOI,
		Tags:    []string{},
	}
	if ref.Source == "" {
		ref.Source = a.JournalInfo.Journal.Title
	}

	// Open-Access-PDF bevorzugen, sonst DOI, sonst die Europe PMC Seite
	for _, u := range a.FullTextURLList.FullTextURL {
		if u.DocumentStyle == "pdf" && u.AvailabilityCode == "OA" {
			ref.URL = u.URL
			break
		}
	}
	switch {
	case ref.URL != "":
	case a.DOI != "":
		ref.URL = "https://doi.org/" + a.DOI
	case a.PMID != "":
		ref.URL = fmt.Sprintf("https://europepmc.org/article/MED/%s", a.PMID)
	}
	return ref
}

package web

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caselens/caselens/core"
	"github.com/caselens/caselens/pdftext"
	"github.com/caselens/caselens/resultsview"
)

// searchResult is one entry in the search response.
type searchResult struct {
	Case     string  `json:"case"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"`
	Preview  string  `json:"preview"`
	FullText string  `json:"full_text"`
}

// searchResponse is the body of a successful search.
type searchResponse struct {
	Results  []searchResult `json:"results"`
	Category string         `json:"category"`
	Total    int            `json:"total"`
}

// handleSearch ranks cases against query text or an uploaded PDF.
// Exactly one of the "text" form field and the "file" upload must be
// present.
func (s *Server) handleSearch(c *gin.Context) {
	text := strings.TrimSpace(c.PostForm("text"))
	file, err := c.FormFile("file")
	hasFile := err == nil && file != nil

	switch {
	case text == "" && !hasFile:
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide query text or a PDF file"})
		return
	case text != "" && hasFile:
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide query text or a PDF file, not both"})
		return
	}

	query := text
	if hasFile {
		query, err = s.queryFromUpload(c)
		if err != nil {
			return // response already written
		}
	}

	results, err := s.searcher.FindSimilar(c.Request.Context(), query, s.maxHits)
	if err != nil {
		if errors.Is(err, core.ErrQueryTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("search failed", "id", c.GetString("request_id"), "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "search is temporarily unavailable"})
		return
	}

	category := s.searcher.ClassifyQuery(c.Request.Context(), query)

	c.JSON(http.StatusOK, buildSearchResponse(results, category))
}

// buildSearchResponse maps ranked hits onto the response body. Hits
// without a case record are dropped before conversion so every entry
// and its full text come from the same hit.
func buildSearchResponse(results []*core.SearchResult, category string) searchResponse {
	valid := make([]*core.SearchResult, 0, len(results))
	for _, hit := range results {
		if hit != nil && hit.Case != nil {
			valid = append(valid, hit)
		}
	}

	viewResults := resultsview.FromSearchResults(valid)
	body := searchResponse{
		Results:  make([]searchResult, len(viewResults)),
		Category: category,
		Total:    len(viewResults),
	}
	for i, r := range viewResults {
		body.Results[i] = searchResult{
			Case:     r.CaseLabel,
			Score:    r.Score,
			Rank:     r.OriginalRank,
			Preview:  r.PreviewText,
			FullText: valid[i].Case.Text,
		}
	}
	return body
}

// queryFromUpload validates the uploaded PDF and extracts its text.
// Writes the error response itself and returns a non-nil error when the
// upload is unusable.
func (s *Server) queryFromUpload(c *gin.Context) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload"})
		return "", err
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are supported"})
		return "", pdftext.ErrEmptyDocument
	}

	if file.Size > s.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload limit"})
		return "", errors.New("file too large")
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return "", err
	}
	if int64(len(data)) > s.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload limit"})
		return "", errors.New("file too large")
	}

	text, err := pdftext.Extract(data)
	if err != nil {
		s.logger.Debug("pdf extraction failed", "id", c.GetString("request_id"), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not extract text from the PDF"})
		return "", err
	}

	return text, nil
}

package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nurtipurnama/modelv2/internal/logger"
	"github.com/nurtipurnama/modelv2/pkg/model"
	"github.com/nurtipurnama/modelv2/pkg/transport"
)

// Matches "2-1", "2 - 1", "2:1" and similar scoreline cells
var scorelinePattern = regexp.MustCompile(`^\s*(\d+)\s*[-:\x{2013}]\s*(\d+)\s*$`)

// ParseResultsHTML extracts ordered (self, opponent) score pairs from an HTML
// results page. It scans table rows for a scoreline cell such as "2-1"; rows
// without one are ignored. Pairs are returned in document order, which for the
// usual newest-first results tables means the caller gets newest first and
// should reverse before ingestion if the source lists oldest first.
func ParseResultsHTML(html []byte) ([]int, []int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var selfScores, opponentScores []int
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		row.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			text := strings.TrimSpace(cell.Text())
			m := scorelinePattern.FindStringSubmatch(text)
			if m == nil {
				return true
			}
			self, _ := strconv.Atoi(m[1])
			opponent, _ := strconv.Atoi(m[2])
			selfScores = append(selfScores, self)
			opponentScores = append(opponentScores, opponent)
			return false
		})
	})

	if len(selfScores) == 0 {
		return nil, nil, fmt.Errorf("%w: no scoreline cells found in html", model.ErrValidation)
	}
	logger.Debug("parsed", len(selfScores), "scorelines from html")
	return selfScores, opponentScores, nil
}

// FetchResults downloads a results page and ingests its scorelines into the
// named category. The page order is reversed so the store receives oldest
// first, which is what the recency-weighted extractors expect.
func FetchResults(url string, category model.Category, store *model.MatchStore) (int, error) {
	html, err := transport.GetHTML(url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch results from %s: %w", url, err)
	}

	selfScores, opponentScores, err := ParseResultsHTML(html)
	if err != nil {
		return 0, err
	}

	reverseInts(selfScores)
	reverseInts(opponentScores)

	n, _, err := store.Ingest(category, selfScores, opponentScores)
	return n, err
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// ArticleScraper fetches article bodies for news headlines whose API payload
// only carries a summary. Best effort: callers ignore scrape failures.
type ArticleScraper struct {
	client *resty.Client
}

// NewArticleScraper creates a new article scraper.
func NewArticleScraper(timeout time.Duration) *ArticleScraper {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; TradeTalk/1.0)")

	return &ArticleScraper{client: client}
}

// FetchBody downloads an article page and extracts its paragraph text,
// capped to keep downstream prompts bounded.
func (as *ArticleScraper) FetchBody(ctx context.Context, articleURL string) (string, error) {
	if strings.TrimSpace(articleURL) == "" {
		return "", fmt.Errorf("article URL cannot be empty")
	}

	resp, err := as.client.R().SetContext(ctx).Get(articleURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("HTTP error %d when fetching article", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var sb strings.Builder
	doc.Find("article p, .article-body p, main p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return true
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
		return sb.Len() < 4000
	})

	body := sb.String()
	if body == "" {
		return "", fmt.Errorf("no article text found at %s", articleURL)
	}
	return body, nil
}

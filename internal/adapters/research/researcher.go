// Package research implements the researcher collaborator: it gathers
// company, news, and financial data for a ticker, degrading to built-in
// fallback data on any upstream failure.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/bjornf-dev/stockscout/internal/domain"
	"github.com/bjornf-dev/stockscout/internal/ports"
)

const (
	newsAPIKeyKey     = "news.api_key"
	newsBaseURLKey    = "news.base_url"
	newsMaxResultsKey = "news.max_results"

	defaultBaseURL    = "https://newsapi.org"
	defaultMaxResults = 5
	requestTimeout    = 7 * time.Second
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
}

var _ ports.Researcher = (*Client)(nil)

func NewClient(cfg *viper.Viper, httpClient *http.Client) *Client {
	if cfg == nil {
		cfg = viper.New()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	cfg.SetDefault(newsBaseURLKey, defaultBaseURL)
	cfg.SetDefault(newsMaxResultsKey, defaultMaxResults)

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.GetString(newsBaseURLKey),
		apiKey:     cfg.GetString(newsAPIKeyKey),
		maxResults: cfg.GetInt(newsMaxResultsKey),
	}
}

// Research never fails for ordinary reasons: fetch errors mark the payload
// degraded and fall back to simulated data. Only a dead context aborts.
func (c *Client) Research(ctx context.Context, ticker string) (domain.ResearchData, error) {
	if err := ctx.Err(); err != nil {
		return domain.ResearchData{}, err
	}

	company := companyProfile(ticker)
	data := domain.ResearchData{
		Ticker:      ticker,
		CompanyName: company.Name,
		Company:     company,
		Financials:  fallbackFinancials(),
	}

	news, err := c.searchNews(ctx, ticker)
	if err != nil {
		data.Err = fmt.Sprintf("news search failed: %v", err)
		news = fallbackNews(ticker)
	}
	data.News = news

	for _, article := range news {
		if article.URL != "" {
			data.Sources = append(data.Sources, article.URL)
		}
	}
	data.Summary = summarize(data)

	return data, nil
}

// searchNews queries a NewsAPI-style everything endpoint. With no API key
// configured it goes straight to simulated results, which counts as offline
// mode rather than a degradation.
func (c *Client) searchNews(ctx context.Context, ticker string) ([]domain.NewsArticle, error) {
	if c.apiKey == "" {
		return fallbackNews(ticker), nil
	}

	query := url.Values{}
	query.Set("q", ticker+" stock")
	query.Set("sortBy", "publishedAt")
	query.Set("language", "en")
	query.Set("pageSize", strconv.Itoa(c.maxResults))
	query.Set("apiKey", c.apiKey)

	endpoint := c.baseURL + "/v2/everything?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch news: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	articles := make([]domain.NewsArticle, 0, len(payload.Articles))
	for _, entry := range payload.Articles {
		if len(articles) >= c.maxResults {
			break
		}
		articles = append(articles, domain.NewsArticle{
			Title:   entry.Title,
			Snippet: entry.Description,
			URL:     entry.URL,
			Source:  entry.Source.Name,
			Date:    entry.PublishedAt,
		})
	}

	return articles, nil
}

func summarize(data domain.ResearchData) string {
	return fmt.Sprintf("%s (%s, %s): %d recent articles, PE %s, market cap %s.",
		data.CompanyName,
		data.Company.Industry,
		data.Company.Sector,
		len(data.News),
		data.Financials.PERatio,
		data.Financials.MarketCap,
	)
}

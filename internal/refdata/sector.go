package refdata

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"tradebook-analyzer/internal/interfaces"
	"tradebook-analyzer/internal/logger"
)

// StaticProvider serves sector classifications from a fixed map, typically
// loaded from config. Lookups are case-insensitive on the symbol.
type StaticProvider struct {
	sectors map[string]string
}

var _ interfaces.SectorProvider = (*StaticProvider)(nil)

func NewStatic(sectors map[string]string) *StaticProvider {
	normalized := make(map[string]string, len(sectors))
	for symbol, sector := range sectors {
		normalized[strings.ToUpper(symbol)] = sector
	}
	return &StaticProvider{sectors: normalized}
}

func (p *StaticProvider) Sectors(_ context.Context, symbols []string) (map[string]string, error) {
	result := make(map[string]string, len(symbols))
	for _, symbol := range symbols {
		if sector, ok := p.sectors[strings.ToUpper(symbol)]; ok {
			result[symbol] = sector
		}
	}
	return result, nil
}

// SectorSource defines a company-page source to scrape classifications from.
type SectorSource struct {
	Name      string
	BaseURL   string
	PagePath  string // e.g. "/company/{symbol}/"
	Selectors SectorSelectors
	RateLimit time.Duration
}

// SectorSelectors defines CSS selectors for extracting the sector label.
type SectorSelectors struct {
	Container string
	Sector    string
}

// defaultSource returns the company-page source scraped for live lookups.
func defaultSource() SectorSource {
	return SectorSource{
		Name:     "Screener",
		BaseURL:  "https://www.screener.in",
		PagePath: "/company/{symbol}/",
		Selectors: SectorSelectors{
			Container: "div.company-profile",
			Sector:    "ul.sub-nav a, p.sub span a",
		},
		RateLimit: 2 * time.Second,
	}
}

// ScraperProvider resolves sectors by scraping company pages, falling back to
// a static map for symbols the scrape cannot classify. Index underlyings like
// NIFTY have no company page and only ever resolve through the fallback.
type ScraperProvider struct {
	source   SectorSource
	timeout  time.Duration
	fallback *StaticProvider
}

var _ interfaces.SectorProvider = (*ScraperProvider)(nil)

func NewScraper(timeout time.Duration, fallback map[string]string) *ScraperProvider {
	return &ScraperProvider{
		source:   defaultSource(),
		timeout:  timeout,
		fallback: NewStatic(fallback),
	}
}

func (p *ScraperProvider) Sectors(ctx context.Context, symbols []string) (map[string]string, error) {
	static, _ := p.fallback.Sectors(ctx, symbols)

	result := make(map[string]string, len(symbols))
	for _, symbol := range symbols {
		if sector, ok := static[symbol]; ok {
			result[symbol] = sector
			continue
		}

		sector, err := p.scrapeSector(ctx, symbol)
		if err != nil {
			logger.ErrorWithErr(ctx, "Sector scrape failed", err,
				"source", p.source.Name,
				"symbol", symbol,
			)
			continue
		}
		if sector != "" {
			result[symbol] = sector
		}

		time.Sleep(p.source.RateLimit)
	}

	logger.Info(ctx, "Sector classification resolved",
		"symbols", len(symbols),
		"classified", len(result),
	)
	return result, nil
}

// scrapeSector fetches one company page and extracts the sector label.
func (p *ScraperProvider) scrapeSector(ctx context.Context, symbol string) (string, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(p.source.BaseURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(p.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	var sector string
	c.OnHTML(p.source.Selectors.Container, func(e *colly.HTMLElement) {
		if sector != "" {
			return
		}
		e.DOM.Find(p.source.Selectors.Sector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if text != "" {
				sector = text
				return false
			}
			return true
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Debug(ctx, "Sector page fetch error",
			"url", r.Request.URL.String(),
			"error", err,
		)
	})

	pageURL := p.source.BaseURL + strings.ReplaceAll(p.source.PagePath, "{symbol}", url.PathEscape(symbol))
	if err := c.Visit(pageURL); err != nil {
		return "", err
	}
	c.Wait()

	return sector, nil
}

func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

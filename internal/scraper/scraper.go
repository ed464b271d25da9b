// Package scraper pulls road sign reference pages from a public sign
// catalog site and turns them into TrafficSign records.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/flashneiga/backend/internal/domain/sign"
	"github.com/flashneiga/backend/internal/worker"
)

const (
	userAgent    = "theory-trainer-bot/1.0"
	fetchWorkers = 4
)

// SignPage is one catalog entry found on the index page.
type SignPage struct {
	Title string
	URL   string
}

// Catalog fetches and parses pages of a road sign catalog site.
type Catalog struct {
	baseURL string
	client  *http.Client
}

func NewCatalog(baseURL string) *Catalog {
	return &Catalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchIndex loads the catalog index and returns links to every sign
// detail page under /signs/.
func (c *Catalog) FetchIndex(ctx context.Context) ([]SignPage, error) {
	doc, err := c.fetch(ctx, c.baseURL+"/signs/")
	if err != nil {
		return nil, err
	}

	var pages []SignPage
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		title := strings.TrimSpace(s.Text())
		if !ok || title == "" {
			return
		}
		if strings.HasPrefix(href, "/signs/") && strings.HasSuffix(href, ".html") {
			pages = append(pages, SignPage{Title: title, URL: c.baseURL + href})
		}
	})
	return pages, nil
}

// FetchSign loads one detail page and extracts the sign record.
func (c *Catalog) FetchSign(ctx context.Context, page SignPage) (*sign.TrafficSign, error) {
	doc, err := c.fetch(ctx, page.URL)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(doc.Find("h1").First().Text())
	if name == "" {
		name = page.Title
	}
	category := strings.TrimSpace(doc.Find(".sign-category").First().Text())
	if category == "" {
		category = "general"
	}
	description := collapse(doc.Find(".sign-description").First().Text())
	if description == "" {
		description = collapse(doc.Find("main p, article p").First().Text())
	}

	imageURL, _ := doc.Find("main img, article img").First().Attr("src")
	if strings.HasPrefix(imageURL, "/") {
		imageURL = c.baseURL + imageURL
	}

	return sign.New(name, strings.ToLower(category), description, imageURL)
}

// FetchAll walks the whole catalog, fetching detail pages concurrently.
// Pages that fail to parse are skipped and reported in errs.
func (c *Catalog) FetchAll(ctx context.Context) (signs []sign.TrafficSign, errs []error, err error) {
	pages, err := c.FetchIndex(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(pages) == 0 {
		return nil, nil, nil
	}

	type outcome struct {
		sign *sign.TrafficSign
		err  error
	}

	pool := worker.NewPool[outcome](fetchWorkers, len(pages))
	for _, page := range pages {
		page := page
		pool.Submit(page.URL, func() outcome {
			s, err := c.FetchSign(ctx, page)
			return outcome{sign: s, err: err}
		})
	}
	pool.Close()

	for res := range pool.Results() {
		if res.Output.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.JobID, res.Output.err))
			continue
		}
		signs = append(signs, *res.Output.sign)
	}
	return signs, errs, nil
}

func (c *Catalog) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %s", url, resp.Status)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

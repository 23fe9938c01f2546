package rates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// DefaultMigURL is the exchange office page carrying national bank rates
const DefaultMigURL = "https://mig.kz/"

const userAgent = "Mozilla/5.0"

// MigSource scrapes national bank rates from the mig.kz "external-rates"
// block and applies a percentage markup
type MigSource struct {
	url           string
	client        *http.Client
	markupPercent float64
	currencies    map[types.Currency]bool
}

// MigOption configures a MigSource
type MigOption func(*MigSource)

// WithMigURL overrides the page URL
func WithMigURL(url string) MigOption {
	return func(s *MigSource) { s.url = url }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) MigOption {
	return func(s *MigSource) { s.client = client }
}

// WithMarkup sets the percentage added to every rate
func WithMarkup(percent float64) MigOption {
	return func(s *MigSource) { s.markupPercent = percent }
}

// NewMigSource creates a mig.kz scraper for USD, EUR and RUB
func NewMigSource(opts ...MigOption) *MigSource {
	s := &MigSource{
		url:           DefaultMigURL,
		client:        &http.Client{Timeout: 10 * time.Second},
		markupPercent: 1,
		currencies: map[types.Currency]bool{
			types.CurrencyUSD: true,
			types.CurrencyEUR: true,
			types.CurrencyRUB: true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the source name
func (s *MigSource) Name() string {
	return "mig"
}

// Fetch downloads and parses the rates page
func (s *MigSource) Fetch(ctx context.Context) (*FetchResult, error) {
	body, err := get(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		return nil, errors.Parsing("failed to parse mig.kz page", err)
	}

	block := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "external-rates")
	})
	if block == nil {
		return nil, errors.New(errors.TypeParsing, "external-rates block not found on mig.kz page")
	}

	items := findAll(block, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "li"
	})
	if len(items) == 0 {
		return nil, errors.New(errors.TypeParsing, "no <li> items in external-rates block")
	}

	rates := make(Rates)
	for _, li := range items {
		codeNode := findFirst(li, isElement("h4"))
		rateNode := findFirst(li, isElement("p"))
		if codeNode == nil || rateNode == nil {
			continue
		}

		code := types.Currency(textContent(codeNode)).Normalize()
		if !s.currencies[code] {
			continue
		}

		rate, ok := parseRate(textContent(rateNode))
		if !ok {
			continue
		}
		rates[code] = ApplyMarkup(rate, s.markupPercent)
	}

	if len(rates) == 0 {
		return nil, errors.New(errors.TypeParsing, "no supported currencies found on mig.kz page")
	}

	return &FetchResult{
		Source:    s.Name(),
		Rates:     rates,
		FetchedAt: time.Now(),
	}, nil
}

// parseRate reads the leading number of text such as "521,6 тенге"
func parseRate(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}
	rate, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

func get(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Internal("failed to build rate request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Network("failed to fetch "+url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Network("failed to fetch "+url, fmt.Errorf("unexpected status %s", resp.Status))
	}
	return resp.Body, nil
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			out = append(out, c)
		}
		out = append(out, findAll(c, match)...)
	}
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

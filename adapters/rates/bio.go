package rates

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"landed-cost/core/pricing"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// DefaultBioURL is the supplier portal quoting its own RUB rates
const DefaultBioURL = "https://portal.holdingbio.ru/"

// bioFallback is used when the portal cannot be read, in RUB per unit
var bioFallback = map[types.Currency]float64{
	types.CurrencyEUR: 109.0,
	types.CurrencyUSD: 93.0,
}

// bioPatterns match "<code> ... 93,50 P" in the portal text, most specific first
var bioPatterns = map[types.Currency][]*regexp.Regexp{
	types.CurrencyEUR: {
		regexp.MustCompile(`(?is)YE\s*EUR.*?(\d+,\d+)\s*P`),
		regexp.MustCompile(`(?is)EUR.*?(\d+,\d+)\s*P`),
		regexp.MustCompile(`(?is)(\d+,\d+)\s*P.*?EUR`),
	},
	types.CurrencyUSD: {
		regexp.MustCompile(`(?is)YE\s*USD.*?(\d+,\d+)\s*P`),
		regexp.MustCompile(`(?is)USD.*?(\d+,\d+)\s*P`),
		regexp.MustCompile(`(?is)(\d+,\d+)\s*P.*?USD`),
	},
}

// BioSource reads the supplier's RUB rates and converts them to KZT using
// the RUB rate of another source
type BioSource struct {
	url    string
	client *http.Client
	rub    Source
}

// NewBioSource creates a BIO portal source. rub supplies the RUB→KZT rate.
func NewBioSource(rub Source, url string, client *http.Client) *BioSource {
	if url == "" {
		url = DefaultBioURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &BioSource{url: url, client: client, rub: rub}
}

// Name returns the source name
func (s *BioSource) Name() string {
	return "bio"
}

// Fetch returns the supplier rates in KZT
func (s *BioSource) Fetch(ctx context.Context) (*FetchResult, error) {
	inRub := s.FetchRUB(ctx)

	rubResult, err := s.rub.Fetch(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.TypeRateUnavailable, "bio: RUB rate unavailable", err)
	}
	rubToKZT, err := rubResult.Lookup(types.CurrencyRUB)
	if err != nil {
		return nil, err
	}

	return &FetchResult{
		Source:    s.Name(),
		Rates:     ToTenge(inRub, rubToKZT),
		FetchedAt: time.Now(),
	}, nil
}

// FetchRUB returns the portal rates in RUB, falling back to fixed values
// when the page is unreachable or carries no rates
func (s *BioSource) FetchRUB(ctx context.Context) Rates {
	body, err := get(ctx, s.client, s.url)
	if err != nil {
		return fallbackRates()
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		return fallbackRates()
	}

	rates := ParseBioText(textContent(doc))
	if len(rates) == 0 {
		return fallbackRates()
	}
	return rates
}

// ParseBioText extracts EUR and USD RUB rates from page text
func ParseBioText(text string) Rates {
	rates := make(Rates)
	for _, code := range []types.Currency{types.CurrencyEUR, types.CurrencyUSD} {
		for _, pattern := range bioPatterns[code] {
			match := pattern.FindStringSubmatch(text)
			if match == nil {
				continue
			}
			rate, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
			if err != nil {
				continue
			}
			rates[code] = rate
			break
		}
	}
	return rates
}

// ToTenge converts RUB-denominated rates into KZT, rounded to 2 places
func ToTenge(inRub Rates, rubToKZT float64) Rates {
	out := make(Rates, len(inRub))
	for code, rate := range inRub {
		out[code] = pricing.RoundFloat(rate*rubToKZT, 2)
	}
	return out
}

func fallbackRates() Rates {
	out := make(Rates, len(bioFallback))
	for c, r := range bioFallback {
		out[c] = r
	}
	return out
}

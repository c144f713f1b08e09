package scraper

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/chromedp/chromedp"
)

const pbDefaultURL = "https://www.policybazaar.com/term-insurance/term-insurance-plans/"

// PolicyBazaarSource scrapes the PolicyBazaar term insurance listing page.
// The page is rendered client-side, so extraction runs in a headless browser.
type PolicyBazaarSource struct {
	url string
}

// NewPolicyBazaarSource creates the adapter. An empty url uses the
// production listing page.
func NewPolicyBazaarSource(url string) *PolicyBazaarSource {
	if url == "" {
		url = pbDefaultURL
	}
	return &PolicyBazaarSource{url: url}
}

func (s *PolicyBazaarSource) Name() string {
	return "policybazaar"
}

// pbCard mirrors the JSON shape the extraction script returns per plan card.
type pbCard struct {
	Insurer  string   `json:"insurer"`
	PlanName string   `json:"planName"`
	Cover    string   `json:"cover"`
	MaxCover string   `json:"maxCover"`
	Premium  string   `json:"premium"`
	CSR      string   `json:"csr"`
	Features []string `json:"features"`
	URL      string   `json:"url"`
}

// Fetch renders the listing page and extracts plan cards. The caller's ctx
// bounds the whole operation, including browser startup.
func (s *PolicyBazaarSource) Fetch(ctx context.Context) ([]RawListing, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if bin := findChromeBinary(); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var cards []pbCard
	err := defaultRetry.do(ctx, "policybazaar fetch", func() error {
		browserCtx, cancel := chromedp.NewContext(allocCtx,
			chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancel()

		return chromedp.Run(browserCtx,
			chromedp.Navigate(s.url),
			chromedp.WaitReady("body"),
			chromedp.Evaluate(`
				(function() {
					var results = [];
					var cards = document.querySelectorAll('[class*="planCard"], [data-testid="plan-card"]');
					for (var i = 0; i < cards.length; i++) {
						var card = cards[i];
						var text = function(sel) {
							var el = card.querySelector(sel);
							return el ? el.textContent.trim() : '';
						};
						var features = [];
						card.querySelectorAll('[class*="feature"] li, ul li').forEach(function(li) {
							if (li.textContent.trim()) features.push(li.textContent.trim());
						});
						var link = card.querySelector('a[href]');
						results.push({
							insurer:  text('[class*="insurerName"], [class*="companyName"]'),
							planName: text('[class*="planName"], h3'),
							cover:    text('[class*="coverAmount"], [class*="sumAssured"]'),
							maxCover: text('[class*="maxCover"]'),
							premium:  text('[class*="premium"], [class*="price"]'),
							csr:      text('[class*="claimRatio"], [class*="csr"]'),
							features: features.slice(0, 5),
							url:      link ? link.href : ''
						});
					}
					return results;
				})()
			`, &cards),
		)
	})
	if err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}

	listings := make([]RawListing, 0, len(cards))
	for _, c := range cards {
		if c.PlanName == "" || c.Insurer == "" {
			continue
		}
		maxCover := c.MaxCover
		if maxCover == "" {
			maxCover = c.Cover
		}
		listings = append(listings, RawListing{
			PlanName:             c.PlanName,
			Provider:             c.Insurer,
			SumAssuredMin:        c.Cover,
			SumAssuredMax:        maxCover,
			PremiumAnnual:        c.Premium,
			ClaimSettlementRatio: c.CSR,
			Features:             c.Features,
			SourceURL:            c.URL,
		})
	}

	if len(listings) == 0 {
		return nil, &FetchError{Source: s.Name(), Err: fmt.Errorf("no plan cards found on %s", s.url)}
	}
	return listings, nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring CHROME_BIN.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}
	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

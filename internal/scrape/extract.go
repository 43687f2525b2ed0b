package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageFields holds the fields pulled out of a product page before the
// generative pass. Empty strings mean the selector found nothing; the
// reconciler tolerates that.
type PageFields struct {
	Title   string `json:"title"`
	Price   string `json:"price"`
	Image   string `json:"image"`
	Rating  string `json:"rating"`
	Reviews string `json:"reviews"`
	Store   string `json:"store"`
}

// ExtractFields runs a best-effort selector pass over the scraped HTML.
// The selectors target the big marketplaces; anything they miss is left
// for the generative pass to recover from the surrounding text.
func ExtractFields(html, pageURL string) (PageFields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageFields{}, err
	}

	f := PageFields{Store: StoreFromURL(pageURL)}

	f.Title = firstText(doc,
		"#productTitle",
		"span#productTitle",
		"title",
	)

	f.Price = firstText(doc,
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		"#priceblock_saleprice",
		"[data-asin-price]",
		"span.a-price > span.a-offscreen",
	)

	if src, ok := doc.Find("#landingImage").Attr("src"); ok {
		f.Image = src
	} else if src, ok := doc.Find("#imgTagWrapperId img").Attr("data-old-hires"); ok {
		f.Image = src
	} else if src, ok := doc.Find("#imgTagWrapperId img").Attr("src"); ok {
		f.Image = src
	} else if src, ok := doc.Find("img").First().Attr("src"); ok {
		f.Image = src
	}

	f.Rating = firstText(doc, "span.a-icon-alt")
	if f.Rating == "" {
		if label, ok := doc.Find(`span[aria-label*="out of 5 stars"]`).First().Attr("aria-label"); ok {
			f.Rating = label
		}
	}

	f.Reviews = firstText(doc, "#acrCustomerReviewText")
	if f.Reviews == "" {
		doc.Find("span.a-size-base").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.Contains(s.Text(), "ratings") {
				f.Reviews = strings.TrimSpace(s.Text())
				return false
			}
			return true
		})
	}

	return f, nil
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// StoreFromURL derives a display name for the store from the page's host.
func StoreFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "Unknown"
	}
	host := u.Hostname()
	switch {
	case strings.Contains(host, "amazon"):
		return "Amazon"
	case strings.Contains(host, "flipkart"):
		return "Flipkart"
	case strings.Contains(host, "bestbuy"):
		return "Best Buy"
	case strings.Contains(host, "apple"):
		return "Apple Store"
	}
	host = strings.TrimPrefix(host, "www.")
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}

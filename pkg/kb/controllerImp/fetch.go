package controllerImp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"

	"agrow/pkg/logging"
)

const maxRedirects = 5

type page struct {
	title string
	text  string
}

func newFetchClient() *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 20 * time.Second
	rc.Logger = logging.Log.WithField("component", "kb-fetch")
	return rc
}

// checkRedirect holds every hop to the allow-list. A refused hop hands back
// the redirect response itself, which fetch reports as a non-200 upstream.
func (h *KBCtrl) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		logging.Log.WithField("url", req.URL.String()).Warn("[kb] too many redirects")
		return http.ErrUseLastResponse
	}
	if !h.allowed(req.URL.Hostname()) {
		logging.Log.WithField("url", req.URL.String()).Warn("[kb] redirect to a domain not allowed")
		return http.ErrUseLastResponse
	}
	return nil
}

// fetch downloads an HTML or plain-text page and pulls out its readable text.
func (h *KBCtrl) fetch(ctx context.Context, u string) (page, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return page{}, err
	}
	resp, err := h.http.Do(req)
	if err != nil {
		return page{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return page{}, fmt.Errorf("upstream returned %d", resp.StatusCode)
	}
	if resp.ContentLength > int64(h.maxBytes) {
		return page{}, fmt.Errorf("page too large")
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(h.maxBytes)+1))
	if err != nil {
		return page{}, err
	}
	if len(b) > h.maxBytes {
		return page{}, fmt.Errorf("page too large")
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "text/plain"):
		s := cleanWhitespace(string(b))
		return page{title: guessTitleFromText(s), text: s}, nil
	case strings.Contains(ct, "text/html"):
		return extractHTML(b)
	default:
		return page{}, fmt.Errorf("unsupported content-type: %s", ct)
	}
}

// extractHTML keeps headings, paragraphs and list items from main/article,
// or from the whole page when neither exists.
func extractHTML(b []byte) (page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return page{}, err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return page{title: title, text: cleanWhitespace(strings.Join(parts, "\n"))}, nil
}

var wsRX = regexp.MustCompile(`[ \t]+\n`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(wsRX.ReplaceAllString(s, "\n"))
}

func guessTitleFromText(s string) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	if r := []rune(line); len(r) > 120 {
		line = string(r[:120])
	}
	return strings.TrimSpace(line)
}

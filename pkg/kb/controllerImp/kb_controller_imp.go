package controllerImp

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/labstack/echo/v4"

	"agrow/pkg/kb/controller"
	"agrow/pkg/kb/service"
	"agrow/pkg/logging"
)

const searchLimit = 6

type Options struct {
	AllowedDomains []string
	MaxBytes       int
	// HTTP overrides the page fetcher; nil builds one with retries.
	HTTP *retryablehttp.Client
}

type KBCtrl struct {
	s        service.KBService
	allow    []string
	maxBytes int
	http     *retryablehttp.Client
}

type ingestReq struct {
	Title     string  `json:"title"`
	Tags      string  `json:"tags"`
	Text      string  `json:"text"`
	SourceURL *string `json:"source_url"`
}

func New(s service.KBService, o Options) controller.KBController {
	if o.MaxBytes <= 0 {
		o.MaxBytes = 1500000
	}
	if o.HTTP == nil {
		o.HTTP = newFetchClient()
	}
	allow := make([]string, 0, len(o.AllowedDomains))
	for _, d := range o.AllowedDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			allow = append(allow, d)
		}
	}
	h := &KBCtrl{s: s, allow: allow, maxBytes: o.MaxBytes, http: o.HTTP}
	if o.HTTP.HTTPClient != nil {
		o.HTTP.HTTPClient.CheckRedirect = h.checkRedirect
	}
	return h
}

// allowed matches the host itself or any subdomain of a listed domain.
func (h *KBCtrl) allowed(host string) bool {
	host = strings.ToLower(host)
	for _, d := range h.allow {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func (h *KBCtrl) fail(c echo.Context, err error) error {
	if errors.Is(err, service.ErrMissingField) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	logging.Log.WithError(err).Error("[kb] request failed")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func (h *KBCtrl) IngestText(c echo.Context) error {
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
	}
	src := ""
	if req.SourceURL != nil {
		src = strings.TrimSpace(*req.SourceURL)
	}
	doc, n, err := h.s.UpsertDocument(c.Request().Context(), req.Title, req.Tags, req.Text, src)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *KBCtrl) IngestURL(c echo.Context) error {
	var body struct {
		URL   string `json:"url"`
		Tags  string `json:"tags"`
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.URL) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url required"})
	}
	u, err := url.Parse(strings.TrimSpace(body.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad url"})
	}
	if !h.allowed(u.Hostname()) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "domain not allowed"})
	}

	page, err := h.fetch(c.Request().Context(), u.String())
	if err != nil {
		logging.Log.WithError(err).WithField("url", u.String()).Warn("[kb] fetch failed")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	title := page.title
	if t := strings.TrimSpace(body.Title); t != "" {
		title = t
	}
	if title == "" {
		title = u.Hostname()
	}

	doc, n, err := h.s.UpsertDocument(c.Request().Context(), title, body.Tags, page.text, u.String())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *KBCtrl) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q required"})
	}
	hits, err := h.s.Search(c.Request().Context(), q, searchLimit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, hits)
}

func (h *KBCtrl) ListDocs(c echo.Context) error {
	ds, err := h.s.ListDocs(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}

package gateway

import (
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sendgrid/rest"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/utils"
)

// hopHeaders are meaningful only for a single connection and are never forwarded.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

type upstream struct {
	prefix  string
	baseURL string
}

// Proxy forwards requests to the backend owning the first path segment.
type Proxy struct {
	upstreams []upstream
	client    *rest.Client
}

// NewProxy builds a proxy from prefix -> base URL pairs, e.g. "/orders" -> "http://ms-order:8084".
func NewProxy(routes map[string]string, timeout time.Duration) *Proxy {
	p := &Proxy{
		client: &rest.Client{HTTPClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}},
	}
	for prefix, baseURL := range routes {
		p.upstreams = append(p.upstreams, upstream{
			prefix:  "/" + strings.Trim(prefix, "/"),
			baseURL: strings.TrimRight(baseURL, "/"),
		})
	}
	// longest prefix wins
	sort.Slice(p.upstreams, func(i, j int) bool {
		return len(p.upstreams[i].prefix) > len(p.upstreams[j].prefix)
	})
	return p
}

// Resolve returns the backend base URL serving path.
func (p *Proxy) Resolve(path string) (string, bool) {
	for _, u := range p.upstreams {
		if path == u.prefix || strings.HasPrefix(path, u.prefix+"/") {
			return u.baseURL, true
		}
	}
	return "", false
}

func isHopHeader(name string) bool {
	for _, h := range hopHeaders {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

func outboundHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string, len(c.Request.Header)+1)
	for name, values := range c.Request.Header {
		if isHopHeader(name) || strings.EqualFold(name, "Content-Length") {
			continue
		}
		headers[name] = strings.Join(values, ", ")
	}
	forwarded := c.ClientIP()
	if prior := c.GetHeader("X-Forwarded-For"); prior != "" {
		forwarded = prior + ", " + forwarded
	}
	headers["X-Forwarded-For"] = forwarded
	return headers
}

// Handle forwards the request and copies the backend response back verbatim.
func (p *Proxy) Handle(c *gin.Context) {
	log := logger.WithCtx(c, "Proxy.Handle")

	baseURL, ok := p.Resolve(c.Request.URL.Path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": utils.MessageError()[http.StatusNotFound]})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.WithError(err).Error("error_400: cannot read request body")
		c.JSON(http.StatusBadRequest, gin.H{"message": utils.MessageError()[http.StatusBadRequest]})
		return
	}

	target := baseURL + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		target += "?" + c.Request.URL.RawQuery
	}
	req := rest.Request{
		Method:  rest.Method(c.Request.Method),
		BaseURL: target,
		Headers: outboundHeaders(c),
		Body:    body,
	}

	res, err := p.client.SendWithContext(c.Request.Context(), req)
	if err != nil {
		log.WithError(err).WithField("target", target).Error("error_503: upstream unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": utils.MessageError()[http.StatusServiceUnavailable]})
		return
	}

	for name, values := range res.Headers {
		if isHopHeader(name) || strings.EqualFold(name, "Content-Length") {
			continue
		}
		for _, v := range values {
			c.Writer.Header().Add(name, v)
		}
	}
	c.Status(res.StatusCode)
	_, _ = c.Writer.WriteString(res.Body)
}

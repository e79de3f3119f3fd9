package http

import (
	"net/http"
	"strings"

	"github.com/unrolled/secure"
)

const (
	apiContentSecurityPolicy = "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
		"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
		"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';" +
		"upgrade-insecure-requests"

	// The Swagger UI page bootstraps itself with an inline script.
	docsContentSecurityPolicy = "default-src 'self';img-src 'self' data:;object-src 'none';" +
		"script-src 'self' 'unsafe-inline';style-src 'self' https: 'unsafe-inline'"
)

// helmetHeaders are set on every response in addition to what secure emits.
var helmetHeaders = map[string]string{
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Origin-Agent-Cluster":              "?1",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Permitted-Cross-Domain-Policies": "none",
}

func newSecureOptions(csp string, forceSTS bool) secure.Options {
	return secure.Options{
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		BrowserXssFilter:        true,
		CustomBrowserXssValue:   "0",
		ContentSecurityPolicy:   csp,
		ReferrerPolicy:          "no-referrer",
		CrossOriginOpenerPolicy: "same-origin",
		STSSeconds:              15552000,
		STSIncludeSubdomains:    true,
		ForceSTSHeader:          forceSTS,
	}
}

// withSecurityHeaders sets helmet-style security headers. Strict-Transport-
// Security is always sent when the server runs in HTTPS mode.
func (h *Handler) withSecurityHeaders() func(http.Handler) http.Handler {
	forceSTS := bool(h.cfg.HTTPSMode)
	api := secure.New(newSecureOptions(apiContentSecurityPolicy, forceSTS))
	docs := secure.New(newSecureOptions(docsContentSecurityPolicy, forceSTS))

	return func(next http.Handler) http.Handler {
		apiHandler := api.Handler(next)
		docsHandler := docs.Handler(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for name, value := range helmetHeaders {
				w.Header().Set(name, value)
			}
			w.Header().Del("X-Powered-By")

			if strings.HasPrefix(r.URL.Path, docsPath) {
				docsHandler.ServeHTTP(w, r)
				return
			}
			apiHandler.ServeHTTP(w, r)
		})
	}
}

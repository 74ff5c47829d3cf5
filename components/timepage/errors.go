package timepage

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const htmlContentType = "text/html; charset=UTF-8"

// InvalidTimezoneMessage is the heading of the 400 page.
const InvalidTimezoneMessage = "Invalid timezone"

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

var (
	detailPolicyOnce sync.Once
	detailPolicy     *bluemonday.Policy
)

// sanitizeDetail strips all markup from caller-supplied text before it is
// echoed back on an error page. The result is already HTML-escaped.
func sanitizeDetail(raw string) string {
	detailPolicyOnce.Do(func() {
		detailPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(detailPolicy.Sanitize(raw))
}

// writeHTMLError writes a minimal HTML page with heading as its title and an
// optional sanitized detail line.
func writeHTMLError(w http.ResponseWriter, r *http.Request, code int, heading, detail string) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(code)
	if r != nil && r.Method == http.MethodHead {
		return
	}

	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", heading)
	if cleaned := sanitizeDetail(detail); cleaned != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", cleaned)
	}
	b.WriteString("</body></html>\n")
	_, _ = w.Write([]byte(b.String()))
}

func writeStatusError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	writeHTMLError(w, r, code, http.StatusText(code), "")
}

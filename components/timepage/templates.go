package timepage

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-timepage/pkg/render/template/gotemplate"
)

// TimeTemplate is the template rendered for every successful request.
const TimeTemplate = "time"

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// NewEngine builds the page template engine. Templates in dir, when set,
// override the embedded ones by name. The time template is compiled here so a
// broken override fails at startup. extra options are applied last.
func NewEngine(dir string, extra ...gotemplate.Option) (*gotemplate.Engine, error) {
	opts := []gotemplate.Option{
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithPreload(TimeTemplate),
	}
	if dir = strings.TrimSpace(dir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("timepage: templates dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("timepage: templates dir %q is not a directory", dir)
		}
		opts = append(opts, gotemplate.WithBaseDir(dir))
	}
	return gotemplate.New(append(opts, extra...)...)
}

package web

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates
var templateFS embed.FS

const (
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
)

// FormatDateTime renders a show time in the "medium" or "full" style.
func FormatDateTime(t time.Time, format string) string {
	if format == "full" {
		return t.Format(fullLayout)
	}
	return t.Format(mediumLayout)
}

func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"datetime": FormatDateTime,
		"join":     strings.Join,
		"has": func(values []string, v string) bool {
			for _, value := range values {
				if value == v {
					return true
				}
			}
			return false
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS,
		"templates/layouts/*.html",
		"templates/pages/*.html",
		"templates/forms/*.html",
		"templates/errors/*.html",
	)
}

// Render writes the named template with any pending flash messages.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = popFlashes(c)
	c.HTML(status, name, data)
}

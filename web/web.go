// Package web carries the embedded HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/noah-isme/sms-portal/internal/grades"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded assets rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}

// Templates parses the embedded pages with the grade helpers the views use.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"grade":     grades.Grade,
		"passFail":  grades.PassFail,
		"average":   grades.FormatAverage,
		"overall":   grades.OverallResult,
		"passCount": grades.PassCount,
		"failCount": grades.FailCount,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}

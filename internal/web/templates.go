package web

import (
	"embed"
	"html/template"

	"StockView/internal/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"skeletonRows": func() []int {
			s := make([]int, view.SkeletonRows)
			for i := range s {
				s[i] = i + 1
			}
			return s
		},
	}).ParseFS(templateFS, "templates/*.tmpl"),
)

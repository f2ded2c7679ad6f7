package responsive

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("page").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"),
)

// Page is the rendered entry page and stylesheet.
type Page struct {
	HTML string
	CSS  string
}

// pageData is everything the templates reference.
type pageData struct {
	Title          string
	Favicon        string
	CompanyName    string
	ProductName    string
	ProductVersion string
	Width          int
	Height         int
	AspectLabel    string
	LoaderURL      string
	DataURL        string
	FrameworkURL   string
	CodeURL        string
}

// Render produces the responsive page for the resolved extensions. It has no
// side effects and the same inputs always give byte-identical output.
func Render(state FileExtensionState, cfg BuildConfig) (Page, error) {
	data := pageData{
		Title:          cfg.GameTitle,
		Favicon:        cfg.Favicon,
		CompanyName:    cfg.CompanyName,
		ProductName:    cfg.ProductName,
		ProductVersion: cfg.ProductVersion,
		Width:          cfg.Resolution.Width,
		Height:         cfg.Resolution.Height,
		AspectLabel:    fmt.Sprintf("%.3f", cfg.AspectRatio()),
		LoaderURL:      assetURL(cfg, ".loader.js"),
		DataURL:        assetURL(cfg, ".data"+state.Data),
		FrameworkURL:   assetURL(cfg, ".framework.js"+state.Framework),
		CodeURL:        assetURL(cfg, ".wasm"+state.Code),
	}

	html, err := execute("index.html.tmpl", data)
	if err != nil {
		return Page{}, err
	}
	css, err := execute("style.css.tmpl", data)
	if err != nil {
		return Page{}, err
	}
	return Page{HTML: html, CSS: css}, nil
}

// assetURL builds the page-relative URL Build/<product><name>.
func assetURL(cfg BuildConfig, name string) string {
	return "Build/" + cfg.ProductName + name
}

func execute(name string, data pageData) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

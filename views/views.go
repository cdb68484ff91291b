// Package views рендерит HTML-страницы приложения из встроенных шаблонов.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/hopon-app/hopon/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	LogoAsset       = "logo.svg"
	DefaultLogoPath = "/static/" + LogoAsset
)

// StaticFS возвращает встроенные статические файлы (логотип, стили) без префикса static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("views: failed to open embedded static directory: " + err.Error())
	}
	return sub
}

// Page - имя страницы, которую умеет рендерить Renderer.
type Page string

const (
	PageHome     Page = "home"
	PageActions  Page = "actions"
	PageJoin     Page = "join"
	PageCreate   Page = "create"
	PageNotFound Page = "notfound"
)

var pageFiles = map[Page]string{
	PageHome:     "templates/home.html",
	PageActions:  "templates/actions.html",
	PageJoin:     "templates/placeholder.html",
	PageCreate:   "templates/placeholder.html",
	PageNotFound: "templates/notfound.html",
}

type Options struct {
	// LogoURL переопределяет адрес логотипа, например публичный URL в R2.
	LogoURL string
}

type Renderer struct {
	pages   map[Page]*template.Template
	logoURL string
}

func NewRenderer(opts Options) (*Renderer, error) {
	r := &Renderer{
		pages:   make(map[Page]*template.Template, len(pageFiles)),
		logoURL: opts.LogoURL,
	}
	if r.logoURL == "" {
		r.logoURL = DefaultLogoPath
	}

	for page, file := range pageFiles {
		tmpl, err := template.ParseFS(templateFS, "templates/shell.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template for page %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

type SportLink struct {
	Name string
	Href string
}

// Data - данные для любого шаблона; каждая страница читает только свои поля.
type Data struct {
	LogoURL string

	Sports []SportLink

	Title      string
	JoinHref   string
	CreateHref string

	Heading string
	SportID string
}

func HomeData(sports []models.Sport) Data {
	links := make([]SportLink, 0, len(sports))
	for _, s := range sports {
		links = append(links, SportLink{Name: s.Name, Href: SportPath(s.ID)})
	}
	return Data{Sports: links}
}

func ActionsData(title, sportID string) Data {
	return Data{
		Title:      title,
		JoinHref:   SportPath(sportID) + "/join",
		CreateHref: SportPath(sportID) + "/create",
	}
}

func JoinData(sportID string) Data {
	return Data{Heading: "Join a drop-in", SportID: sportID}
}

func CreateData(sportID string) Data {
	return Data{Heading: "Create a drop-in", SportID: sportID}
}

// SportPath строит путь экрана действий; id экранируется как сегмент пути.
func SportPath(sportID string) string {
	return "/sport/" + url.PathEscape(sportID)
}

// Render выполняет шаблон целиком в буфер, чтобы при ошибке не отдать клиенту половину страницы.
func (r *Renderer) Render(w http.ResponseWriter, status int, page Page, data Data) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	data.LogoURL = r.logoURL

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "shell", data); err != nil {
		return fmt.Errorf("failed to execute template for page %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

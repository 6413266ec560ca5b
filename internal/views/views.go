package views

import (
	"blueghost/internal/models"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageLogin     = "login"
	PageHome      = "home"
	PageProfile   = "profile"
	PageTips      = "tips"
	PageCharacter = "character"
	PageError     = "error"
)

var pageNames = []string{PageLogin, PageHome, PageProfile, PageTips, PageCharacter, PageError}

var Tips = []string{
	"Start with 'It was a foggy night...'",
	"Mix genres: 'Romantic Horror', 'Sci-Fi Comedy'",
	"Focus on atmosphere: describe sights, sounds, and feelings",
	"Try a 100-word micro story challenge",
	"Give your ghost a personality and backstory!",
}

// Page is the data every template receives. Content holds the page specific part.
type Page struct {
	Title   string
	User    models.Identity
	Warning string
	Error   string
	Content any
}

type LoginContent struct {
	Username string
}

type HomeContent struct {
	Styles []string
	Prompt string
	Style  string
	Story  *StoryView
}

type ProfileContent struct {
	Stories []StoryView
}

type TipsContent struct {
	Tips []string
}

type CharacterContent struct {
	Character *models.GhostCharacter
}

type ErrorContent struct {
	Message string
}

// StoryView is one record decorated for display. Index 0 means the latest
// story on the home page, otherwise it is the 1-based profile position. Seq is
// the record's chronological position, which later appends never shift.
type StoryView struct {
	Record    models.GenerationRecord
	Index     int
	Seq       int
	WordCount int
	Theme     template.CSS
}

func NewStoryView(record models.GenerationRecord, index, seq int) StoryView {
	return StoryView{
		Record:    record,
		Index:     index,
		Seq:       seq,
		WordCount: record.WordCount(),
		Theme:     ThemeFor(record.Style),
	}
}

func (s StoryView) FileName() string {
	return DownloadFileName(s.Record.Style, s.Index)
}

// DownloadURL addresses the record by Seq; n only names the file.
func (s StoryView) DownloadURL() string {
	q := url.Values{"seq": {strconv.Itoa(s.Seq)}}
	if s.Index > 0 {
		q.Set("n", strconv.Itoa(s.Index))
	}
	return "/download?" + q.Encode()
}

// DownloadFileName is <style>_story.txt for the latest story and
// <style>_story_<n>.txt for profile entry n.
func DownloadFileName(style models.Style, n int) string {
	if n == 0 {
		return fmt.Sprintf("%s_story.txt", style)
	}
	return fmt.Sprintf("%s_story_%d.txt", style, n)
}

func StyleNames() []string {
	styles := models.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}
	return names
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

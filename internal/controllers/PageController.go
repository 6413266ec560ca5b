package controllers

import (
	"blueghost/internal/models"
	"blueghost/internal/providers"
	"blueghost/internal/services"
	"blueghost/internal/views"
	"errors"
	"net/http"
	"strconv"
)

type PageController struct {
	renderer   *views.Renderer
	store      services.StoryStoreInterface
	generator  services.GenerationServiceInterface
	characters services.CharacterServiceInterface
	logger     providers.Logger
}

func NewPageController(renderer *views.Renderer, store services.StoryStoreInterface, generator services.GenerationServiceInterface, characters services.CharacterServiceInterface, logger providers.Logger) *PageController {
	return &PageController{
		renderer:   renderer,
		store:      store,
		generator:  generator,
		characters: characters,
		logger:     logger,
	}
}

func (pc *PageController) render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	page.User, _ = providers.IdentityFromContext(r.Context())
	if err := pc.renderer.Render(w, status, name, page); err != nil {
		pc.logger.Errorf(providers.TypeApp, "Failed to render %s: %s", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (pc *PageController) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	pc.render(w, r, status, views.PageError, views.Page{
		Title:   http.StatusText(status),
		Content: views.ErrorContent{Message: msg},
	})
}

func homeContent(prompt, style string) views.HomeContent {
	if style == "" {
		style = models.StyleHorror.String()
	}
	return views.HomeContent{Styles: views.StyleNames(), Prompt: prompt, Style: style}
}

func (pc *PageController) Home(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, http.StatusOK, views.PageHome, views.Page{Title: "Home", Content: homeContent("", "")})
}

// NotFound answers every method on paths no route claims.
func (pc *PageController) NotFound(w http.ResponseWriter, r *http.Request) {
	pc.renderError(w, r, http.StatusNotFound, "There is nothing haunting this page.")
}

func (pc *PageController) Generate(w http.ResponseWriter, r *http.Request) {
	id, _ := providers.IdentityFromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		pc.renderError(w, r, http.StatusBadRequest, "Bad Request")
		return
	}
	prompt := r.PostForm.Get("prompt")
	styleName := r.PostForm.Get("style")
	content := homeContent(prompt, styleName)

	style, err := models.ParseStyle(styleName)
	if err != nil {
		pc.render(w, r, http.StatusBadRequest, views.PageHome, views.Page{
			Title:   "Home",
			Warning: services.UserMessage(services.ErrInvalidStyle),
			Content: content,
		})
		return
	}

	record, seq, err := pc.generator.Create(r.Context(), id.Username, prompt, style)
	switch {
	case errors.Is(err, services.ErrBlankInput):
		pc.render(w, r, http.StatusOK, views.PageHome, views.Page{
			Title:   "Home",
			Warning: services.UserMessage(err),
			Content: content,
		})
		return
	case err != nil:
		status := statusFor(err)
		pc.logger.Errorf(providers.TypePost, "Story for %s failed: %s", id.Username, err)
		pc.renderError(w, r, status, services.UserMessage(err))
		return
	}

	story := views.NewStoryView(record, 0, seq)
	content.Story = &story
	pc.render(w, r, http.StatusOK, views.PageHome, views.Page{Title: "Home", Content: content})
}

func (pc *PageController) Profile(w http.ResponseWriter, r *http.Request) {
	id, _ := providers.IdentityFromContext(r.Context())
	history := pc.store.History(id.Username)

	stories := make([]views.StoryView, len(history))
	for i, record := range history {
		stories[i] = views.NewStoryView(record, i+1, len(history)-i)
	}
	pc.render(w, r, http.StatusOK, views.PageProfile, views.Page{
		Title:   "Profile",
		Content: views.ProfileContent{Stories: stories},
	})
}

func (pc *PageController) Tips(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, http.StatusOK, views.PageTips, views.Page{
		Title:   "Tips",
		Content: views.TipsContent{Tips: views.Tips},
	})
}

func (pc *PageController) Character(w http.ResponseWriter, r *http.Request) {
	content := views.CharacterContent{}
	if r.Method == http.MethodPost {
		ch := pc.characters.Generate()
		content.Character = &ch
	}
	pc.render(w, r, http.StatusOK, views.PageCharacter, views.Page{Title: "Ghost Character", Content: content})
}

// Download serves a story as a text attachment. seq picks a record by its
// chronological position and n, when given with it, only names the file.
// Without seq, n is entry n of the profile list and no parameter at all means
// the latest story.
func (pc *PageController) Download(w http.ResponseWriter, r *http.Request) {
	id, _ := providers.IdentityFromContext(r.Context())
	query := r.URL.Query()

	index, ok := positiveParam(query.Get("n"))
	if !ok {
		pc.renderError(w, r, http.StatusBadRequest, "Invalid story number.")
		return
	}
	seq, ok := positiveParam(query.Get("seq"))
	if !ok {
		pc.renderError(w, r, http.StatusBadRequest, "Invalid story number.")
		return
	}

	var record models.GenerationRecord
	if seq > 0 {
		record, ok = pc.store.At(id.Username, seq)
	} else {
		record, ok = pc.store.Entry(id.Username, max(index, 1))
	}
	if !ok {
		pc.renderError(w, r, http.StatusNotFound, "No such story.")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+views.DownloadFileName(record.Style, index)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(record.Story)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(record.Story))
}

// positiveParam parses an optional 1-based query value; absent is 0.
func positiveParam(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

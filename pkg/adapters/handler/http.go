package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/interview-tracker/pkg/ports"
)

type HTTPHandler struct {
	service ports.QuestionService
	views   *Views
	flash   *Flasher
	logger  *zap.Logger
	now     func() time.Time
}

func NewHTTPHandler(service ports.QuestionService, flash *Flasher, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		views:   NewViews(),
		flash:   flash,
		logger:  logger,
		now:     time.Now,
	}
}

type formView struct {
	ID           int64
	Action       string
	Input        domain.QuestionInput
	Errors       *domain.ValidationError
	Difficulties []string
}

// Invalid reports whether field failed validation, for form styling.
func (f formView) Invalid(field string) bool {
	return f.Errors != nil && f.Errors.Has(field)
}

type listView struct {
	Questions    []domain.Question
	Options      domain.FilterOptions
	Filter       domain.Filter
	Difficulties []string
}

type statsView struct {
	Stats   *domain.Stats
	Buckets []domain.DifficultyCount
}

type toggleResponse struct {
	OK     bool `json:"ok"`
	Solved bool `json:"solved"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// parseQuestionForm reads the question fields from a submitted form.
// The solved checkbox counts as true whenever it is present.
func parseQuestionForm(r *http.Request) (domain.QuestionInput, error) {
	if err := r.ParseForm(); err != nil {
		return domain.QuestionInput{}, err
	}
	_, solved := r.PostForm["solved"]
	return domain.QuestionInput{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		Solution:    r.PostForm.Get("solution"),
		Difficulty:  r.PostForm.Get("difficulty"),
		Company:     r.PostForm.Get("company"),
		Tags:        r.PostForm.Get("tags"),
		Solved:      solved,
	}, nil
}

func parseFilter(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		Search:     q.Get("q"),
		Difficulty: q.Get("difficulty"),
		Company:    q.Get("company"),
		Tag:        q.Get("tag"),
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// Index shows the progress summary
func (h *HTTPHandler) Index(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "index", "Home", stats)
}

// Stats shows the summary plus the difficulty chart
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "stats", "Statistics", statsView{Stats: stats, Buckets: stats.Buckets()})
}

// AddForm shows an empty question form
func (h *HTTPHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "form", "Add Question", formView{Action: "/add", Difficulties: domain.DifficultyChoices()})
}

// Add creates a question, or re-renders the form when a field is missing
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	in, err := parseQuestionForm(r)
	if err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	q, err := h.service.Create(r.Context(), in)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		view := formView{Action: "/add", Input: in, Errors: verr, Difficulties: domain.DifficultyChoices(in.Difficulty)}
		h.renderWithFlash(w, r, http.StatusOK, "form", "Add Question", view, &Flash{Category: "danger", Message: "All fields are required."})
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.log(r).Info("question created", zap.Int64("id", q.ID))
	h.setFlash(w, r, "success", "Question added.")
	http.Redirect(w, r, "/questions", http.StatusFound)
}

// List shows the filtered questions
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	res, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "list", "Questions", listView{
		Questions:    res.Questions,
		Options:      res.Options,
		Filter:       filter,
		Difficulties: domain.DifficultyChoices(append(res.Options.Difficulties, filter.Difficulty)...),
	})
}

// EditForm shows a stored question
func (h *HTTPHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	q, err := h.service.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "form", "Edit Question", formView{
		ID:     q.ID,
		Action: fmt.Sprintf("/edit/%d", q.ID),
		Input: domain.QuestionInput{
			Title:       q.Title,
			Description: q.Description,
			Solution:    q.Solution,
			Difficulty:  q.Difficulty,
			Company:     q.Company,
			Tags:        q.Tags,
			Solved:      q.Solved,
		},
		Difficulties: domain.DifficultyChoices(q.Difficulty),
	})
}

// Edit saves all fields of a stored question
func (h *HTTPHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	in, err := parseQuestionForm(r)
	if err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	_, err = h.service.Update(r.Context(), id, in)
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		view := formView{ID: id, Action: fmt.Sprintf("/edit/%d", id), Input: in, Errors: verr, Difficulties: domain.DifficultyChoices(in.Difficulty)}
		h.renderWithFlash(w, r, http.StatusOK, "form", "Edit Question", view, &Flash{Category: "danger", Message: "All fields are required."})
		return
	case errors.Is(err, domain.ErrNotFound):
		h.notFound(w, r)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	h.log(r).Info("question updated", zap.Int64("id", id))
	h.setFlash(w, r, "success", "Question updated.")
	http.Redirect(w, r, "/questions", http.StatusFound)
}

// Delete removes a question; deleting a missing id still succeeds
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, ok := parseID(r); ok {
		if err := h.service.Delete(r.Context(), id); err != nil {
			h.serverError(w, r, err)
			return
		}
		h.log(r).Info("question deleted", zap.Int64("id", id))
	}

	h.setFlash(w, r, "success", "Question deleted.")
	http.Redirect(w, r, "/questions", http.StatusFound)
}

// ToggleSolved flips the solved flag and reports the new value as JSON
func (h *HTTPHandler) ToggleSolved(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondJSON(w, http.StatusNotFound, errorResponse{OK: false, Error: "Not found"})
		return
	}

	solved, err := h.service.ToggleSolved(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, errorResponse{OK: false, Error: "Not found"})
		return
	}
	if err != nil {
		h.log(r).Error("toggle solved failed", zap.Int64("id", id), zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, errorResponse{OK: false, Error: "Internal error"})
		return
	}

	respondJSON(w, http.StatusOK, toggleResponse{OK: true, Solved: solved})
}

// Export streams every question as a CSV attachment
func (h *HTTPHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("questions_%s.csv", h.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	// Rows are already on the wire when a late error occurs, so it can only be logged.
	if err := h.service.ExportCSV(r.Context(), w); err != nil {
		h.log(r).Error("export failed", zap.Error(err))
	}
}

// Random redirects to a random question, or to the add form when there are none
func (h *HTTPHandler) Random(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.RandomID(r.Context())
	if errors.Is(err, domain.ErrNotFound) {
		h.setFlash(w, r, "info", "No questions yet. Add one first.")
		http.Redirect(w, r, "/add", http.StatusFound)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/edit/%d", id), http.StatusFound)
}

// APIList returns the filtered questions as JSON
func (h *HTTPHandler) APIList(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.List(r.Context(), parseFilter(r))
	if err != nil {
		h.log(r).Error("list failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// APIStats returns the summary statistics as JSON
func (h *HTTPHandler) APIStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.log(r).Error("stats failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":         stats.Total,
		"solved":        stats.Solved,
		"unsolved":      stats.Unsolved,
		"by_difficulty": stats.ByDifficulty,
		"buckets":       stats.Buckets(),
	})
}

func (h *HTTPHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.setFlash(w, r, "warning", "Question not found.")
	http.Redirect(w, r, "/questions", http.StatusFound)
}

// setFlash queues a notice for the next page. A failure only loses the
// notice, so it is logged and the request carries on.
func (h *HTTPHandler) setFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	if err := h.flash.Set(w, category, message); err != nil {
		h.log(r).Warn("flash not set", zap.String("category", category), zap.Error(err))
	}
}

func (h *HTTPHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log(r).Error("request failed", zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (h *HTTPHandler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data interface{}) {
	h.renderWithFlash(w, r, status, name, title, data, h.flash.Pop(w, r))
}

func (h *HTTPHandler) renderWithFlash(w http.ResponseWriter, r *http.Request, status int, name, title string, data interface{}, flash *Flash) {
	if err := h.views.Render(w, status, name, page{Title: title, Flash: flash, Data: data}); err != nil {
		h.serverError(w, r, err)
	}
}

// log returns the handler logger tagged with the request id.
func (h *HTTPHandler) log(r *http.Request) *zap.Logger {
	if id := RequestIDFrom(r.Context()); id != "" {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

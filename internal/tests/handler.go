package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"autoschool/internal/auth"
	"autoschool/internal/httputil"

	"github.com/gorilla/mux"
)

const maxUploadSize = 10 << 20 // 10 MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func testID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	test, err := h.service.Create(requester, req)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, test)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tests, err := h.service.List(requester)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, tests)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := testID(r)
	if !ok {
		http.Error(w, "Invalid test id", http.StatusBadRequest)
		return
	}

	test, err := h.service.Get(requester, id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, test)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := testID(r)
	if !ok {
		http.Error(w, "Invalid test id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Message(w, http.StatusOK, "Test deleted")
}

// AddQuestion accepts a multipart form with a required "text" field and an
// optional "image" file.
func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := testID(r)
	if !ok {
		http.Error(w, "Invalid test id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.JSON(w, http.StatusBadRequest, map[string]string{"error": "question text is required"})
		return
	}

	var (
		file     io.Reader
		filename string
	)
	if f, header, err := r.FormFile("image"); err == nil {
		defer f.Close()
		file = f
		filename = header.Filename
	}

	question, err := h.service.AddQuestion(id, r.FormValue("text"), filename, file)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, question)
}

func (h *Handler) AddAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := testID(r)
	if !ok {
		http.Error(w, "Invalid test id", http.StatusBadRequest)
		return
	}

	var req AddAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	answer, err := h.service.AddAnswer(id, req)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, answer)
}

type submitRequest struct {
	Answers map[string]uint `json:"answers"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := testID(r)
	if !ok {
		http.Error(w, "Invalid test id", http.StatusBadRequest)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.service.Submit(requester, id, req.Answers)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, result)
}

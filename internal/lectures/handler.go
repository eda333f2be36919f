package lectures

import (
	"encoding/json"
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

func lectureID(r *http.Request) (uint, bool) {
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

	var req CreateLectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	lecture, err := h.service.Create(requester, req)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, lecture)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	lectures, err := h.service.List(requester)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, lectures)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := lectureID(r)
	if !ok {
		http.Error(w, "Invalid lecture id", http.StatusBadRequest)
		return
	}

	lecture, err := h.service.Get(requester, id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, lecture)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := lectureID(r)
	if !ok {
		http.Error(w, "Invalid lecture id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Message(w, http.StatusOK, "Lecture deleted")
}

// AddImage accepts a multipart form with an "image" file field and an
// optional "caption".
func (h *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	id, ok := lectureID(r)
	if !ok {
		http.Error(w, "Invalid lecture id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.JSON(w, http.StatusBadRequest, map[string]string{"error": "an image file is required"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.JSON(w, http.StatusBadRequest, map[string]string{"error": "an image file is required"})
		return
	}
	defer file.Close()

	image, err := h.service.AddImage(id, header.Filename, file, r.FormValue("caption"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, image)
}

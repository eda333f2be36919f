package groups

import (
	"encoding/json"
	"net/http"
	"strconv"

	"autoschool/internal/httputil"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func groupID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

type studentRequest struct {
	StudentID uint `json:"student_id"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	group, err := h.service.Create(req)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, group)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.List()
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, groups)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := groupID(r)
	if !ok {
		http.Error(w, "Invalid group id", http.StatusBadRequest)
		return
	}

	group, err := h.service.Get(id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, group)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := groupID(r)
	if !ok {
		http.Error(w, "Invalid group id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Message(w, http.StatusOK, "Group deleted")
}

func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := groupID(r)
	if !ok {
		http.Error(w, "Invalid group id", http.StatusBadRequest)
		return
	}

	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	created, err := h.service.AddStudent(id, req.StudentID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if created {
		httputil.Message(w, http.StatusCreated, "Student added to group")
		return
	}
	httputil.Message(w, http.StatusOK, "Student is already in the group")
}

func (h *Handler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := groupID(r)
	if !ok {
		http.Error(w, "Invalid group id", http.StatusBadRequest)
		return
	}

	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveStudent(id, req.StudentID); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Message(w, http.StatusOK, "Student removed from group")
}

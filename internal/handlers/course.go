package handlers

import (
	"encoding/json"
	"net/http"

	"gollmf-backend/internal/models"
)

type courseService interface {
	Course() (*models.CourseResponse, error)
	ScoreHole(req models.ScoreRequest) (*models.HoleScore, error)
}

type CourseHandler struct {
	courses courseService
}

func NewCourseHandler(courses courseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courses.Course()
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req models.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidBody))
		return
	}

	score, err := h.courses.ScoreHole(req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, score)
}

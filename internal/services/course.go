package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gollmf-backend/internal/models"
)

// LoadCourse reads a course definition from a JSON file.
func LoadCourse(path string) (*models.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course file: %w", err)
	}

	var course models.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("failed to parse course file: %w", err)
	}
	if len(course.Holes) == 0 {
		return nil, fmt.Errorf("course %q has no holes", course.CourseName)
	}

	return &course, nil
}

// CourseService scores holes against a course loaded at startup. A nil
// course means none is available.
type CourseService struct {
	course *models.Course
}

func NewCourseService(course *models.Course) *CourseService {
	return &CourseService{course: course}
}

func (s *CourseService) Course() (*models.CourseResponse, error) {
	if s.course == nil {
		return nil, &NotFoundError{Message: "Course not available"}
	}

	par := 0
	for _, h := range s.course.Holes {
		par += h.Par
	}
	return &models.CourseResponse{Course: *s.course, CoursePar: par}, nil
}

// ScoreHole counts every word the player used, adds a stroke per trap word
// and checks whether the reply contains the target phrase.
func (s *CourseService) ScoreHole(req models.ScoreRequest) (*models.HoleScore, error) {
	if s.course == nil {
		return nil, &NotFoundError{Message: "Course not available"}
	}

	hole, ok := s.findHole(req.HoleNumber)
	if !ok {
		return nil, &ValidationError{Message: "Invalid hole number"}
	}

	words := 0
	trapHits := []string{}
	for _, prompt := range req.Prompts {
		fields := strings.Fields(prompt)
		words += len(fields)
		trapHits = append(trapHits, matchTraps(fields, hole.Traps)...)
	}

	score := words + len(trapHits)
	return &models.HoleScore{
		HoleNumber:   hole.HoleNumber,
		TargetPhrase: hole.TargetPhrase,
		Par:          hole.Par,
		Success:      ContainsTarget(req.Response, hole.TargetPhrase),
		WordCount:    words,
		TrapHits:     trapHits,
		Score:        score,
		ScoreToPar:   score - hole.Par,
	}, nil
}

func (s *CourseService) findHole(number int) (models.Hole, bool) {
	for _, h := range s.course.Holes {
		if h.HoleNumber == number {
			return h, true
		}
	}
	return models.Hole{}, false
}

// ContainsTarget reports whether response contains target, ignoring case.
func ContainsTarget(response, target string) bool {
	if target == "" {
		return false
	}
	return strings.Contains(strings.ToLower(response), strings.ToLower(target))
}

func matchTraps(words, traps []string) []string {
	if len(traps) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(traps))
	for _, t := range traps {
		set[strings.ToLower(t)] = struct{}{}
	}

	var hits []string
	for _, w := range words {
		norm := strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		}))
		if _, ok := set[norm]; ok {
			hits = append(hits, norm)
		}
	}
	return hits
}

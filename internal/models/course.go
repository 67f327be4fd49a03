package models

// Course is a set of holes, each asking the player to make the model
// say a target phrase.
type Course struct {
	CourseName  string `json:"courseName"`
	Description string `json:"description"`
	Holes       []Hole `json:"holes"`
}

type Hole struct {
	HoleNumber   int      `json:"holeNumber"`
	Description  string   `json:"description"`
	TargetPhrase string   `json:"targetPhrase"`
	Par          int      `json:"par"`
	Traps        []string `json:"traps,omitempty"`
}

// CourseResponse is a course as served to the front end.
type CourseResponse struct {
	Course
	CoursePar int `json:"coursePar"`
}

// ScoreRequest carries the prompts a player used on one hole and the
// model's final reply.
type ScoreRequest struct {
	HoleNumber int      `json:"holeNumber"`
	Prompts    []string `json:"prompts"`
	Response   string   `json:"response"`
}

type HoleScore struct {
	HoleNumber   int      `json:"holeNumber"`
	TargetPhrase string   `json:"targetPhrase"`
	Par          int      `json:"par"`
	Success      bool     `json:"success"`
	WordCount    int      `json:"wordCount"`
	TrapHits     []string `json:"trapHits"`
	Score        int      `json:"score"`
	ScoreToPar   int      `json:"scoreToPar"`
}

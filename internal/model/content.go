package model

// Testimonial is a customer quote shown on the landing page.
type Testimonial struct {
	ID         int64  `json:"id"`
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
	Position   int    `json:"position"`
}

// FAQ is a question/answer pair.
type FAQ struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// TeamMember is shown on the about page. Image is an object storage key.
type TeamMember struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Image     string `json:"image"`
	JobTitle  string `json:"job_title"`
	Position  int    `json:"position"`
}

type TestimonialView struct {
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
}

type FAQView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type TeamMemberView struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Image     *string `json:"image"`
	JobTitle  string  `json:"job_title"`
}

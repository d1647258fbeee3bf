// Package resume is the static content store backing the portfolio site.
//
// The data is compiled into the binary, loaded once, and never mutated. It is
// served to the frontend as JSON and rendered to plain text for the embedding
// indexer.
package resume

// Profile is the fixed-shape resume record.
type Profile struct {
	Name        string `json:"name"`
	Initials    string `json:"initials"`
	URL         string `json:"url"`
	Location    string `json:"location"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	Summary     string `json:"summary"`

	PersonalPhilosophy string   `json:"personalPhilosophy"`
	ValuesAndBeliefs   string   `json:"valuesAndBeliefs"`
	FunFacts           []string `json:"funFacts"`
	SoftSkills         string   `json:"softSkills"`
	Interests          string   `json:"interests"`

	Skills     []string `json:"skills"`
	Languages  []Skill  `json:"languages"`
	Frameworks []Skill  `json:"frameworks"`
	DevTools   []Skill  `json:"devTools"`

	Work      []Position  `json:"work"`
	Education []Education `json:"education"`
	Projects  []Project   `json:"projects"`

	Contact Contact `json:"contact"`
}

// Skill is a named technology with a short first-person description.
type Skill struct {
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Description string `json:"description"`
}

// Position is a single work-history entry.
type Position struct {
	Company     string `json:"company"`
	Href        string `json:"href,omitempty"`
	Location    string `json:"location"`
	Title       string `json:"title"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Href        string `json:"href,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

// Project is a portfolio project card. Video and Image are optional; the
// frontend falls back from video to image.
type Project struct {
	Title        string        `json:"title"`
	Href         string        `json:"href,omitempty"`
	Dates        string        `json:"dates"`
	Active       bool          `json:"active"`
	Description  string        `json:"description"`
	Technologies []string      `json:"technologies"`
	Links        []ProjectLink `json:"links,omitempty"`
	Image        string        `json:"image,omitempty"`
	Video        string        `json:"video,omitempty"`
}

// ProjectLink is an external link attached to a project card.
type ProjectLink struct {
	Type string `json:"type"`
	Href string `json:"href"`
}

// Contact holds the public contact channels.
type Contact struct {
	Email  string            `json:"email"`
	Social map[string]string `json:"social"` // name -> URL
}

// Data returns the resume record. The returned pointer refers to package-level
// immutable data; callers must not modify it.
func Data() *Profile {
	return &profile
}

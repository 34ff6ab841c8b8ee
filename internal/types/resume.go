// Package types provides type definitions for the resume record edited by the builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Resume is the single in-memory record behind the form, the preview and the PDF.
// List fields are never nil once the record has been normalized.
type Resume struct {
	Name            string      `json:"name"`
	Subtitle        string      `json:"subtitle"`
	Image           string      `json:"image,omitempty"` // data URI, empty when no image is set
	Phone           string      `json:"phone"`
	Email           string      `json:"email"`
	Address         string      `json:"address"`
	Links           []Link      `json:"links"`
	CareerObjective string      `json:"careerObjective"`
	Education       []Education `json:"education"`
	TechnicalSkills []string    `json:"technicalSkills"`
	Projects        []Project   `json:"projects"`
	Languages       []string    `json:"languages"`
}

// Link represents a named URL shown in the Links section
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Education represents one entry of the Education section
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Date        string `json:"date"`
}

// Project represents one entry of the Projects section
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Normalize replaces nil list fields with empty slices so every list is always present.
func (r *Resume) Normalize() {
	if r.Links == nil {
		r.Links = []Link{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.TechnicalSkills == nil {
		r.TechnicalSkills = []string{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Languages == nil {
		r.Languages = []string{}
	}
}

// Clone returns a normalized deep copy of the record.
func (r Resume) Clone() Resume {
	out := r
	out.Links = append([]Link{}, r.Links...)
	out.Education = append([]Education{}, r.Education...)
	out.TechnicalSkills = append([]string{}, r.TechnicalSkills...)
	out.Projects = append([]Project{}, r.Projects...)
	out.Languages = append([]string{}, r.Languages...)
	return out
}

// HasImage reports whether a profile image is set
func (r Resume) HasImage() bool {
	return r.Image != ""
}

// DefaultResume returns the sample record the builder starts with.
func DefaultResume() Resume {
	return Resume{
		Name:     "Mohan Kumar",
		Subtitle: "Full Stack Developer (MERN and Flutter)",
		Phone:    "+91 1234567891",
		Email:    "mohankumaronly81@@mail.com",
		Address:  "Karnataka, India",
		Links: []Link{
			{Name: "Portfolio", URL: "www.behance.net/mohan"},
			{Name: "Website", URL: "www.mohan.com"},
			{Name: "LinkedIn", URL: "www.linkedin.com/in/mohan"},
		},
		CareerObjective: "Enthusiastic and adaptable software developer with a strong foundation in MERN stack " +
			"(MongoDB, Express.js, React.js, Node.js), Flutter, and C++ programming. Skilled in designing and " +
			"building responsive web and mobile applications, with a focus on clean code, performance, and user " +
			"experience. Hands-on experience in using GitHub and GitHub Actions for version control and automation, " +
			"ensuring smooth collaboration and continuous integration. Proficient in Postman for API testing and " +
			"debugging, and familiar with Figma for creating and improving user interface designs. Recognized for " +
			"strong problem-solving abilities, logical thinking, and teamwork skills, with the ability to learn and " +
			"adapt quickly in fast-paced environments. Passionate about building scalable, efficient, and impactful " +
			"software solutions. Currently seeking an entry-level software developer role where I can apply technical " +
			"expertise, contribute to innovative projects, and continue to grow as a developer while adding value to " +
			"the organization.",
		Education: []Education{
			{Degree: "Bachelor of Technology in Computer Science", Institution: "Sunshine Engineering College, Mumbai, Maharashtra", Date: "May 2022"},
			{Degree: "Higher Secondary Education (12th Grade)", Institution: "Golden Valley Senior Secondary School, Pune, Maharashtra", Date: "May 2018"},
			{Degree: "Secondary Education (10th Grade)", Institution: "Bright Horizon Middle School, Pune, Maharashtra", Date: "May 2016"},
		},
		TechnicalSkills: []string{
			"Computer Skills",
			"Internet Browsing",
			"Email Communication",
			"File Management",
		},
		Projects: []Project{
			{Title: "Portfolio Website Design", Description: "Designed and developed a personal portfolio website to showcase my graphic design work. Utilized HTML, CSS, and JavaScript for a responsive and visually appealing user experience."},
			{Title: "Brand Identity for a Startup", Description: "Created a complete brand identity for a new tech startup, including a logo, color palette, typography, and style guide. The design helped establish a consistent and professional brand image."},
		},
		Languages: []string{"Hindi", "English", "French"},
	}
}

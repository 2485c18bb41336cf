package web

import (
	"html/template"
	"strings"

	"github.com/Nixie-Tech-LLC/naulin/internal/content"
)

const (
	SchoolName = "Shree Naulin Secondary School"
	// DefaultPortrait is shown when the principal message carries no image.
	DefaultPortrait = "/assets/generated/principal-portrait.dim_400x500.jpg"
)

type NavLink struct {
	Label  string
	Anchor string
}

type Stat struct {
	Value string
	Label string
}

type Program struct {
	Title    string
	Grades   string
	Tagline  string
	Subjects []string
}

type Step struct {
	Number      string
	Title       string
	Description string
}

// ContactInfo is the fixed contact block next to the form.
type ContactInfo struct {
	Address string
	Phone   string
	Email   string
	Hours   string
	MapNote string
}

// Site is the static copy of the page. None of it comes from the provider.
type Site struct {
	Name       string
	Nav        []NavLink
	HeroStats  []Stat
	AboutStats []Stat
	Programs   []Program
	Steps      []Step
	Contact    ContactInfo
	QuickLinks []NavLink
}

var site = Site{
	Name: SchoolName,
	Nav: []NavLink{
		{Label: "About Us", Anchor: "about"},
		{Label: "Academics", Anchor: "academics"},
		{Label: "Admissions", Anchor: "admissions"},
		{Label: "Contact", Anchor: "contact"},
	},
	HeroStats: []Stat{
		{Value: "1200+", Label: "Students"},
		{Value: "80+", Label: "Faculty Members"},
		{Value: "38+", Label: "Years of Excellence"},
		{Value: "98%", Label: "Pass Rate"},
	},
	AboutStats: []Stat{
		{Value: "1,200+", Label: "Students Enrolled"},
		{Value: "80+", Label: "Dedicated Faculty"},
		{Value: "38+", Label: "Years of Excellence"},
		{Value: "98%", Label: "Annual Pass Rate"},
	},
	Programs: []Program{
		{
			Title:   "Primary School",
			Grades:  "Grades 1 – 5",
			Tagline: "Foundation for lifelong learning",
			Subjects: []string{
				"Nepali Language & Literature",
				"English Language",
				"Mathematics",
				"Environmental Science",
				"Social Studies",
				"Health & Physical Education",
				"Arts & Crafts",
				"Computer Fundamentals",
			},
		},
		{
			Title:   "Middle School",
			Grades:  "Grades 6 – 8",
			Tagline: "Building critical thinking",
			Subjects: []string{
				"Nepali & English Literature",
				"Advanced Mathematics",
				"General Science",
				"Social Studies & History",
				"Sanskrit / Optional Language",
				"Computer Science",
				"Physical Education",
				"Creative Arts",
			},
		},
		{
			Title:   "Secondary School",
			Grades:  "Grades 9 – 12",
			Tagline: "SLC & Higher Secondary preparation",
			Subjects: []string{
				"Physics, Chemistry & Biology",
				"Advanced Mathematics",
				"Nepali & English",
				"Computer Science / Accounting",
				"Social Studies & Economics",
				"Optional Mathematics",
				"EPH / Population Education",
				"Board Exam Preparation",
			},
		},
	},
	Steps: []Step{
		{Number: "01", Title: "Apply Online", Description: "Complete our simple online application form with your basic information and documents."},
		{Number: "02", Title: "Document Verification", Description: "Submit required documents: birth certificate, previous marksheets, and character certificate."},
		{Number: "03", Title: "Entrance Test", Description: "Appear for a grade-appropriate entrance test to assess your academic readiness."},
		{Number: "04", Title: "Admission Confirmation", Description: "Receive your offer letter and complete enrollment by paying the fee within the deadline."},
	},
	Contact: ContactInfo{
		Address: "Naulin, Sindhupalchok District, Bagmati Province, Nepal",
		Phone:   "+977-11-420XXX / +977-98XXXXXXXX",
		Email:   "info@shreenaulin.edu.np",
		Hours:   "Sun – Fri: 9:00 AM – 4:30 PM (Nepal Time)",
		MapNote: "Naulin, Sindhupalchok",
	},
	QuickLinks: []NavLink{
		{Label: "About Us", Anchor: "about"},
		{Label: "Academics", Anchor: "academics"},
		{Label: "Admissions", Anchor: "admissions"},
		{Label: "Facilities", Anchor: "facilities"},
		{Label: "Latest News", Anchor: "news"},
		{Label: "Contact", Anchor: "contact"},
	},
}

// IndexPageData is everything index.html renders.
type IndexPageData struct {
	Site       Site
	Message    content.MessageSection
	Portrait   string
	News       content.NewsSection
	Facilities content.FacilitiesSection

	// Refresh asks the browser to reload while a section is still pending.
	Refresh int

	Sent          bool
	NoticeSeconds int
	Form          ContactFormView
	ContactError  string

	Year int
}

// ContactFormView echoes the submitted values back after a rejected submit.
type ContactFormView struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func portraitFor(s content.MessageSection) string {
	if s.Message.ImageURL != "" {
		return s.Message.ImageURL
	}
	return DefaultPortrait
}

// paragraphs splits the principal message on blank lines.
func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var funcs = template.FuncMap{
	"paragraphs": paragraphs,
}

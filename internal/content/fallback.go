package content

import "github.com/Nixie-Tech-LLC/naulin/internal/model"

// NewsErrorNotice is shown above the news grid when articles could not be loaded.
const NewsErrorNotice = "Failed to load news. Please try again later."

var fallbackArticles = []model.NewsArticle{
	{
		ID:               1,
		Category:         "Academic",
		Date:             "March 15, 2026",
		Title:            "Annual Science Exhibition 2026 Showcases Student Innovation",
		ShortDescription: "Students from grades 9-12 presented groundbreaking science projects at this year's annual exhibition, impressing judges with their creativity and scientific rigor.",
	},
	{
		ID:               2,
		Category:         "Sports",
		Date:             "February 28, 2026",
		Title:            "Naulin School Wins District Football Championship",
		ShortDescription: "Our school football team brought pride to the institution by clinching the district-level championship title after a thrilling final match.",
	},
	{
		ID:               3,
		Category:         "Admissions",
		Date:             "February 10, 2026",
		Title:            "Enrollment Open for Academic Year 2026-27",
		ShortDescription: "Applications are now being accepted for the upcoming academic year across all grades. Early bird scholarship opportunities available for meritorious students.",
	},
}

var fallbackFacilities = []model.Facility{
	{ID: 1, Name: "Science Laboratory", Description: "Fully equipped physics, chemistry and biology labs for hands-on learning.", IconName: "science"},
	{ID: 2, Name: "Digital Library", Description: "Extensive collection of books, journals, and e-resources for research.", IconName: "library"},
	{ID: 3, Name: "Computer Center", Description: "Modern computer lab with high-speed internet for digital literacy.", IconName: "computer"},
	{ID: 4, Name: "Sports Ground", Description: "Multi-purpose sports facilities for football, basketball, and athletics.", IconName: "sports"},
	{ID: 5, Name: "School Auditorium", Description: "700-seat auditorium for cultural events, debates, and performances.", IconName: "auditorium"},
	{ID: 6, Name: "Health Center", Description: "On-site medical room with qualified nurse and first-aid facilities.", IconName: "medical"},
	{ID: 7, Name: "Smart Classrooms", Description: "Interactive display boards and modern AV equipment for dynamic learning.", IconName: "smart"},
	{ID: 8, Name: "School Canteen", Description: "Hygienic, nutritious meals and snacks served in a welcoming dining hall.", IconName: "canteen"},
}

var fallbackMessage = model.PrincipalMessage{
	Title:    "Principal",
	Name:     "Mr. Ramesh Kumar Sharma",
	ImageURL: "/assets/generated/principal-portrait.dim_400x500.jpg",
	Message:  "At Shree Naulin Secondary School, we believe every child carries within them the seeds of greatness. Our mission is to create an environment where curiosity flourishes, character is built, and dreams take flight. For over three decades, we have been privileged to guide thousands of young minds toward their highest potential. Education is not merely the filling of a pail, but the lighting of a fire — and that sacred flame burns brightly here in the Himalayas.",
}

// FallbackArticles returns a copy of the built-in news articles.
func FallbackArticles() []model.NewsArticle {
	return append([]model.NewsArticle(nil), fallbackArticles...)
}

// FallbackFacilities returns a copy of the built-in facilities.
func FallbackFacilities() []model.Facility {
	return append([]model.Facility(nil), fallbackFacilities...)
}

func FallbackMessage() model.PrincipalMessage {
	return fallbackMessage
}

// DisplayArticles applies the collection fallback: fetched articles when there are any,
// the built-in set otherwise.
func DisplayArticles(r Result[[]model.NewsArticle]) []model.NewsArticle {
	if r.State == Loaded && len(r.Data) > 0 {
		return r.Data
	}
	return FallbackArticles()
}

func DisplayFacilities(r Result[[]model.Facility]) []model.Facility {
	if r.State == Loaded && len(r.Data) > 0 {
		return r.Data
	}
	return FallbackFacilities()
}

// DisplayMessage shows a loaded message as-is, even with empty fields.
// Only a failed load falls back.
func DisplayMessage(r Result[model.PrincipalMessage]) model.PrincipalMessage {
	if r.State == Loaded {
		return r.Data
	}
	return FallbackMessage()
}

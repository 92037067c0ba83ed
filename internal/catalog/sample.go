package catalog

// SampleBooks returns the bundled six-book dataset used whenever the backend
// is unreachable or returns nothing. Callers receive a fresh slice; the
// entries themselves are shared and must not be mutated.
func SampleBooks() []Book {
	books := make([]Book, len(sampleBooks))
	copy(books, sampleBooks)
	return books
}

// SampleCategories returns the bundled category palette.
func SampleCategories() []Category {
	cats := make([]Category, len(sampleCategories))
	copy(cats, sampleCategories)
	return cats
}

var sampleBooks = []Book{
	{
		ID:            "1",
		Title:         "The Psychology of Money",
		Author:        "Morgan Housel",
		CoverImage:    "https://m.media-amazon.com/images/I/71TRUbzcvaL._AC_UF1000,1000_QL80_.jpg",
		Category:      "Business",
		PublishedDate: "Sep 08, 2020",
		ISBN:          "9780857197689",
		Pages:         "256",
		Language:      "English",
		Description:   "Doing well with money isn't necessarily about what you know. It's about how you behave. In The Psychology of Money, award-winning author Morgan Housel shares 19 short stories exploring the strange ways people think about money.",
		Bestseller:    true,
	},
	{
		ID:            "2",
		Title:         "Company of One",
		Author:        "Paul Jarvis",
		CoverImage:    "https://m.media-amazon.com/images/I/71e5yHjPsZL._SL1500_.jpg",
		Category:      "Business",
		PublishedDate: "Jan 15, 2019",
		ISBN:          "9781328915870",
		Pages:         "272",
		Language:      "English",
		Description:   "What if the real key to a richer and more fulfilling career was not to create and scale a new business, but rather, to be able to work for yourself?",
		Bestseller:    false,
	},
	{
		ID:            "3",
		Title:         "How Innovation Works",
		Author:        "Matt Ridley",
		CoverImage:    "https://m.media-amazon.com/images/I/91hrgdN3J0L._SY466_.jpg",
		Category:      "Technology",
		PublishedDate: "May 19, 2020",
		ISBN:          "9780062916594",
		Pages:         "416",
		Language:      "English",
		Description:   "Innovation is the main event of the modern age, the reason we experience dramatic improvements in our living standards.",
		Bestseller:    true,
	},
	{
		ID:            "4",
		Title:         "The Picture of Dorian Gray",
		Author:        "Oscar Wilde",
		CoverImage:    "https://m.media-amazon.com/images/I/91R44SkY9wL._SY522_.jpg",
		Category:      "Classics",
		PublishedDate: "July 1, 1890",
		ISBN:          "9780141439570",
		Pages:         "250",
		Language:      "English",
		Description:   "Entropy and elegance collide in Oscar Wilde's masterpiece. Dorian Gray remains eternally young while his portrait ages hideously.",
		Bestseller:    false,
	},
	{
		ID:            "5",
		Title:         "Atomic Habits",
		Author:        "James Clear",
		CoverImage:    "https://m.media-amazon.com/images/I/81YkqyaFVEL._AC_UF1000,1000_QL80_.jpg",
		Category:      "Self-Help",
		PublishedDate: "Oct 16, 2018",
		ISBN:          "9780735211292",
		Pages:         "320",
		Language:      "English",
		Description:   "James Clear reveals practical strategies that will teach you exactly how to form good habits, break bad ones, and master the tiny behaviors that lead to remarkable results.",
		Bestseller:    true,
	},
	{
		ID:            "6",
		Title:         "The Subtle Art of Not Giving a F*ck",
		Author:        "Mark Manson",
		CoverImage:    "https://m.media-amazon.com/images/I/71QKQ9mwV7L._AC_UF1000,1000_QL80_.jpg",
		Category:      "Self-Help",
		PublishedDate: "Sep 13, 2016",
		ISBN:          "9780062457714",
		Pages:         "224",
		Language:      "English",
		Description:   "In this generation-defining self-help guide, a superstar blogger cuts through the crap to show us how to stop trying to be 'positive' all the time.",
		Bestseller:    true,
	},
}

var sampleCategories = []Category{
	{Name: "Business", Background: "#fff5eb", Foreground: "#8b4513"},
	{Name: "Technology", Background: "#f0f7ff", Foreground: "#2b6cb0"},
	{Name: "Self-Help", Background: "#f0fff4", Foreground: "#2f855a"},
	{Name: "Classics", Background: "#faf5ff", Foreground: "#6b46c1"},
	{Name: "Design", Background: "#fff5f7", Foreground: "#b83280"},
}

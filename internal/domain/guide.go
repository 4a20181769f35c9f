package domain

// MonthlyGuide summarises what to look for in a given month and hemisphere.
type MonthlyGuide struct {
	ID              int64
	Month           string
	Year            int
	Headline        string
	Content         string
	Hemisphere      string
	FeaturedObjects []int64
}

// TelescopeTip is read-only reference content.
type TelescopeTip struct {
	ID       int64
	Title    string
	Content  string
	Category string
	ImageURL string
}

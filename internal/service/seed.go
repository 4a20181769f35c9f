package service

import (
	"context"
	"fmt"

	"skyguide/internal/domain"
	"skyguide/internal/repository"
)

// Seed fills empty collections with the built-in catalog, guides and tips.
// Collections that already hold records are left alone.
func Seed(ctx context.Context, store *repository.Store) error {
	objects, err := store.Objects.List(ctx)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		for i := range seedObjects {
			obj := seedObjects[i]
			if _, err := store.Objects.Create(ctx, &obj); err != nil {
				return fmt.Errorf("seed celestial object %q: %w", obj.Name, err)
			}
		}
	}

	guides, err := store.Guides.List(ctx)
	if err != nil {
		return err
	}
	if len(guides) == 0 {
		for i := range seedGuides {
			guide := seedGuides[i]
			guide.FeaturedObjects = append([]int64(nil), guide.FeaturedObjects...)
			if _, err := store.Guides.Create(ctx, &guide); err != nil {
				return fmt.Errorf("seed monthly guide %q: %w", guide.Headline, err)
			}
		}
	}

	tips, err := store.Tips.List(ctx)
	if err != nil {
		return err
	}
	if len(tips) == 0 {
		for i := range seedTips {
			tip := seedTips[i]
			if _, err := store.Tips.Create(ctx, &tip); err != nil {
				return fmt.Errorf("seed telescope tip %q: %w", tip.Title, err)
			}
		}
	}
	return nil
}

var seedObjects = []domain.CelestialObject{
	{
		Name:                "Jupiter",
		Type:                domain.ObjectTypePlanet,
		Description:         "The largest planet in our solar system with visible bands and four bright moons.",
		Coordinates:         "Varies monthly",
		Month:               "April",
		BestViewingTime:     "Evening",
		ImageURL:            "https://science.nasa.gov/wp-content/uploads/2023/09/PIA21974.jpeg?w=1536&format=webp",
		VisibilityRating:    "Excellent",
		Information:         "Jupiter is easily visible with the naked eye and spectacular through a telescope. Look for the four Galilean moons and the Great Red Spot.",
		Constellation:       "Varies",
		Magnitude:           "-2.5",
		Hemisphere:          domain.HemisphereBoth,
		RecommendedEyepiece: "20mm - 10mm",
	},
	{
		Name:                "Saturn",
		Type:                domain.ObjectTypePlanet,
		Description:         "The ringed planet, a spectacular sight through any telescope.",
		Coordinates:         "Varies monthly",
		Month:               "April",
		BestViewingTime:     "Late Evening",
		ImageURL:            "https://science.nasa.gov/wp-content/uploads/2023/04/PIA26493-1-1.jpg?w=4096&format=webp",
		VisibilityRating:    "Excellent",
		Information:         "Saturn's rings are visible with even a small telescope. The best views come with higher magnification.",
		Constellation:       "Varies",
		Magnitude:           "0.5",
		Hemisphere:          domain.HemisphereBoth,
		RecommendedEyepiece: "10mm - 6mm",
	},
	{
		Name:                "Andromeda Galaxy (M31)",
		Type:                domain.ObjectTypeGalaxy,
		Description:         "The nearest major galaxy to our Milky Way.",
		Coordinates:         `RA 00h 42m 44s, Dec +41° 16' 08"`,
		Month:               "October",
		BestViewingTime:     "Evening in Fall/Winter",
		ImageURL:            "https://upload.wikimedia.org/wikipedia/commons/thumb/9/98/Andromeda_Galaxy_%28with_h-alpha%29.jpg/1280px-Andromeda_Galaxy_%28with_h-alpha%29.jpg",
		VisibilityRating:    "Good",
		Information:         "The Andromeda Galaxy is visible to the naked eye under dark skies and appears as a fuzzy patch. With a telescope, you can observe its shape and structure.",
		Constellation:       "Andromeda",
		Magnitude:           "3.4",
		Hemisphere:          domain.HemisphereNorthern,
		RecommendedEyepiece: "25mm - 20mm",
	},
	{
		Name:                "Orion Nebula (M42)",
		Type:                domain.ObjectTypeNebula,
		Description:         "A bright, young star-forming region visible to the naked eye.",
		Coordinates:         `RA 05h 35m 17s, Dec -05° 23' 28"`,
		Month:               "January",
		BestViewingTime:     "Winter Evenings",
		ImageURL:            "https://esahubble.org/media/archives/images/large/heic0601a.jpg",
		VisibilityRating:    "Excellent",
		Information:         "One of the brightest nebulae in the sky, located in Orion's Sword. Even small telescopes reveal its glowing gas and dust.",
		Constellation:       "Orion",
		Magnitude:           "4.0",
		Hemisphere:          domain.HemisphereBoth,
		RecommendedEyepiece: "25mm - 15mm",
	},
	{
		Name:                "Pleiades (M45)",
		Type:                domain.ObjectTypeStarCluster,
		Description:         "Also known as the Seven Sisters, a bright open star cluster.",
		Coordinates:         `RA 03h 47m 24s, Dec +24° 07' 00"`,
		Month:               "November",
		BestViewingTime:     "Fall and Winter Evenings",
		ImageURL:            "https://upload.wikimedia.org/wikipedia/commons/thumb/4/4e/Pleiades_large.jpg/1280px-Pleiades_large.jpg",
		VisibilityRating:    "Excellent",
		Information:         "Visible to the naked eye, this cluster contains hot blue stars surrounded by reflective nebulosity. Best viewed with low magnification.",
		Constellation:       "Taurus",
		Magnitude:           "1.6",
		Hemisphere:          domain.HemisphereBoth,
		RecommendedEyepiece: "32mm - 25mm",
	},
}

var seedGuides = []domain.MonthlyGuide{
	{
		Month:           "April",
		Year:            2025,
		Headline:        "April 2025 Viewing Guide - Northern Hemisphere",
		Content:         "April offers excellent views of the spring galaxies in Leo, Virgo, and Coma Berenices. The Lyrid meteor shower peaks around April 22nd. Jupiter and Saturn are visible in the evening sky.",
		Hemisphere:      domain.HemisphereNorthern,
		FeaturedObjects: []int64{1, 2},
	},
	{
		Month:           "April",
		Year:            2025,
		Headline:        "April 2025 Viewing Guide - Southern Hemisphere",
		Content:         "In April, the southern hemisphere offers excellent views of the Carina Nebula and the Southern Cross. The Large and Small Magellanic Clouds are also easily visible. Jupiter and Saturn are visible in the evening sky.",
		Hemisphere:      domain.HemisphereSouthern,
		FeaturedObjects: []int64{1, 2},
	},
}

var seedTips = []domain.TelescopeTip{
	{
		Title:    "Collimating Your Dobsonian",
		Content:  "Proper collimation is essential for getting the best views through your Dobsonian telescope. Use a collimation cap or laser collimator to align your mirrors. Check collimation at the beginning of each observing session for best results.",
		Category: "maintenance",
		ImageURL: "https://images.unsplash.com/photo-1619451683204-6d4834e28fb8?auto=format&fit=crop&w=800&h=500",
	},
	{
		Title:    "Using Eyepieces Effectively",
		Content:  "Start with a low-power eyepiece (25mm or higher) to locate objects, then switch to higher magnification to see details. Remember that the smaller the mm number, the higher the magnification. For most 8-inch Dobsonians, avoid going beyond 200x magnification as image quality will degrade.",
		Category: "observing",
		ImageURL: "https://images.unsplash.com/photo-1463693396521-8f2734431f99?auto=format&fit=crop&w=800&h=500",
	},
	{
		Title:    "Dark Adaptation",
		Content:  "Allow your eyes at least 20-30 minutes to fully adapt to darkness. Use a red flashlight to preserve your night vision. Avoid looking at phone screens or white lights during your observing session.",
		Category: "observing",
		ImageURL: "https://images.unsplash.com/photo-1444703686981-a3abbc4d4fe3?auto=format&fit=crop&w=800&h=500",
	},
}

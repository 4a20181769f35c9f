package domain

// ImageSource names where a resolved image came from.
type ImageSource string

const (
	ImageSourceNone      ImageSource = ""
	ImageSourceNASA      ImageSource = "nasa"
	ImageSourceWikipedia ImageSource = "wikipedia"
)

// ImageMetadata describes the item an image was taken from.
type ImageMetadata struct {
	Title       string
	Description string
	DateCreated string
	Center      string
	AssetID     string
}

// ImageResult is the outcome of resolving an image for a free-text object name.
// Failures are reported through Success and Error, never as a Go error.
type ImageResult struct {
	Success    bool
	ObjectName string
	ImageURL   string
	Source     ImageSource
	Metadata   ImageMetadata
	Error      string
}

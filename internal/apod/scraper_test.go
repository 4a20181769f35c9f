package apod

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyguide/internal/domain"
)

const imagePage = `<html>
<head><title> APOD: 2024 January 5 - Orion Deep
</title></head>
<body>
<center>
<h1>Astronomy Picture of the Day</h1>
<p>2024 January 5<br>
<a href="image/2401/orion_big.jpg"><img src="image/2401/orion_1024.jpg" alt="Orion"></a>
</center>
<center>
<b> Orion Deep </b><br>
<b>Image Credit &amp; Copyright:</b> <a href="https://example.com">Jane Doe</a>
</center>
<p><b> Explanation: </b> Dust and
   gas in    Orion.</p>
<p>Stars are forming there.</p>
</body>
</html>`

const videoPage = `<html>
<head><title>APOD: 1999 March 3 - Launch</title></head>
<body>
<center><iframe width="960" height="540" src="https://www.youtube.com/embed/abc123"></iframe></center>
<p>Explanation: A rocket lifts off. Credit: Space Agency
</p>
</body>
</html>`

const emptyPage = `<html><head><title>APOD: nothing</title></head><body><p>No picture today.</p></body></html>`

func TestParsePageImage(t *testing.T) {
	got, err := parsePage(strings.NewReader(imagePage), "https://apod.nasa.gov/apod/ap240105.html")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-05", got.Date)
	assert.Equal(t, "Orion Deep", got.Title)
	assert.Equal(t, "image", got.MediaType)
	assert.Equal(t, "https://apod.nasa.gov/apod/image/2401/orion_1024.jpg", got.URL)
	assert.Equal(t, "https://apod.nasa.gov/apod/image/2401/orion_big.jpg", got.HDURL)
	assert.Equal(t, "Dust and gas in Orion. Stars are forming there.", got.Explanation)
	assert.Equal(t, "Jane Doe", got.Copyright)
	assert.Equal(t, "v1", got.ServiceVersion)
}

func TestParsePageVideo(t *testing.T) {
	got, err := parsePage(strings.NewReader(videoPage), "https://apod.nasa.gov/apod/ap990303.html")
	require.NoError(t, err)

	assert.Equal(t, "1999-03-03", got.Date)
	assert.Equal(t, "Launch", got.Title)
	assert.Equal(t, "video", got.MediaType)
	assert.Equal(t, "https://www.youtube.com/embed/abc123", got.URL)
	assert.Empty(t, got.HDURL)
	assert.Equal(t, "A rocket lifts off. Credit: Space Agency", got.Explanation)
	assert.Equal(t, "Space Agency", got.Copyright)
}

func TestParsePageWithoutMedia(t *testing.T) {
	_, err := parsePage(strings.NewReader(emptyPage), "https://apod.nasa.gov/apod/ap240105.html")
	assert.ErrorIs(t, err, ErrNoMedia)
}

const undatedTitlePage = `<html>
<head><title>APOD: Comet C/2023 - A3 Rising</title></head>
<body>
<center><img src="image/2410/comet.jpg"></center>
<center><b>Credit:</b> Jane Doe</center><center>Tomorrow's picture: dark skies</center>
</body>
</html>`

func TestParsePageTitleWithoutDate(t *testing.T) {
	got, err := parsePage(strings.NewReader(undatedTitlePage), "https://apod.nasa.gov/apod/ap241012.html")
	require.NoError(t, err)

	assert.Equal(t, "Comet C/2023 - A3 Rising", got.Title)
	assert.Equal(t, "Jane Doe", got.Copyright)
}

func TestIsPageDate(t *testing.T) {
	assert.True(t, isPageDate("2024 January 5"))
	assert.True(t, isPageDate(" 1999 March 03 "))
	assert.False(t, isPageDate("Comet C/2023"))
	assert.False(t, isPageDate(""))
}

func TestDateFromPageURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://apod.nasa.gov/apod/ap240105.html", "2024-01-05"},
		{"https://apod.nasa.gov/apod/ap950616.html", "1995-06-16"},
		{"https://apod.nasa.gov/apod/ap001231.html", "2000-12-31"},
		{"https://apod.nasa.gov/apod/astropix.html", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, dateFromPageURL(tt.url))
		})
	}
}

func TestScraperFetchToday(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apod/astropix.html", r.URL.Path)
		_, _ = w.Write([]byte(imagePage))
	}))
	defer srv.Close()

	scraper := NewScraper(ScraperConfig{
		BaseURL: srv.URL,
		Now:     func() time.Time { return time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC) },
	})
	got, err := scraper.Fetch(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "2025-04-12", got.Date)
	assert.Equal(t, srv.URL+"/apod/image/2401/orion_1024.jpg", got.URL)
}

func TestScraperFetchMissingPage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewScraper(ScraperConfig{BaseURL: srv.URL}).Fetch(context.Background(), "2024-01-05")

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusNotFound, upstream.HTTPStatus())
}

func TestScraperFetchRangeSkipsFailingDays(t *testing.T) {
	var (
		mu        sync.Mutex
		requested []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/apod/ap240101.html", "/apod/ap240103.html":
			_, _ = w.Write([]byte(imagePage))
		case "/apod/ap240102.html":
			_, _ = w.Write([]byte(emptyPage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	scraper := NewScraper(ScraperConfig{BaseURL: srv.URL})
	records, err := scraper.FetchRange(context.Background(), "2024-01-01", "2024-01-04")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"/apod/ap240101.html",
		"/apod/ap240102.html",
		"/apod/ap240103.html",
		"/apod/ap240104.html",
	}, requested)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-01", records[0].Date)
	assert.Equal(t, "2024-01-03", records[1].Date)
}

func TestScraperFetchRangeValidation(t *testing.T) {
	scraper := NewScraper(ScraperConfig{BaseURL: "http://127.0.0.1:0"})

	tests := []struct {
		name       string
		start, end string
		contains   string
	}{
		{"end before start", "2024-02-01", "2024-01-01", "must not be before start_date"},
		{"span too long", "2024-01-01", "2024-03-01", "at most 30 days"},
		{"bad start", "2024/01/01", "2024-01-02", "YYYY-MM-DD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scraper.FetchRange(context.Background(), tt.start, tt.end)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

package imagesearch

import (
	"context"
	"net/url"
	"slices"
)

type wikiResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

type wikiPage struct {
	Title     string `json:"title"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// wikipediaThumbnail returns the first page thumbnail Wikipedia has for name.
// An empty source means no page carried one.
func (r *Resolver) wikipediaThumbnail(ctx context.Context, name string) (source, title string, err error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "pageimages")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", "500")
	params.Set("redirects", "1")
	params.Set("titles", name)

	var resp wikiResponse
	if err := r.getJSON(ctx, r.wikiBaseURL+"/w/api.php?"+params.Encode(), &resp); err != nil {
		return "", "", err
	}

	ids := make([]string, 0, len(resp.Query.Pages))
	for id := range resp.Query.Pages {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		page := resp.Query.Pages[id]
		if page.Thumbnail != nil && page.Thumbnail.Source != "" {
			return page.Thumbnail.Source, page.Title, nil
		}
	}
	return "", "", nil
}

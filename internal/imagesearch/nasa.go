package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"skyguide/internal/domain"
)

type nasaSearchResponse struct {
	Collection struct {
		Items []struct {
			Data []nasaItemData `json:"data"`
		} `json:"items"`
	} `json:"collection"`
}

type nasaItemData struct {
	NASAID      string `json:"nasa_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DateCreated string `json:"date_created"`
	Center      string `json:"center"`
}

type nasaAssetResponse struct {
	Collection struct {
		Items []struct {
			Href string `json:"href"`
		} `json:"items"`
	} `json:"collection"`
}

// searchNASA returns the metadata of the first hit in the NASA image library, or nil
// when the search matched nothing.
func (r *Resolver) searchNASA(ctx context.Context, name string) (*nasaItemData, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("media_type", "image")
	params.Set("page", "1")
	params.Set("page_size", "3")

	var resp nasaSearchResponse
	if err := r.getJSON(ctx, r.nasaBaseURL+"/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	items := resp.Collection.Items
	if len(items) == 0 || len(items[0].Data) == 0 || items[0].Data[0].NASAID == "" {
		return nil, nil
	}
	data := items[0].Data[0]
	return &data, nil
}

// assetHrefs lists every file in the asset manifest of a NASA item.
func (r *Resolver) assetHrefs(ctx context.Context, nasaID string) ([]string, error) {
	var resp nasaAssetResponse
	if err := r.getJSON(ctx, r.nasaBaseURL+"/asset/"+url.PathEscape(nasaID), &resp); err != nil {
		return nil, err
	}
	hrefs := make([]string, 0, len(resp.Collection.Items))
	for _, item := range resp.Collection.Items {
		hrefs = append(hrefs, item.Href)
	}
	return hrefs, nil
}

// selectImage prefers a large rendition and otherwise takes the first still image.
func selectImage(hrefs []string) (string, bool) {
	var first string
	for _, href := range hrefs {
		lower := strings.ToLower(href)
		if !isImage(lower) {
			continue
		}
		if first == "" {
			first = href
		}
		if strings.Contains(lower, "large") || strings.Contains(lower, "1024") || strings.Contains(lower, "2048") {
			return href, true
		}
	}
	return first, first != ""
}

func isImage(href string) bool {
	return strings.HasSuffix(href, ".jpg") || strings.HasSuffix(href, ".jpeg") || strings.HasSuffix(href, ".png")
}

func (r *Resolver) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &domain.UpstreamError{
			Service:    endpointHost(endpoint),
			Kind:       domain.UpstreamFailed,
			StatusCode: resp.StatusCode,
			Message:    truncate(string(body), 200),
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	return u.Host
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

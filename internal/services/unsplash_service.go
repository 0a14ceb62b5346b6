package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"innerglow/backend/internal/models"
)

const unsplashBaseURL = "https://api.unsplash.com"

// Gateway errors. Provider and network failures never escape this package as
// raw errors; searches degrade to empty results and direct lookups report
// ErrNotFound.
var (
	ErrUnavailable      = errors.New("external source unavailable")
	ErrPhotoNotFound    = errors.New("photo not found")
	errGatewayNotConfig = errors.New("UNSPLASH_ACCESS_KEY not set")
)

// Unsplash queries the photo provider and maps its records onto the internal
// pin shape. Results are transient; nothing here touches storage.
type Unsplash struct {
	accessKey string
	baseURL   string
	client    *http.Client
}

// NewUnsplash builds the gateway. An empty access key is allowed at
// construction time; calls then fail closed with ErrUnavailable.
func NewUnsplash(accessKey string) *Unsplash {
	return &Unsplash{
		accessKey: accessKey,
		baseURL:   unsplashBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewUnsplashWithBase is used by tests to point the gateway at a stub server.
func NewUnsplashWithBase(accessKey, baseURL string) *Unsplash {
	g := NewUnsplash(accessKey)
	g.baseURL = baseURL
	return g
}

// Configured reports whether the provider credential is present.
func (g *Unsplash) Configured() bool {
	return g.accessKey != ""
}

type unsplashPhoto struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	CreatedAt      string `json:"created_at"`
	URLs           struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	User struct {
		Name         string `json:"name"`
		Username     string `json:"username"`
		ProfileImage struct {
			Medium string `json:"medium"`
		} `json:"profile_image"`
	} `json:"user"`
}

type unsplashSearchResponse struct {
	Results []unsplashPhoto `json:"results"`
}

// Search returns transient pins for a query. Provider or network errors are
// logged and reported as an empty result set; only a missing credential is an
// error the caller sees.
func (g *Unsplash) Search(ctx context.Context, query string, page, pageSize int) ([]models.PinView, error) {
	if !g.Configured() {
		log.Printf("[UnsplashService] %v, refusing to call provider", errGatewayNotConfig)
		return nil, ErrUnavailable
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	endpoint := fmt.Sprintf("%s/search/photos?query=%s&page=%d&per_page=%d",
		g.baseURL, url.QueryEscape(query), page, pageSize)

	var parsed unsplashSearchResponse
	if err := g.get(ctx, endpoint, &parsed); err != nil {
		log.Printf("[UnsplashService] search %q failed: %v", query, err)
		return []models.PinView{}, nil
	}

	pins := make([]models.PinView, 0, len(parsed.Results))
	for _, photo := range parsed.Results {
		pins = append(pins, g.toPinView(photo))
	}
	return pins, nil
}

// GetByID fetches one photo. Any provider failure reads as not found so
// callers never surface raw provider errors.
func (g *Unsplash) GetByID(ctx context.Context, externalID string) (*models.PinView, error) {
	if !g.Configured() {
		log.Printf("[UnsplashService] %v, refusing to call provider", errGatewayNotConfig)
		return nil, ErrUnavailable
	}

	endpoint := fmt.Sprintf("%s/photos/%s", g.baseURL, url.PathEscape(externalID))
	var photo unsplashPhoto
	if err := g.get(ctx, endpoint, &photo); err != nil {
		log.Printf("[UnsplashService] get %s failed: %v", externalID, err)
		return nil, ErrPhotoNotFound
	}

	view := g.toPinView(photo)
	return &view, nil
}

func (g *Unsplash) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Client-ID "+g.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned %s", strconv.Itoa(resp.StatusCode))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *Unsplash) toPinView(photo unsplashPhoto) models.PinView {
	title := photo.Description
	if title == "" {
		title = photo.AltDescription
	}
	if title == "" {
		title = "Daily inspiration"
	}

	createdAt, err := time.Parse(time.RFC3339, photo.CreatedAt)
	if err != nil {
		createdAt = time.Now()
	}

	return models.PinView{
		ID:    models.ExternalPinID(photo.ID),
		Title: title,
		Images: []models.Image{{
			URL:    photo.URLs.Regular,
			Width:  photo.Width,
			Height: photo.Height,
		}},
		Comments: make([]models.Comment, 0),
		Owner: &models.OwnerView{
			Name:   photo.User.Name,
			Handle: photo.User.Username,
			Avatar: photo.User.ProfileImage.Medium,
		},
		UnsplashID: photo.ID,
		External:   true,
		CreatedAt:  createdAt,
	}
}

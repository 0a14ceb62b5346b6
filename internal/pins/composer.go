package pins

import (
	"context"
	"math/rand"
	"time"

	"innerglow/backend/internal/cache"
	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"
)

const (
	discoveryLocalLimit    = 30
	discoveryExternalBatch = 20
	searchLocalLimit       = 50
	discoveryQuery         = "calm wellness nature"
	providerCacheTTL       = 10 * time.Minute
)

// QueryStore is the pin-store surface the composer reads from.
type QueryStore interface {
	Query(ctx context.Context, filter store.PinFilter) ([]models.Pin, error)
}

// Gateway is the external source the composer merges in.
type Gateway interface {
	Search(ctx context.Context, query string, page, pageSize int) ([]models.PinView, error)
}

// OwnerDirectory resolves owner profiles for local pins.
type OwnerDirectory interface {
	FindMany(ctx context.Context, ids []string) (map[string]models.User, error)
}

// Composer builds the discovery and search feeds by merging public local pins
// with transient provider results.
type Composer struct {
	store   QueryStore
	gateway Gateway
	users   OwnerDirectory
	cache   *cache.Cache
}

func NewComposer(store QueryStore, gateway Gateway, users OwnerDirectory, cache *cache.Cache) *Composer {
	return &Composer{store: store, gateway: gateway, users: users, cache: cache}
}

// Discovery returns the for-you feed: recent public local pins plus a batch
// of provider pins, deduplicated local-first and then shuffled so the seam
// between sources is not visible. The shuffle is cosmetic; nothing may rely
// on feed order.
func (c *Composer) Discovery(ctx context.Context) ([]models.PinView, error) {
	local, err := c.store.Query(ctx, store.PinFilter{
		Visibility: store.PublicVisibility(),
		Limit:      discoveryLocalLimit,
	})
	if err != nil {
		return nil, err
	}

	views, err := c.Populate(ctx, local)
	if err != nil {
		return nil, err
	}

	external := c.providerBatch(ctx, discoveryQuery, discoveryExternalBatch)
	merged := Dedupe(append(views, external...))
	shuffle(merged)
	return merged, nil
}

// Search returns local substring matches followed by provider results for the
// same query, unshuffled. An empty query yields an empty result set rather
// than all pins.
func (c *Composer) Search(ctx context.Context, query string) ([]models.PinView, error) {
	if query == "" {
		return []models.PinView{}, nil
	}

	local, err := c.store.Query(ctx, store.PinFilter{
		Visibility: store.PublicVisibility(),
		Search:     query,
		Limit:      searchLocalLimit,
	})
	if err != nil {
		return nil, err
	}

	views, err := c.Populate(ctx, local)
	if err != nil {
		return nil, err
	}

	external := c.providerBatch(ctx, query, discoveryExternalBatch)
	return Dedupe(append(views, external...)), nil
}

// providerBatch fetches transient pins, going through the redis cache when
// one is configured. Unavailable or failing providers degrade to nothing.
func (c *Composer) providerBatch(ctx context.Context, query string, size int) []models.PinView {
	key := "unsplash:search:" + query
	var cached []models.PinView
	if c.cache.GetJSON(ctx, key, &cached) {
		return cached
	}

	external, err := c.gateway.Search(ctx, query, 1, size)
	if err != nil {
		return nil
	}
	if len(external) > 0 {
		c.cache.SetJSON(ctx, key, external, providerCacheTTL)
	}
	return external
}

// Populate converts persisted pins to views with their owners attached.
func (c *Composer) Populate(ctx context.Context, list []models.Pin) ([]models.PinView, error) {
	ids := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, p := range list {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	owners, err := c.users.FindMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.PinView, 0, len(list))
	for i := range list {
		var owner *models.OwnerView
		if u, ok := owners[list[i].UserID]; ok {
			owner = u.Owner()
		} else {
			owner = &models.OwnerView{ID: list[i].UserID, Name: "InnerGlow user"}
		}
		views = append(views, list[i].View(owner))
	}
	return views, nil
}

// Dedupe drops later occurrences of the same pin, keeping the first. A pin
// mirrored locally carries its hex object id on the wire while a stale
// provider fetch of the same photo carries the namespaced external id, so the
// key is the external identity whenever one is set; local-first ordering makes
// the mirror win.
func Dedupe(list []models.PinView) []models.PinView {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, v := range list {
		key := v.ID
		if v.UnsplashID != "" {
			key = models.ExternalPinID(v.UnsplashID)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// Fisher-Yates over the merged feed.
func shuffle(list []models.PinView) {
	rand.Shuffle(len(list), func(i, j int) {
		list[i], list[j] = list[j], list[i]
	})
}

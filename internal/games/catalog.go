package games

import (
	"context"
	"log"
	"strings"

	"github.com/team33/casino-gateway/internal/adminapi"
	"github.com/team33/casino-gateway/internal/config"
	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

// Filter narrows the catalog. Zero values mean "no constraint"; Hot/New are
// only applied when true.
type Filter struct {
	Query    string
	Provider string
	Category string
	Hot      bool
	New      bool
	Page     int
	Limit    int
}

// Page is one slice of the filtered catalog
type Page struct {
	Games      []models.Game `json:"games"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

// UI category aliases mapped onto catalog categories
var categoryAliases = map[string]string{
	"slots":   "slot",
	"slot":    "slot",
	"live":    "live_casino",
	"casino":  "live_casino",
	"table":   "table_games",
	"crash":   "crash",
	"scratch": "scratch",
	"instant": "instant_win",
}

// Service filters and paginates the game catalog. The static seed list is
// authoritative when the backend catalog is unreachable or remote mode is
// off.
type Service struct {
	client  *adminapi.Client
	store   store.Store
	cfg     *config.Config
	catalog []models.Game
	remote  bool
}

func NewService(client *adminapi.Client, st store.Store, cfg *config.Config) *Service {
	return &Service{
		client:  client,
		store:   st,
		cfg:     cfg,
		catalog: seedCatalog(),
		remote:  cfg.Environment == "production",
	}
}

// List applies the filter and paginates. Filter order: provider exact match,
// then query substring, then category, then hot/new flags.
func (s *Service) List(ctx context.Context, f Filter) *Page {
	games := s.source(ctx)

	if f.Provider != "" {
		games = keep(games, func(g models.Game) bool { return g.Provider == f.Provider })
	}

	if query := strings.TrimSpace(f.Query); query != "" {
		if len(query) < 2 {
			// Too-short queries return nothing by contract
			return paginate(nil, f.Page, f.Limit)
		}
		q := strings.ToLower(query)
		games = keep(games, func(g models.Game) bool {
			return strings.Contains(strings.ToLower(g.Name), q) ||
				strings.Contains(strings.ToLower(g.Slug), q)
		})
	}

	if f.Category != "" {
		canonical, ok := categoryAliases[strings.ToLower(f.Category)]
		if !ok {
			canonical = strings.ToLower(f.Category)
		}
		games = keep(games, func(g models.Game) bool { return g.Category == canonical })
	}

	if f.Hot {
		games = keep(games, func(g models.Game) bool { return g.IsHot })
	}
	if f.New {
		games = keep(games, func(g models.Game) bool { return g.IsNew })
	}

	enhanced := make([]models.Game, len(games))
	for i, g := range games {
		enhanced[i] = Enhance(g)
	}
	return paginate(enhanced, f.Page, f.Limit)
}

// Search is the quick-search entry point; queries under 2 characters yield
// an empty result set regardless of catalog contents.
func (s *Service) Search(ctx context.Context, query string, page, limit int) *Page {
	if len(strings.TrimSpace(query)) < 2 {
		return paginate(nil, page, limit)
	}
	return s.List(ctx, Filter{Query: query, Page: page, Limit: limit})
}

// source prefers the remote catalog in remote mode, falling back to the seed
// list on any failure
func (s *Service) source(ctx context.Context) []models.Game {
	if !s.remote {
		return s.catalog
	}
	res := s.client.Get(ctx, "/games")
	if !res.Success {
		log.Printf("[GAMES] Remote catalog unavailable (%s), using built-in list", res.Message)
		return s.catalog
	}
	var remote []models.Game
	if err := res.Decode(&remote); err != nil || len(remote) == 0 {
		log.Printf("[GAMES] Remote catalog unusable, using built-in list")
		return s.catalog
	}
	return remote
}

// Providers returns the distinct provider names in catalog order
func (s *Service) Providers(ctx context.Context) []string {
	seen := map[string]bool{}
	var providers []string
	for _, g := range s.source(ctx) {
		if !seen[g.Provider] {
			seen[g.Provider] = true
			providers = append(providers, g.Provider)
		}
	}
	return providers
}

func keep(games []models.Game, pred func(models.Game) bool) []models.Game {
	var out []models.Game
	for _, g := range games {
		if pred(g) {
			out = append(out, g)
		}
	}
	return out
}

func paginate(games []models.Game, page, limit int) *Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	total := len(games)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return &Page{
		Games:      games[start:end],
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

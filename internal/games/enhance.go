package games

import (
	"math/rand"

	"github.com/team33/casino-gateway/internal/models"
)

const cdnBase = "https://cdn.team33.games"

// Enhance fills in derived display fields the upstream record omits. Pure
// and deterministic except for the default play count, which is randomized
// when upstream supplies none.
func Enhance(g models.Game) models.Game {
	if g.Slug == "" {
		g.Slug = g.ID
	}
	if g.Thumbnail == "" {
		g.Thumbnail = cdnBase + "/thumbs/" + g.Slug + ".webp"
	}
	if g.BannerURL == "" {
		g.BannerURL = cdnBase + "/banners/" + g.Slug + ".webp"
	}
	if g.Rating == 0 {
		g.Rating = 4.5
	}
	if g.RTP == 0 {
		g.RTP = 96.5
	}
	if g.PlayCount == 0 {
		g.PlayCount = 1000 + rand.Intn(49000)
	}
	return g
}

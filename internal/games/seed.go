package games

import "github.com/team33/casino-gateway/internal/models"

// seedCatalog is the built-in game list served when the backend catalog is
// unreachable. Kept in the launch order the floor wants them displayed.
func seedCatalog() []models.Game {
	return []models.Game{
		{ID: "g-001", Slug: "lucky-sevens", Name: "Lucky Sevens", Provider: "Pragmatic Play", Category: "slot", IsHot: true, RTP: 96.2},
		{ID: "g-002", Slug: "golden-pharaoh", Name: "Golden Pharaoh", Provider: "Pragmatic Play", Category: "slot", RTP: 95.8},
		{ID: "g-003", Slug: "neon-fruits", Name: "Neon Fruits", Provider: "NetEnt", Category: "slot", IsNew: true, RTP: 96.7},
		{ID: "g-004", Slug: "dragon-hoard", Name: "Dragon Hoard", Provider: "NetEnt", Category: "slot", IsHot: true, RTP: 96.1},
		{ID: "g-005", Slug: "mega-crash", Name: "Mega Crash", Provider: "Crypto LATAM", Category: "crash", IsHot: true, RTP: 97.0},
		{ID: "g-006", Slug: "rocket-run", Name: "Rocket Run", Provider: "Crypto LATAM", Category: "crash", IsNew: true, RTP: 96.9},
		{ID: "g-007", Slug: "hi-lo-classic", Name: "Hi/Lo Classic", Provider: "Crypto LATAM", Category: "instant_win", RTP: 97.3},
		{ID: "g-008", Slug: "scratch-match3", Name: "Scratch Match 3", Provider: "Crypto LATAM", Category: "scratch", RTP: 95.5},
		{ID: "g-009", Slug: "roulette-royale", Name: "Roulette Royale", Provider: "Evolution", Category: "live_casino", IsHot: true},
		{ID: "g-010", Slug: "blackjack-vip", Name: "Blackjack VIP", Provider: "Evolution", Category: "live_casino"},
		{ID: "g-011", Slug: "baccarat-speed", Name: "Speed Baccarat", Provider: "Evolution", Category: "live_casino", IsNew: true},
		{ID: "g-012", Slug: "texas-holdem-pro", Name: "Texas Hold'em Pro", Provider: "Evolution", Category: "table_games"},
		{ID: "g-013", Slug: "caribbean-stud", Name: "Caribbean Stud", Provider: "NetEnt", Category: "table_games"},
		{ID: "g-014", Slug: "wheel-of-gold", Name: "Wheel of Gold", Provider: "Pragmatic Play", Category: "instant_win", IsNew: true, RTP: 96.0},
	}
}

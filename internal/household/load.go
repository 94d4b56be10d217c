package household

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mmynk/cosmocash/internal/models"
	"github.com/mmynk/cosmocash/internal/persist"
	"github.com/mmynk/cosmocash/internal/storage"
)

// Load reads every persisted collection from store. A key that is missing,
// unreadable or malformed falls back to its empty value; storage problems
// never prevent startup.
func Load(ctx context.Context, store storage.Store) State {
	s := State{
		Roommates: loadJSON(ctx, store, KeyRoommates, []models.Roommate{}),
		Expenses:  loadJSON(ctx, store, KeyExpenses, []models.Expense{}),
		Wishlist:  loadJSON(ctx, store, KeyWishlist, []models.WishlistItem{}),
		Chat:      loadJSON(ctx, store, KeyChat, []models.ChatMessage{}),
	}
	s.CurrentUser = loadJSON[*models.Roommate](ctx, store, KeyCurrentUser, nil)

	slog.Info("Household loaded",
		"roommates", len(s.Roommates),
		"expenses", len(s.Expenses),
		"wishlist", len(s.Wishlist),
		"chat", len(s.Chat),
		"current_user", s.CurrentUser != nil,
	)
	return s
}

// Open loads the household from store and persists later mutations
// through writer.
func Open(ctx context.Context, store storage.Store, writer persist.Writer, opts ...Option) *Household {
	return New(Load(ctx, store), writer, opts...)
}

func loadJSON[T any](ctx context.Context, store storage.Store, key string, fallback T) T {
	data, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("Failed to read stored collection, using default", "key", key, "error", err)
		}
		return fallback
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Warn("Malformed stored collection, using default", "key", key, "error", err)
		return fallback
	}
	return v
}

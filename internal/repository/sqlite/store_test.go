package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gamevault/internal/domain/console"
	"gamevault/internal/domain/game"
	"gamevault/internal/domain/user"
	"gamevault/internal/repository/sqlite"
	apperrors "gamevault/pkg/errors"
	"gamevault/pkg/rbac/presets"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUserCreateAndGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u, err := s.Users().Create(ctx, user.CreateUserInput{
		Username:     "alice",
		PasswordHash: "$2a$04$hash",
		Role:         presets.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("Create should assign an ID")
	}
	if u.Role != presets.RoleAdmin {
		t.Fatalf("role = %s, want admin", u.Role)
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}

	got, err := s.Users().GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != u.ID || got.PasswordHash != "$2a$04$hash" {
		t.Fatalf("GetByUsername returned wrong record: %+v", got)
	}
}

func TestUserLookupIsCaseSensitive(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if _, err := s.Users().Create(ctx, user.CreateUserInput{
		Username: "alice", PasswordHash: "h", Role: presets.RoleViewer,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Users().GetByUsername(ctx, "Alice"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("lookup with different case should miss, got: %v", err)
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	input := user.CreateUserInput{Username: "bob", PasswordHash: "h", Role: presets.RoleViewer}
	if _, err := s.Users().Create(ctx, input); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := s.Users().Create(ctx, input)
	if !errors.Is(err, apperrors.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got: %v", err)
	}
}

func TestUserUpdateRoleAndDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u, err := s.Users().Create(ctx, user.CreateUserInput{
		Username: "carol", PasswordHash: "h", Role: presets.RoleViewer,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Users().UpdateRole(ctx, u.ID, presets.RoleEditor); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}

	got, err := s.Users().GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != presets.RoleEditor {
		t.Fatalf("role = %s, want editor", got.Role)
	}

	if err := s.Users().Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Users().GetByID(ctx, u.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("deleted user lookup should miss, got: %v", err)
	}

	if err := s.Users().Delete(ctx, u.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("double delete should report not found, got: %v", err)
	}
	if err := s.Users().UpdateRole(ctx, 9999, presets.RoleAdmin); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("UpdateRole on missing user should report not found, got: %v", err)
	}
}

func seedGame(t *testing.T, s *sqlite.Store, title, genre, platform string) *game.Game {
	t.Helper()
	g, err := s.Games().Create(context.Background(), game.CreateGameInput{
		Title:        title,
		ReleaseDate:  "1992-08-21",
		Manufacturer: "Nintendo",
		Genre:        genre,
		Platform:     platform,
		Score:        9,
		Inventory:    1,
	})
	if err != nil {
		t.Fatalf("seed game %s: %v", title, err)
	}
	return g
}

func TestGameCreateNormalizesPlatform(t *testing.T) {
	s := newStore(t)

	g := seedGame(t, s, "Super Mario Kart", "Racing", "Super Nintendo")
	if g.PlatformNormalized != "supernintendo" {
		t.Fatalf("platform_normalized = %q, want supernintendo", g.PlatformNormalized)
	}
}

func TestGameSearch(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	seedGame(t, s, "Super Mario Kart", "Racing", "Super Nintendo")
	seedGame(t, s, "F-Zero", "Racing", "Super Nintendo")
	seedGame(t, s, "Sonic the Hedgehog", "Platformer", "Mega Drive")

	// Case-insensitive substring over title, genre and platform.
	results, err := s.Games().Search(ctx, "mario")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Super Mario Kart" {
		t.Fatalf("Search(mario) = %d results", len(results))
	}

	results, err = s.Games().Search(ctx, "RACING")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search(RACING) = %d results, want 2", len(results))
	}
}

func TestGameSearchEscapesWildcards(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	seedGame(t, s, "100% Orange Juice", "Board", "PC")
	seedGame(t, s, "100x Something", "Board", "PC")

	results, err := s.Games().Search(ctx, "100%")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "100% Orange Juice" {
		t.Fatalf("wildcard should be literal, got %d results", len(results))
	}
}

func TestGameListByPlatformPagination(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedGame(t, s, "Game "+string(rune('A'+i)), "Action", "Super Nintendo")
	}
	seedGame(t, s, "Other", "Action", "Mega Drive")

	total, err := s.Games().CountByPlatform(ctx, "supernintendo")
	if err != nil {
		t.Fatalf("CountByPlatform: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}

	page1, err := s.Games().ListByPlatform(ctx, "supernintendo", 2, 0)
	if err != nil {
		t.Fatalf("ListByPlatform: %v", err)
	}
	page3, err := s.Games().ListByPlatform(ctx, "supernintendo", 2, 4)
	if err != nil {
		t.Fatalf("ListByPlatform: %v", err)
	}

	if len(page1) != 2 || len(page3) != 1 {
		t.Fatalf("page sizes = %d, %d; want 2, 1", len(page1), len(page3))
	}
	if page1[0].ID >= page1[1].ID {
		t.Fatal("pages should be ordered by id")
	}
}

func TestGameUpdatePartial(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	g := seedGame(t, s, "Super Mario Kart", "Racing", "Super Nintendo")

	err := s.Games().Update(ctx, g.ID, game.UpdateGameInput{
		Score:    intPtr(10),
		Platform: strPtr("SNES"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Games().GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Score != 10 {
		t.Fatalf("score = %d, want 10", got.Score)
	}
	if got.Platform != "SNES" || got.PlatformNormalized != "snes" {
		t.Fatalf("platform = %q / %q", got.Platform, got.PlatformNormalized)
	}
	if got.Title != "Super Mario Kart" {
		t.Fatal("untouched fields should survive a partial update")
	}
}

func TestGameNotFound(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if _, err := s.Games().GetByID(ctx, 42); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetByID on empty store: %v", err)
	}
	if err := s.Games().Delete(ctx, 42); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Delete on empty store: %v", err)
	}
	if err := s.Games().Update(ctx, 42, game.UpdateGameInput{Score: intPtr(1)}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Update on empty store: %v", err)
	}
}

func seedConsole(t *testing.T, s *sqlite.Store, name, model, serial string) *console.Console {
	t.Helper()
	c, err := s.Consoles().Create(context.Background(), console.CreateConsoleInput{
		Name:                name,
		Model:               model,
		ReleaseDate:         "1990-11-21",
		Manufacturer:        "Nintendo",
		SerialNumberConsole: serial,
		Inventory:           1,
	})
	if err != nil {
		t.Fatalf("seed console %s: %v", serial, err)
	}
	return c
}

func TestConsoleDuplicateSerial(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	seedConsole(t, s, "Super Famicom", "SHVC-001", "SN-001")

	_, err := s.Consoles().Create(ctx, console.CreateConsoleInput{
		Name:                "Super Famicom",
		Model:               "SHVC-001",
		ReleaseDate:         "1990-11-21",
		Manufacturer:        "Nintendo",
		SerialNumberConsole: "SN-001",
	})
	if !errors.Is(err, apperrors.ErrDuplicateSerial) {
		t.Fatalf("expected ErrDuplicateSerial, got: %v", err)
	}
}

func TestConsoleUpdateSerialConflict(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	seedConsole(t, s, "Super Famicom", "SHVC-001", "SN-001")
	second := seedConsole(t, s, "Super Famicom", "SHVC-001", "SN-002")

	err := s.Consoles().Update(ctx, second.ID, console.UpdateConsoleInput{
		SerialNumberConsole: strPtr("SN-001"),
	})
	if !errors.Is(err, apperrors.ErrDuplicateSerial) {
		t.Fatalf("expected ErrDuplicateSerial on update, got: %v", err)
	}
}

func TestConsoleListByModel(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	seedConsole(t, s, "Super Famicom", "SHVC 001", "SN-001")
	seedConsole(t, s, "Super Famicom", "SHVC 001", "SN-002")
	seedConsole(t, s, "Mega Drive", "HAA-2510", "SN-003")

	total, err := s.Consoles().CountByModel(ctx, console.NormalizeModel("SHVC 001"))
	if err != nil {
		t.Fatalf("CountByModel: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}

	consoles, err := s.Consoles().ListByModel(ctx, "shvc001", 10, 0)
	if err != nil {
		t.Fatalf("ListByModel: %v", err)
	}
	if len(consoles) != 2 {
		t.Fatalf("ListByModel = %d results, want 2", len(consoles))
	}
}

package store

import (
	"testing"

	"galaxy-cinema-cli/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func TestSession_RoundTrip(t *testing.T) {
	setTestDirs(t)

	if _, ok, err := LoadSession(); err != nil || ok {
		t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
	}

	session := Session{Token: "tok-1", UserId: "u1", Fullname: "Staff", Role: model.RoleStaff}
	if err := SaveSession(session); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	loaded, ok, err := LoadSession()
	if err != nil || !ok {
		t.Fatalf("expected session, got ok=%v err=%v", ok, err)
	}
	if loaded != session {
		t.Fatalf("unexpected session: %+v", loaded)
	}
	if !loaded.IsStaff() {
		t.Fatal("expected staff session")
	}

	if err := ClearSession(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, ok, _ := LoadSession(); ok {
		t.Fatal("expected session cleared")
	}
	// Clearing twice is fine.
	if err := ClearSession(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestSaveSession_RequiresToken(t *testing.T) {
	setTestDirs(t)

	if err := SaveSession(Session{UserId: "u1"}); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestFilmCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	films, fresh, err := LoadFilmCache()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(films) != 0 || fresh {
		t.Fatalf("expected empty stale cache, got %d fresh=%v", len(films), fresh)
	}

	if err := SaveFilmCache([]model.Film{{Id: "f1", Title: "Heat"}}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	films, fresh, err = LoadFilmCache()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh || len(films) != 1 || films[0].Title != "Heat" {
		t.Fatalf("unexpected cache: fresh=%v films=%+v", fresh, films)
	}
}

func TestRememberFilm_DedupesAndCaps(t *testing.T) {
	setTestDirs(t)

	for i := 0; i < 12; i++ {
		film := model.Film{Id: string(rune('a' + i)), Title: string(rune('A' + i))}
		if err := RememberFilm(film); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if err := RememberFilm(model.Film{Id: "a", Title: "A"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	recents, err := LoadRecentFilms()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recents) > maxRecentFilms {
		t.Fatalf("expected at most %d recents, got %d", maxRecentFilms, len(recents))
	}
	if recents[0].ID != "a" {
		t.Fatalf("expected most recent first, got %+v", recents[0])
	}
	for i, recent := range recents {
		for j := i + 1; j < len(recents); j++ {
			if recent.ID == recents[j].ID {
				t.Fatalf("duplicate recent film %q", recent.ID)
			}
		}
	}
}

// Package storage is the server-side persistence layer. Each concern is
// stored as a JSON document: the server never queries inside a menu
// book, so a data column beats a wide relational schema here.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"omenu/internal/menu"
)

// Store persists profile, menu books, UI state, draft and extras.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Profile returns the saved preferences, or nil when none were saved yet.
func (s *Store) Profile() (*menu.UserPreferences, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM profile WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile menu.UserPreferences
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile overwrites the preferences snapshot.
func (s *Store) SaveProfile(profile menu.UserPreferences) error {
	return s.saveSingleton("profile", profile)
}

// ListMenuBooks returns every stored menu book, newest first.
func (s *Store) ListMenuBooks() ([]menu.MenuBook, error) {
	rows, err := s.db.Query("SELECT data FROM menu_books ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list menu books: %w", err)
	}
	defer rows.Close()

	books := []menu.MenuBook{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan menu book: %w", err)
		}
		var book menu.MenuBook
		if err := json.Unmarshal([]byte(data), &book); err != nil {
			return nil, fmt.Errorf("failed to unmarshal menu book: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// GetMenuBook returns one menu book, or (nil, nil) when absent.
func (s *Store) GetMenuBook(id string) (*menu.MenuBook, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM menu_books WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load menu book %s: %w", id, err)
	}

	var book menu.MenuBook
	if err := json.Unmarshal([]byte(data), &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal menu book %s: %w", id, err)
	}
	return &book, nil
}

// SaveMenuBook inserts or overwrites one menu book.
func (s *Store) SaveMenuBook(book menu.MenuBook) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to marshal menu book: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO menu_books (id, created_at, data) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET created_at = excluded.created_at, data = excluded.data",
		book.ID, book.CreatedAt, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save menu book %s: %w", book.ID, err)
	}
	return nil
}

// DeleteMenuBook removes one menu book. Deleting an absent book is a
// no-op.
func (s *Store) DeleteMenuBook(id string) error {
	if _, err := s.db.Exec("DELETE FROM menu_books WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete menu book %s: %w", id, err)
	}
	return nil
}

// UIState returns the saved screen state, or nil when none was saved yet.
func (s *Store) UIState() (*menu.UIState, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM ui_state WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ui state: %w", err)
	}

	var state menu.UIState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ui state: %w", err)
	}
	return &state, nil
}

// SaveUIState overwrites the screen state.
func (s *Store) SaveUIState(state menu.UIState) error {
	return s.saveSingleton("ui_state", state)
}

// Draft returns the saved draft snapshot, or nil when none exists.
func (s *Store) Draft() (*menu.DraftState, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM draft WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft menu.DraftState
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// SaveDraft overwrites the draft snapshot.
func (s *Store) SaveDraft(draft menu.DraftState) error {
	return s.saveSingleton("draft", draft)
}

// ClearDraft removes the draft snapshot.
func (s *Store) ClearDraft() error {
	if _, err := s.db.Exec("DELETE FROM draft WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// Extras returns the extras side map, never nil.
func (s *Store) Extras() (menu.MenuExtras, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM menu_extras WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return menu.MenuExtras{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load menu extras: %w", err)
	}

	var extras menu.MenuExtras
	if err := json.Unmarshal([]byte(data), &extras); err != nil {
		return nil, fmt.Errorf("failed to unmarshal menu extras: %w", err)
	}
	if extras == nil {
		extras = menu.MenuExtras{}
	}
	return extras, nil
}

// SaveExtras overwrites the extras side map.
func (s *Store) SaveExtras(extras menu.MenuExtras) error {
	return s.saveSingleton("menu_extras", extras)
}

// saveSingleton upserts the single row of a one-document table.
func (s *Store) saveSingleton(table string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", table, err)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (id, data, updated_at) VALUES (1, ?, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at",
		table,
	)
	if _, err := s.db.Exec(query, string(data), s.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save %s: %w", table, err)
	}
	return nil
}

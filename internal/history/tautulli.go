// Package history reads user watch history from a Tautulli sqlite database.
// The database is opened read-only; watched titles feed the orchestrator so
// already-seen recommendations drop out of the available list.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"reelmatch/internal/media"
)

// User is one row from the Tautulli users table.
type User struct {
	UserID       int64
	Username     string
	FriendlyName string
	Active       bool
}

// DisplayName prefers the friendly name and falls back to the username.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.FriendlyName) != "" {
		return u.FriendlyName
	}
	if strings.TrimSpace(u.Username) != "" {
		return u.Username
	}
	return fmt.Sprintf("user %d", u.UserID)
}

// WatchRecord is one watch-history row, newest first.
type WatchRecord struct {
	MediaType        string
	Title            string
	GrandparentTitle string
	WatchedAt        int64
	SectionID        int64
}

// DisplayTitle returns the show title for episodes, the item title otherwise.
func (r WatchRecord) DisplayTitle() string {
	if r.MediaType == "episode" && strings.TrimSpace(r.GrandparentTitle) != "" {
		return r.GrandparentTitle
	}
	return r.Title
}

// Reader provides read-only access to a Tautulli database.
type Reader struct {
	db   *sql.DB
	path string
}

// Open opens the Tautulli database at path in read-only mode.
func Open(path string) (*Reader, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("tautulli db path required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("tautulli db not found: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open tautulli db: %w", err)
	}
	return &Reader{db: db, path: path}, nil
}

// Close releases the database handle.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Users lists active users.
func (r *Reader) Users(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id,
		       COALESCE(username, ''),
		       COALESCE(friendly_name, ''),
		       COALESCE(is_active, 1)
		  FROM users`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var (
			user   User
			active int
		)
		if err := rows.Scan(&user.UserID, &user.Username, &user.FriendlyName, &active); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		user.Active = active != 0
		if user.Active {
			users = append(users, user)
		}
	}
	return users, rows.Err()
}

// WatchHistory returns a user's watch history, newest first, optionally
// filtered to specific library sections. A non-positive limit means no limit.
func (r *Reader) WatchHistory(ctx context.Context, userID int64, sections []int64, limit int) ([]WatchRecord, error) {
	query := `
		SELECT sh.media_type,
		       COALESCE(sm.title, ''),
		       COALESCE(sm.grandparent_title, ''),
		       COALESCE(sh.stopped, sh.started, 0),
		       COALESCE(sh.section_id, 0)
		  FROM session_history sh
		  LEFT JOIN session_history_metadata sm ON sm.rating_key = sh.rating_key
		 WHERE sh.user_id = ?`
	args := []any{userID}
	if len(sections) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sections)), ",")
		query += fmt.Sprintf(" AND sh.section_id IN (%s)", placeholders)
		for _, section := range sections {
			args = append(args, section)
		}
	}
	query += " ORDER BY COALESCE(sh.stopped, sh.started, 0) DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query watch history: %w", err)
	}
	defer rows.Close()

	var records []WatchRecord
	for rows.Next() {
		var record WatchRecord
		if err := rows.Scan(&record.MediaType, &record.Title, &record.GrandparentTitle, &record.WatchedAt, &record.SectionID); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// WatchedTitles returns the distinct titles a user has watched for one media
// kind. Episodes collapse to their show title.
func (r *Reader) WatchedTitles(ctx context.Context, userID int64, kind media.Kind, sections []int64) ([]string, error) {
	records, err := r.WatchHistory(ctx, userID, sections, 0)
	if err != nil {
		return nil, err
	}
	wantType := "movie"
	if kind == media.KindShow {
		wantType = "episode"
	}
	seen := make(map[string]struct{})
	var titles []string
	for _, record := range records {
		if record.MediaType != wantType {
			continue
		}
		title := strings.TrimSpace(record.DisplayTitle())
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}

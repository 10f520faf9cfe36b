// Package persistence serializes the registry's four collections to
// independent JSON files in a data directory and reloads them on startup.
//
// Loading is deliberately forgiving: a missing, empty, or unparsable file
// degrades to an empty collection for that slice, so one corrupt file never
// prevents the registry from starting. Saving overwrites each file in place;
// a failure writing one file does not roll back the others.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/pmcore/internal/ctxlog"
	"github.com/vk/pmcore/internal/entity"
	"github.com/vk/pmcore/internal/user"
)

const (
	entitiesFile    = "entities.json"
	usersFile       = "users.json"
	entityLinksFile = "entity_associations.json"
	userLinksFile   = "user_associations.json"

	timeLayout = "2006-01-02 15:04:05"
)

// Store reads and writes the registry's persisted state under one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory the store operates on.
func (s *Store) Dir() string { return s.dir }

// entityRecord is the flat wire shape of one entity. Dates are formatted
// strings, empty when the date is unset. The activity log is operational
// data and is not persisted.
type entityRecord struct {
	Type         string `json:"Type"`
	ID           string `json:"Id"`
	Description  string `json:"Description"`
	Status       string `json:"Status"`
	Priority     string `json:"Priority"`
	CreatedDate  string `json:"CreatedDate"`
	StartedDate  string `json:"StartedDate"`
	FinishedDate string `json:"FinishedDate"`
}

// userRecord is the flat wire shape of one user. The role tag selects the
// constructor replayed on reload; the permission list is written for
// inspection but the constructor's grant set wins when reloading.
type userRecord struct {
	UserType    string   `json:"UserType"`
	UserID      string   `json:"UserId"`
	Permissions []string `json:"Permissions"`
}

// LoadAll reads the four collections. It only returns an error for
// construction-time contract violations; per-file problems degrade to empty
// collections and a warning.
func (s *Store) LoadAll(ctx context.Context) (map[string]*entity.Entity, map[string]*user.User, map[string][]string, map[string][]string, error) {
	logger := ctxlog.FromContext(ctx)

	entities := make(map[string]*entity.Entity)
	var entityRecords []entityRecord
	if s.loadFile(ctx, entitiesFile, &entityRecords) {
		for _, rec := range entityRecords {
			e, err := restoreEntity(rec)
			if err != nil {
				logger.Warn("Skipping unreadable entity record.", "id", rec.ID, "error", err)
				continue
			}
			entities[e.ID()] = e
		}
	}

	users := make(map[string]*user.User)
	var userRecords []userRecord
	if s.loadFile(ctx, usersFile, &userRecords) {
		for _, rec := range userRecords {
			role, ok := user.ParseRole(rec.UserType)
			if !ok || rec.UserID == "" {
				logger.Warn("Skipping unreadable user record.", "id", rec.UserID, "role", rec.UserType)
				continue
			}
			u := user.NewForRole(role, rec.UserID)
			users[u.ID()] = u
		}
	}

	entityLinks := make(map[string][]string)
	s.loadFile(ctx, entityLinksFile, &entityLinks)

	userLinks := make(map[string][]string)
	s.loadFile(ctx, userLinksFile, &userLinks)

	logger.Debug("Persisted state loaded.",
		"entities", len(entities), "users", len(users),
		"entity_links", len(entityLinks), "user_links", len(userLinks))
	return entities, users, entityLinks, userLinks, nil
}

// SaveAll writes the four collections, each to its own file. Every file is
// attempted even when an earlier one fails; the combined error is returned.
func (s *Store) SaveAll(ctx context.Context, entities map[string]*entity.Entity, users map[string]*user.User, entityLinks, userLinks map[string][]string) error {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", s.dir, err)
	}

	entityRecords := make([]entityRecord, 0, len(entities))
	for _, e := range entities {
		entityRecords = append(entityRecords, snapshotEntity(e))
	}
	userRecords := make([]userRecord, 0, len(users))
	for _, u := range users {
		userRecords = append(userRecords, userRecord{
			UserType:    u.Role().String(),
			UserID:      u.ID(),
			Permissions: u.Permissions(),
		})
	}

	err := errors.Join(
		s.saveFile(entitiesFile, entityRecords),
		s.saveFile(usersFile, userRecords),
		s.saveFile(entityLinksFile, entityLinks),
		s.saveFile(userLinksFile, userLinks),
	)
	if err != nil {
		return err
	}

	logger.Debug("Persisted state saved.", "dir", s.dir,
		"entities", len(entityRecords), "users", len(userRecords))
	return nil
}

// loadFile reads one collection file into out. It reports false when the
// file is missing, empty, or unparsable, leaving out untouched.
func (s *Store) loadFile(ctx context.Context, name string, out any) bool {
	logger := ctxlog.FromContext(ctx)
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read state file, starting empty.", "file", path, "error", err)
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("Failed to parse state file, starting empty.", "file", path, "error", err)
		return false
	}
	return true
}

func (s *Store) saveFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func snapshotEntity(e *entity.Entity) entityRecord {
	return entityRecord{
		Type:         e.Kind().String(),
		ID:           e.ID(),
		Description:  e.Description(),
		Status:       e.Status().String(),
		Priority:     e.Priority().String(),
		CreatedDate:  e.CreatedDate().Format(timeLayout),
		StartedDate:  formatOptional(e.StartedDate()),
		FinishedDate: formatOptional(e.FinishedDate()),
	}
}

func restoreEntity(rec entityRecord) (*entity.Entity, error) {
	kind, ok := entity.ParseKind(rec.Type)
	if !ok {
		return nil, fmt.Errorf("unknown entity kind tag %q", rec.Type)
	}
	st, ok := entity.ParseStatus(rec.Status)
	if !ok {
		return nil, fmt.Errorf("unknown status tag %q", rec.Status)
	}
	pr, ok := entity.ParsePriority(rec.Priority)
	if !ok {
		return nil, fmt.Errorf("unknown priority tag %q", rec.Priority)
	}
	created, err := time.Parse(timeLayout, rec.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("bad created date %q: %w", rec.CreatedDate, err)
	}
	started, err := parseOptional(rec.StartedDate)
	if err != nil {
		return nil, fmt.Errorf("bad started date %q: %w", rec.StartedDate, err)
	}
	finished, err := parseOptional(rec.FinishedDate)
	if err != nil {
		return nil, fmt.Errorf("bad finished date %q: %w", rec.FinishedDate, err)
	}
	return entity.Restore(kind, rec.ID, rec.Description, st, pr, created, started, finished)
}

func formatOptional(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func parseOptional(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}

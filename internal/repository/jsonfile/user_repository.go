package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"forestguard/internal/domain"
	"forestguard/internal/repository"
)

// UserRepository keeps the whole user collection in a single JSON file. Every
// mutation rewrites the file through a temp-file rename so a crash mid-write
// never leaves a half-written store, and a single mutex serializes writers so
// concurrent signups cannot lose a record.
type UserRepository struct {
	path   string
	mu     sync.Mutex
	logger *logrus.Logger
}

func NewUserRepository(path string, logger *logrus.Logger) repository.UserRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserRepository{path: path, logger: logger}
}

// Init creates the store file with an empty collection when it is missing.
func (r *UserRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat user store: %w", err)
	}
	return r.write(nil)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.read()
	for i := range users {
		if users[i].Username == user.Username {
			return repository.ErrUserExists
		}
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	users = append(users, *user)
	if err := r.write(users); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.read() {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(), nil
}

// read loads the whole collection. A missing or unparseable file degrades to
// an empty collection; corruption is logged because it silently discards data.
func (r *UserRepository) read() []domain.User {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warnf("read user store %s: %v", r.path, err)
		}
		return nil
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		r.logger.Warnf("user store %s is corrupt, treating as empty: %v", r.path, err)
		return nil
	}
	return users
}

func (r *UserRepository) write(users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace user store: %w", err)
	}
	return nil
}

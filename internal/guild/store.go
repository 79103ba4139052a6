// Package guild owns the on-disk layout of per-guild command descriptors:
// one directory per guild under a root, each holding a single commands.json.
package guild

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/validation"
)

// Store reads and writes guild descriptor files. It never caches: every
// ReadDescriptors call re-parses the file so external edits are always seen.
type Store struct {
	root     string
	schemas  validation.SchemaValidator
	validate *validator.Validate
}

// NewStore creates the root directory if needed and returns a Store on it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create guild root %s: %w", root, err)
	}

	schemas, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	return &Store{
		root:     root,
		schemas:  schemas,
		validate: validator.New(),
	}, nil
}

// Root returns the directory holding all guild directories.
func (s *Store) Root() string {
	return s.root
}

// Dir returns the storage directory for a guild.
func (s *Store) Dir(guildID string) string {
	return filepath.Join(s.root, guildID)
}

// DescriptorPath returns the path of a guild's commands.json.
func (s *Store) DescriptorPath(guildID string) string {
	return filepath.Join(s.root, guildID, domain.DescriptorFileName)
}

// EnsureInitialized creates the guild directory with an empty descriptor list.
// Calling it on an initialized guild is a no-op; "already exists" is absorbed.
func (s *Store) EnsureInitialized(guildID string) error {
	if err := s.checkID(guildID); err != nil {
		return err
	}

	created := true
	if err := os.Mkdir(s.Dir(guildID), dirPerm); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("failed to create storage for guild %s: %w", guildID, err)
		}
		created = false
	}

	f, err := os.OpenFile(s.DescriptorPath(guildID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("failed to create descriptor file for guild %s: %w", guildID, err)
	}
	defer f.Close()

	if _, err := f.WriteString(domain.EmptyDescriptorList); err != nil {
		return fmt.Errorf("failed to write descriptor file for guild %s: %w", guildID, err)
	}

	if created {
		slog.Info(LogMsgGuildInitialized, "guild_id", guildID)
	} else {
		slog.Warn(LogMsgGuildRepaired, "guild_id", guildID)
	}
	return nil
}

// Destroy removes the whole guild directory tree. No-op if it does not exist.
func (s *Store) Destroy(guildID string) error {
	if err := s.checkID(guildID); err != nil {
		return err
	}

	exists, err := s.Exists(guildID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := os.RemoveAll(s.Dir(guildID)); err != nil {
		return fmt.Errorf("failed to remove storage for guild %s: %w", guildID, err)
	}

	slog.Info(LogMsgGuildDestroyed, "guild_id", guildID)
	return nil
}

// ReadDescriptors parses the guild's commands.json from disk.
func (s *Store) ReadDescriptors(guildID string) ([]domain.CommandDescriptor, error) {
	if err := s.checkID(guildID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.DescriptorPath(guildID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: guild %s", domain.ErrStorageMissing, guildID)
		}
		return nil, fmt.Errorf("failed to read descriptors for guild %s: %w", guildID, err)
	}

	if err := s.schemas.ValidateBytes(data, validation.CommandsSchema); err != nil {
		return nil, fmt.Errorf("%w: guild %s: %v", domain.ErrConfigFormat, guildID, err)
	}

	var descriptors []domain.CommandDescriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("%w: guild %s: %v", domain.ErrConfigFormat, guildID, err)
	}
	if descriptors == nil {
		descriptors = []domain.CommandDescriptor{}
	}

	return descriptors, nil
}

// WriteDescriptors replaces the guild's commands.json. The guild must be initialized.
func (s *Store) WriteDescriptors(guildID string, descriptors []domain.CommandDescriptor) error {
	if err := s.checkID(guildID); err != nil {
		return err
	}

	exists, err := s.Exists(guildID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: guild %s", domain.ErrStorageMissing, guildID)
	}

	if descriptors == nil {
		descriptors = []domain.CommandDescriptor{}
	}
	data, err := json.MarshalIndent(descriptors, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode descriptors for guild %s: %w", guildID, err)
	}

	tmp := s.DescriptorPath(guildID) + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("failed to write descriptors for guild %s: %w", guildID, err)
	}
	if err := os.Rename(tmp, s.DescriptorPath(guildID)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace descriptors for guild %s: %w", guildID, err)
	}
	return nil
}

// Exists reports whether the guild has a storage directory.
func (s *Store) Exists(guildID string) (bool, error) {
	info, err := os.Stat(s.Dir(guildID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat storage for guild %s: %w", guildID, err)
	}
	return info.IsDir(), nil
}

// Guilds lists the IDs of every initialized guild, sorted.
func (s *Store) Guilds() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read guild root %s: %w", s.root, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || s.checkID(entry.Name()) != nil {
			continue
		}
		ids = append(ids, entry.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// IsGuildID reports whether id is shaped like a guild snowflake.
func (s *Store) IsGuildID(id string) bool {
	return s.checkID(id) == nil
}

func (s *Store) checkID(guildID string) error {
	if err := s.validate.Var(guildID, guildIDRule); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidGuildID, guildID)
	}
	return nil
}

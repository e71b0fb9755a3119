package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/ssild/internal/domain"
	"github.com/bnema/ssild/internal/ports"
)

const (
	configName               = "config"
	configType               = "toml"
	envPrefix                = "SSILD"
	configurationsPathKey    = "configurations.path"
	configurationsFileMode   = 0o600
	configurationsDirMode    = 0o700
	configurationsConfigDir  = ".config/ssild"
	configurationsConfigFile = "configurations.toml"
	tempFilePattern          = ".configurations-*.toml.tmp"
)

type Repository struct {
	configurationsPath string
	mu                 *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ConfigurationRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, filepath.FromSlash(configurationsConfigDir))
	defaultPath := filepath.Join(configDir, configurationsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(configurationsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	configurationsPath := cfg.GetString(configurationsPathKey)
	if configurationsPath == "" {
		return nil, errors.New("configurations path is empty")
	}
	configurationsPath, err = normalizeConfigurationsPath(configurationsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{configurationsPath: configurationsPath, mu: lockForPath(configurationsPath)}, nil
}

func (r *Repository) Path() string {
	return r.configurationsPath
}

func (r *Repository) Save(ctx context.Context, key string, cfg domain.Configuration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(key, cfg)
	updated := false
	for i := range file.Configurations {
		if file.Configurations[i].ID == encoded.ID {
			file.Configurations[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Configurations = append(file.Configurations, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Load(ctx context.Context, key string) (domain.Configuration, error) {
	if err := ctx.Err(); err != nil {
		return domain.Configuration{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Configuration{}, err
	}

	for _, entry := range file.Configurations {
		if entry.ID != key {
			continue
		}
		cfg, err := fromSchema(entry)
		if err != nil {
			return domain.Configuration{}, fmt.Errorf("decode configuration %q: %w", key, err)
		}
		return cfg, nil
	}

	return domain.Configuration{}, fmt.Errorf("%w: %q", domain.ErrConfigurationNotFound, key)
}

// Keys lists the stored configuration ids in file order.
func (r *Repository) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(file.Configurations))
	for _, entry := range file.Configurations {
		keys = append(keys, entry.ID)
	}

	return keys, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.configurationsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read configurations file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode configurations file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeConfigurationsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve configurations path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.configurationsPath)
	if err := os.MkdirAll(dir, configurationsDirMode); err != nil {
		return fmt.Errorf("create configurations directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode configurations file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp configurations file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp configurations file: %w", err)
	}

	if err := tempFile.Chmod(configurationsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp configurations file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp configurations file: %w", err)
	}

	if err := os.Rename(tempName, r.configurationsPath); err != nil {
		return fmt.Errorf("replace configurations file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.configurationsPath, configurationsFileMode); err != nil {
		return fmt.Errorf("chmod configurations file: %w", err)
	}

	return nil
}

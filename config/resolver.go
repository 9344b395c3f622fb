package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FileSystem abstracts the file operations the loader needs (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv loads a .env file without overriding variables already set.
func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds config and env files for a named client.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths when provided, otherwise searches the
// standard locations. A path that cannot be found is left empty.
func (r *Resolver) ResolveFiles(name string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(configCandidates(name))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envCandidates(name))
	}
	return resolved
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// configCandidates lists config file locations in search order.
func configCandidates(name string) []string {
	var paths []string
	for _, dir := range searchDirs() {
		for _, file := range []string{name + ".yml", name + ".yaml", "config.yml", "config.yaml"} {
			paths = append(paths, filepath.Join(dir, file))
		}
	}
	return paths
}

// envCandidates lists .env file locations in search order.
func envCandidates(name string) []string {
	var paths []string
	for _, file := range []string{fmt.Sprintf(".env.%s", name), ".env"} {
		for _, dir := range searchDirs() {
			paths = append(paths, filepath.Join(dir, file))
		}
	}
	return paths
}

func searchDirs() []string {
	return []string{".", "config", "..", filepath.Join("..", "config")}
}

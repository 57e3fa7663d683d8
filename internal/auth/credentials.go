// internal/auth/credentials.go
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage
	KeyringService = "deitrack-cli"
	// keyringAccount is the single account slot; the tool targets one site
	keyringAccount = "chronicle"
	// FallbackDir holds file-based credentials when no keyring is available
	FallbackDir = ".deitrack"
)

// Credentials are the stored login credentials for the tracking site.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// fileBasedStorageCache caches the keyring availability probe
var fileBasedStorageCache *bool

// useFileBasedStorage reports whether to fall back to file storage.
// Keyring access fails in Codespaces, CI and most containers.
func useFileBasedStorage() bool {
	if fileBasedStorageCache != nil {
		return *fileBasedStorageCache
	}

	if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
		result := true
		fileBasedStorageCache = &result
		return true
	}

	testKey := "_test_keyring_access_"
	err := keyring.Set(KeyringService, testKey, "test")
	result := err != nil
	fileBasedStorageCache = &result

	if !result {
		keyring.Delete(KeyringService, testKey)
	}

	return result
}

func credentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, FallbackDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// SaveCredentials stores credentials in the OS keyring, or a 0600 file
// under the home directory when no keyring is available.
func SaveCredentials(creds *Credentials) error {
	if creds.Email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	if useFileBasedStorage() {
		path, err := credentialsPath()
		if err != nil {
			return fmt.Errorf("failed to get credentials path: %w", err)
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to save credentials file: %w", err)
		}
		return nil
	}

	if err := keyring.Set(KeyringService, keyringAccount, string(data)); err != nil {
		return fmt.Errorf("failed to save to keyring: %w", err)
	}
	return nil
}

// LoadCredentials retrieves stored credentials. A missing entry is an error;
// callers treat it as "no stored credentials" and degrade to manual login.
func LoadCredentials() (*Credentials, error) {
	var data string

	if useFileBasedStorage() {
		path, err := credentialsPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get credentials path: %w", err)
		}
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials file: %w", err)
		}
		data = string(fileData)
	} else {
		var err error
		data, err = keyring.Get(KeyringService, keyringAccount)
		if err != nil {
			return nil, fmt.Errorf("failed to load from keyring: %w", err)
		}
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to deserialize credentials: %w", err)
	}
	return &creds, nil
}

// DeleteCredentials removes stored credentials.
func DeleteCredentials() error {
	if useFileBasedStorage() {
		path, err := credentialsPath()
		if err != nil {
			return fmt.Errorf("failed to get credentials path: %w", err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete credentials file: %w", err)
		}
		return nil
	}

	if err := keyring.Delete(KeyringService, keyringAccount); err != nil {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

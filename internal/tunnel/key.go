package tunnel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ErrKeyPassphrase means the private key is encrypted. The ssh client runs
// without a terminal, so it cannot ask for the passphrase.
var ErrKeyPassphrase = errors.New("private key is passphrase protected")

// InspectKey checks that path holds a private key ssh can use without a prompt.
func InspectKey(path string) error {
	if path == "" {
		return nil
	}

	expandedPath, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("failed to expand ssh key path %q: %w", path, err)
	}
	key, err := os.ReadFile(expandedPath)
	if err != nil {
		return fmt.Errorf("failed to read ssh key %q: %w", expandedPath, err)
	}

	if _, err := ssh.ParseRawPrivateKey(key); err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return fmt.Errorf("%w: %s", ErrKeyPassphrase, expandedPath)
		}
		return fmt.Errorf("failed to parse ssh key %q: %w", expandedPath, err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

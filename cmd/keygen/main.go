// AngelaMos | 2026
// main.go

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/carterperez-dev/templates/order-api/internal/auth"
)

func main() {
	privatePath := flag.String("private", "keys/private.pem", "output path for the ES256 private key")
	publicPath := flag.String("public", "keys/public.pem", "output path for the public key")
	force := flag.Bool("force", false, "overwrite existing keys")
	flag.Parse()

	if err := run(*privatePath, *publicPath, *force); err != nil {
		slog.Error("keygen failed", "error", err)
		os.Exit(1)
	}
}

func run(privatePath, publicPath string, force bool) error {
	if !force {
		for _, p := range []string{privatePath, publicPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use -force to overwrite)", p)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat %s: %w", p, err)
			}
		}
	}

	for _, p := range []string{privatePath, publicPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return fmt.Errorf("create key dir: %w", err)
		}
	}

	if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
		return err
	}

	slog.Info("key pair written", "private", privatePath, "public", publicPath)
	return nil
}

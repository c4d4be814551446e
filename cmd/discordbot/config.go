/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
	"github.com/joho/godotenv"
)

type botConfig struct {
	Token  string
	PubKey ed25519.PublicKey
	AppID  string
	// CmdID is the id of the already registered /fcc command, if any
	CmdID string
	// CmdHash is the hash of the registration last pushed to Discord
	CmdHash string

	ActiveURL   string
	PastURL     string
	SystemsURL  string
	CacheBucket string
	ListenAddr  string
}

// loadConfig reads the bot configuration from the environment, after
// loading a .env file from the working directory when there is one.
func loadConfig() (*botConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("discordbot.config: failed to load .env: %v", err)
	}

	cfg := &botConfig{
		Token:       os.Getenv("FCC_BOT_TOKEN"),
		AppID:       os.Getenv("FCC_BOT_APPID"),
		CmdID:       os.Getenv("FCC_BOT_CMDID"),
		CmdHash:     os.Getenv("FCC_BOT_CMDHASH"),
		ActiveURL:   envOr("FCC_ACTIVE_URL", internal.DefaultActiveURL()),
		PastURL:     envOr("FCC_PAST_URL", internal.DefaultPastURL()),
		SystemsURL:  envOr("FCC_SYSTEMS_URL", internal.DefaultSystemsURL()),
		CacheBucket: envOr("FCC_CACHE_BUCKET", internal.WebCacheBucket),
		ListenAddr:  envOr("FCC_LISTEN_ADDR", ":8080"),
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("FCC_BOT_TOKEN environment variable is not set")
	}
	if cfg.AppID == "" {
		return nil, fmt.Errorf("FCC_BOT_APPID environment variable is not set")
	}

	pubKeyText := strings.TrimSpace(os.Getenv("FCC_BOT_PUBKEY"))
	if pubKeyText == "" {
		return nil, fmt.Errorf("FCC_BOT_PUBKEY environment variable is not set")
	}
	pubKeyBytes, err := hex.DecodeString(pubKeyText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FCC_BOT_PUBKEY: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("FCC_BOT_PUBKEY must be %d bytes, got %d",
			ed25519.PublicKeySize, len(pubKeyBytes))
	}
	cfg.PubKey = ed25519.PublicKey(pubKeyBytes)

	return cfg, nil
}

func envOr(name string, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

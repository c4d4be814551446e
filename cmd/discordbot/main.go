/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/ClarkeTj/fuprechess-tdbot/club"
	"github.com/ClarkeTj/fuprechess-tdbot/internal"
	"github.com/bwmarrin/discordgo"
)

type TopLevelCommand string

const (
	FccCmd TopLevelCommand = "fcc"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	FccCmd: fccCmdHandler,
}

// siteLoader fetches the club documents for each command; main points it at
// the configured locations.
var siteLoader func(ctx context.Context) (*club.Site, error)

func newSiteLoader(cfg *botConfig) func(ctx context.Context) (*club.Site, error) {
	httpClient := internal.NewCachedHttpClient(context.Background(),
		cfg.CacheBucket, internal.DocumentMaxAge)

	return func(ctx context.Context) (*club.Site, error) {
		return club.LoadSite(ctx, club.SiteConfig{
			ActiveLocation:  cfg.ActiveURL,
			PastLocation:    cfg.PastURL,
			SystemsLocation: cfg.SystemsURL,
			Client:          httpClient,
		})
	}
}

func newInteractionHandler(pubKey ed25519.PublicKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !discordgo.VerifyInteraction(r, pubKey) {
			log.Printf("discordbot.int: failed to verify")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("discordbot.int: failed to read request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var inter discordgo.Interaction
		if err := inter.UnmarshalJSON(body); err != nil {
			log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%s",
				err, body)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		resp := &discordgo.InteractionResponse{}
		switch inter.Type {
		case discordgo.InteractionPing:
			resp.Type = discordgo.InteractionResponsePong
		case discordgo.InteractionApplicationCommand:
			name := inter.ApplicationCommandData().Name
			hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
			if !ok {
				resp.Type = discordgo.InteractionResponseChannelMessageWithSource
				resp.Data = &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("unknown command '%v'", name),
					Flags:   discordgo.MessageFlagsEphemeral,
				}
			} else {
				resp = hdlr(r.Context(), &inter)
			}
		default:
			log.Printf("discordbot.int: unimplemented interaction type %v",
				inter.Type)
			w.WriteHeader(http.StatusNotImplemented)
			return
		}

		rawResp, err := json.Marshal(resp)
		if err != nil {
			log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(rawResp); err != nil {
			log.Printf("discordbot.int: failed to write resp: err:%v", err)
		}
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func cmdRegistrationHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:]), nil
}

func shouldUpdateCmdRegistration(cfg *botConfig,
	cmd *discordgo.ApplicationCommand) bool {

	hexString, err := cmdRegistrationHash(cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	shouldUpdate := (hexString != cfg.CmdHash)
	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please set FCC_BOT_CMDHASH to %v",
			hexString)
	}

	return shouldUpdate
}

func registerSlashCommands(session *discordgo.Session, cfg *botConfig) {
	fccCmd := fccCommand()

	if cfg.CmdID == "" {
		cmd, err := session.ApplicationCommandCreate(cfg.AppID, "", fccCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", fccCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); please set FCC_BOT_CMDID",
			cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(cfg, fccCmd) {
		cmd, err := session.ApplicationCommandEdit(cfg.AppID, "", cfg.CmdID,
			fccCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", fccCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("discordbot.init: %v", err)
	}
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("discordbot.init: Failed to initialize discord client: %v", err)
	}
	siteLoader = newSiteLoader(cfg)

	go registerSlashCommands(session, cfg)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname,
		cfg.ListenAddr)

	http.HandleFunc("/DiscordBot/Interaction", newInteractionHandler(cfg.PubKey))
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}

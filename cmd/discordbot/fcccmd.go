/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"github.com/ClarkeTj/fuprechess-tdbot/club"
	"github.com/ClarkeTj/fuprechess-tdbot/pairing"
	"github.com/bwmarrin/discordgo"
)

type FccSubCommand string

const (
	FccHelpCmd      FccSubCommand = "help"
	FccListCmd      FccSubCommand = "list"
	FccStandingsCmd FccSubCommand = "standings"
	FccRoundsCmd    FccSubCommand = "rounds"
	FccPairingsCmd  FccSubCommand = "pairings"
)

var fccSubCmdHdlrs = map[FccSubCommand]CmdHandler{
	FccHelpCmd:      fccHelpCmdHandler,
	FccListCmd:      fccListCmdHandler,
	FccStandingsCmd: fccStandingsCmdHandler,
	FccRoundsCmd:    fccRoundsCmdHandler,
	FccPairingsCmd:  fccPairingsCmdHandler,
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func tournamentOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "tournament",
		Description: "Tournament name or number (as shown by list)",
		Required:    false,
	}
}

func fccCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(FccCmd),
		Description: "FUPRE Chess Club tournaments; try /fcc help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(FccHelpCmd),
				Description: "Show usage for fcc",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(FccListCmd),
				Description: "List active and completed tournaments",
				Options: []*discordgo.ApplicationCommandOption{
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(FccStandingsCmd),
				Description: "Get current standings for a tournament",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(),
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(FccRoundsCmd),
				Description: "Get the recorded rounds of a tournament",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(),
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(FccPairingsCmd),
				Description: "Get suggested pairings for the next round",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(),
					broadcastOption(),
				},
			},
		},
	}
}

func fccCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := fccHelpCmdHandler
	if len(data.Options) > 0 {
		if h, ok := fccSubCmdHdlrs[FccSubCommand(data.Options[0].Name)]; ok {
			hdlr = h
		}
	}
	return hdlr(ctx, inter)
}

//go:embed help.md
var helpText string

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

func fccHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

type subCmdOptions struct {
	tournament string
	broadcast  bool
}

func parseSubCmdOptions(inter *discordgo.Interaction) subCmdOptions {
	var opts subCmdOptions
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "tournament":
			opts.tournament = opt.StringValue()
		case "broadcast":
			opts.broadcast = opt.BoolValue()
		}
	}

	return opts
}

func fccListCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubCmdOptions(inter)

	site, err := siteLoader(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading tournaments: %v", err)
		log.Printf("discordbot.list: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = codeBlock(club.BuildListOutput(site))
	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

// selectTournament loads the club documents and picks the tournament named
// in the interaction. On failure the returned message is ready to send.
func selectTournament(ctx context.Context, cmd string,
	opts subCmdOptions) (*club.Site, *pairing.Tournament, string) {

	site, err := siteLoader(ctx)
	if err != nil {
		msg := fmt.Sprintf("Error loading tournaments: %v", err)
		log.Printf("discordbot.%v: %v", cmd, msg)
		return nil, nil, msg
	}
	t, err := site.Active.FindTournament(opts.tournament)
	if errors.Is(err, club.ErrTournamentNotFound) {
		return nil, nil, fmt.Sprintf("Unknown tournament %q; try /fcc list",
			opts.tournament)
	} else if err != nil {
		log.Printf("discordbot.%v: %v", cmd, err)
		return nil, nil, fmt.Sprintf("Error finding tournament: %v", err)
	}
	t = club.ResolveRules(t, site.Systems)
	if err := pairing.Validate(t); err != nil {
		msg := fmt.Sprintf("%v cannot be paired: %v", t.Name, err)
		log.Printf("discordbot.%v: %v", cmd, msg)
		return nil, nil, msg
	}

	return site, t, ""
}

func tournamentTitle(site *club.Site, t *pairing.Tournament) string {
	title := fmt.Sprintf("**%v** (%v", t.Name,
		site.Systems.DisplayName(t.PairingSystemID))
	if t.TimeControl != "" {
		title += ", " + t.TimeControl
	}
	return title + ")\n"
}

func fccStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubCmdOptions(inter)
	site, t, msg := selectTournament(ctx, "standings", opts)
	if msg != "" {
		resp.Data.Content = msg
		return resp
	}

	resp.Data.Content = tournamentTitle(site, t) +
		codeBlock(pairing.BuildStandingsOutput(t))
	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func fccRoundsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubCmdOptions(inter)
	site, t, msg := selectTournament(ctx, "rounds", opts)
	if msg != "" {
		resp.Data.Content = msg
		return resp
	}

	resp.Data.Content = tournamentTitle(site, t) +
		codeBlock(pairing.BuildRoundsOutput(t))
	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func fccPairingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubCmdOptions(inter)
	site, t, msg := selectTournament(ctx, "pairings", opts)
	if msg != "" {
		resp.Data.Content = msg
		return resp
	}

	prop, err := pairing.NextRound(t)
	switch {
	case errors.Is(err, pairing.ErrScheduleComplete):
		resp.Data.Content = tournamentTitle(site, t) +
			"Round Robin schedule complete."
	case errors.Is(err, pairing.ErrUnsupportedSystem):
		resp.Data.Content = tournamentTitle(site, t) +
			fmt.Sprintf("Pairing system %q not supported yet.", t.PairingSystemID)
	case err != nil:
		resp.Data.Content = fmt.Sprintf("Error pairing %v: %v", t.Name, err)
		log.Printf("discordbot.pairings: %v", resp.Data.Content)
		return resp
	default:
		for _, w := range prop.Warnings {
			log.Printf("discordbot.pairings: warning: %v: %v", t.Name, w)
		}
		resp.Data.Content = tournamentTitle(site, t) +
			codeBlock(pairing.BuildProposalOutput(t, prop))
	}

	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func codeBlock(s string) string {
	return fmt.Sprintf("```\n%s```", truncateContent(s))
}

func truncateContent(s string) string {
	const MsgLimit = 1900 // keep space for the title and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...\n", string(runes[:MsgLimit]))
	}
	return s
}

package botcmds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"calcbot/internal/botenv"
	"calcbot/internal/calcdb"

	"github.com/bwmarrin/discordgo"
)

var historyOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "terms",
	Description: "Words or numbers to search your calculations for",
	Required:    false,
}

var HistoryHelp = discordgo.MessageEmbed{
	Title: "History Command",
	Description: "*[prefix]history (terms)*\n\n" +
		"Returns the user's latest calculations, or those matching the search terms.\n" +
		"Ex: `calc!history` or `calc!history log pi`",
}

const (
	HistoryDisabled = "History is not enabled."
	SearchDisabled  = "Search is not enabled."
	NoCalculations  = "No calculations found."
	HistoryFailed   = "Oh dear, it seems like there was a problem."
)

// [prefix]history (terms)
// Retrieves the user's calculations from the history database, newest first,
// or the best matches for the terms from the search index.
func History(ctx context.Context, env *botenv.BotEnv, req Request) Response {
	if env.History == nil {
		return Response{Content: HistoryDisabled}
	}
	limit := env.Config.HistoryLimit
	log := env.Log.WithField("author", req.AuthorID)

	var calcs []calcdb.Calculation
	var err error
	title := "History"
	if req.Args == "" {
		calcs, err = env.History.FindByAuthor(req.AuthorID, limit)
	} else {
		if env.Index == nil {
			return Response{Content: SearchDisabled}
		}
		title = fmt.Sprintf("History matching %q", req.Args)
		calcs, err = search(env, req.AuthorID, req.Args, limit)
	}
	if err != nil {
		log.WithError(err).Error("History lookup failed.")
		return Response{Content: HistoryFailed}
	}

	if len(calcs) == 0 {
		return Response{Content: NoCalculations}
	}
	var b strings.Builder
	for _, c := range calcs {
		fmt.Fprintf(&b, "`%s`\n", c.String())
	}
	return Response{Embed: &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(b.String(), maxEmbedDescription),
	}}
}

// maxEmbedDescription is Discord's limit on an embed description.
const maxEmbedDescription = 4096

func search(env *botenv.BotEnv, authorID, terms string, limit int) ([]calcdb.Calculation, error) {
	ids, err := env.Index.Search(authorID, terms, limit)
	if err != nil {
		return nil, err
	}
	calcs := make([]calcdb.Calculation, 0, len(ids))
	for _, id := range ids {
		c, err := env.History.FindByID(id)
		if errors.Is(err, sql.ErrNoRows) {
			// Deleted from the database but still indexed.
			continue
		}
		if err != nil {
			return calcs, err
		}
		calcs = append(calcs, *c)
	}
	return calcs, nil
}

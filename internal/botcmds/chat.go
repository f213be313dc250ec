package botcmds

import (
	"context"
	"strings"

	"calcbot/internal/botenv"

	"github.com/bwmarrin/discordgo"
)

var chatOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "instruction",
	Description: "Instruction for the assistant",
	Required:    true,
}

var ChatHelp = discordgo.MessageEmbed{
	Title: "Chat Command",
	Description: "*[prefix]chat [instruction]*\n\n" +
		"Forwards the instruction to the configured language model and replies with its answer.\n" +
		"Ex: `calc!chat What is the largest city in Europe?`",
}

const (
	InvalidInstruction = "Invalid instruction"
	ChatDisabled       = "Chat is not configured."
	ChatFailed         = "Oh dear, it seems like there was a problem."
)

// [prefix]chat [instruction]
func Chat(ctx context.Context, env *botenv.BotEnv, req Request) Response {
	if req.Args == "" {
		return Response{Content: InvalidInstruction}
	}
	if env.Chat == nil {
		return Response{Content: ChatDisabled}
	}
	if timeout := env.Config.ChatTimeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log := env.Log.WithField("author", req.AuthorID)
	reply, err := env.Chat.Chat(ctx, req.Args)
	if err != nil {
		log.WithError(err).Error("Chat request failed.")
		return Response{Content: ChatFailed}
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		log.Warn("Chat reply was empty.")
		return Response{Content: ChatFailed}
	}
	log.Debug("Chat command processed.")
	return Response{Content: reply}
}

package botcmds

import (
	"context"
	"fmt"
	"strings"

	"calcbot/internal/botenv"

	"github.com/bwmarrin/discordgo"
)

var helpOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "command",
	Description: "Command to describe",
	Required:    false,
}

var HelpHelp = discordgo.MessageEmbed{
	Title: "Help Command",
	Description: "*[prefix]help (command)*\n\n" +
		"Lists the commands, or describes one of them.\n" +
		"Ex: `calc!help calc`",
}

// [prefix]help (command)
func Help(ctx context.Context, env *botenv.BotEnv, req Request) Response {
	if req.Args == "" {
		return Response{Embed: commandsMsg(env.Config.Prefix)}
	}
	name := strings.ToLower(strings.Fields(req.Args)[0])
	cmd, ok := Commands[name]
	if !ok {
		return Response{Content: fmt.Sprintf("No command named %q.", name)}
	}
	embed := cmd.HelpMsg
	embed.Description = strings.ReplaceAll(embed.Description, "[prefix]", env.Config.Prefix)
	return Response{Embed: &embed}
}

func commandsMsg(prefix string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Commands Help",
		Description: strings.Join(Names(), "\n") + "\n\n" +
			fmt.Sprintf("For more information on a command, use `%shelp [command]`\n", prefix) +
			fmt.Sprintf("Ex: `%shelp calc`", prefix),
	}
}

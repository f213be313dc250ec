package botcmds

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"calcbot/internal/botenv"

	"github.com/bwmarrin/discordgo"
)

// Request is a command invocation, independent of whether it arrived as a
// prefixed message or a slash command.
type Request struct {
	AuthorID  string
	ChannelID string
	// Args is everything after the command name, trimmed.
	Args string
}

// Response is what a command sends back. Either field may be empty.
type Response struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

type Command struct {
	Description string
	// Option is the single free-text argument, nil for none.
	Option  *discordgo.ApplicationCommandOption
	Cmd     func(context.Context, *botenv.BotEnv, Request) Response
	HelpMsg discordgo.MessageEmbed
}

// Commands maps names to commands. It is filled in init because help reads it.
var Commands map[string]Command

func init() {
	Commands = map[string]Command{
		"calc":    {Description: "Perform calculations", Option: calcOption, Cmd: Calc, HelpMsg: CalcHelp},
		"chat":    {Description: "Chat with the assistant", Option: chatOption, Cmd: Chat, HelpMsg: ChatHelp},
		"history": {Description: "List or search your calculations", Option: historyOption, Cmd: History, HelpMsg: HistoryHelp},
		"help":    {Description: "Describe the commands", Option: helpOption, Cmd: Help, HelpMsg: HelpHelp},
	}
}

// UnknownCommand is the reply to a slash command the bot does not know.
const UnknownCommand = "Unknown Command"

// maxMessageLength is Discord's limit on message content.
const maxMessageLength = 2000

// Names returns the command names in order.
func Names() []string {
	names := make([]string, 0, len(Commands))
	for name := range Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse splits a prefixed message into a command name and its arguments. ok
// is false when content does not start with prefix or names no command.
func Parse(prefix, content string) (name, args string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}
	rest := strings.TrimSpace(content[len(prefix):])
	if rest == "" {
		return "", "", false
	}
	name = rest
	if i := strings.IndexFunc(rest, isSpace); i >= 0 {
		name, args = rest[:i], strings.TrimSpace(rest[i:])
	}
	name = strings.ToLower(name)
	if _, known := Commands[name]; !known {
		return "", "", false
	}
	return name, args, true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Dispatch runs the named command.
func Dispatch(ctx context.Context, env *botenv.BotEnv, name string, req Request) Response {
	cmd, ok := Commands[name]
	if !ok {
		return Response{Content: UnknownCommand}
	}
	req.Args = strings.TrimSpace(req.Args)
	resp := cmd.Cmd(ctx, env, req)
	resp.Content = truncate(resp.Content, maxMessageLength)
	return resp
}

// ApplicationCommands describes the command table as slash commands.
func ApplicationCommands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(Commands))
	for _, name := range Names() {
		c := Commands[name]
		ac := &discordgo.ApplicationCommand{
			Name:        name,
			Description: c.Description,
			Type:        discordgo.ChatApplicationCommand,
		}
		if c.Option != nil {
			ac.Options = []*discordgo.ApplicationCommandOption{c.Option}
		}
		cmds = append(cmds, ac)
	}
	return cmds
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

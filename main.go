package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	dg "github.com/bwmarrin/discordgo"
	logrus "github.com/sirupsen/logrus"

	"calcbot/internal/botcmds"
	"calcbot/internal/botenv"
	"calcbot/internal/calccache"
	"calcbot/internal/calcdb"
	"calcbot/internal/chat"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration")
	flag.Parse()

	// Load the config.json file.
	config, err := botenv.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}
	log, err := botenv.NewLogger(config.Log, os.Stderr)
	if err != nil {
		logrus.Fatal(err)
	}
	log.Info("Logging to file.")

	botEnv := &botenv.BotEnv{Config: config, Log: log}
	if err := openStorage(botEnv); err != nil {
		log.Fatal(err)
	}
	defer botEnv.Close()

	if config.Chat.Provider != "" {
		botEnv.Chat, err = chat.New(context.Background(), config.Chat)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Warn("No chat provider configured.")
	}

	// Create a new Discord session using the provided bot token.
	bot, err := dg.New("Bot " + config.Token)
	if err != nil {
		log.Fatal(err)
	}
	handler := &Handler{Env: botEnv}
	bot.AddHandler(handler.ready)
	bot.AddHandler(handler.messageCreate)
	bot.AddHandler(handler.interactionCreate)
	// Prefixed commands need message content; slash commands need nothing extra.
	bot.Identify.Intents = dg.MakeIntent(dg.IntentsGuildMessages | dg.IntentsDirectMessages | dg.IntentsMessageContent)

	// Open a websocket connection to Discord and begin listening.
	if err := bot.Open(); err != nil {
		log.Fatal(err)
	}
	log.Debug(botcmds.Names())

	// Wait here until CTRL-C or other term signal is received.
	fmt.Println("Bot is now running.  Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	// Cleanly close down the Discord session.
	bot.Close()
}

func openStorage(env *botenv.BotEnv) error {
	storage := env.Config.Storage
	if storage.Database != "" {
		repo, err := calcdb.Open(storage.Database)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		env.History = repo

		idx, err := calcdb.OpenIndex(storage.IndexPath)
		if err != nil {
			return fmt.Errorf("opening index: %w", err)
		}
		env.Index = idx
	}
	if !storage.DisableCache {
		cache, err := calccache.Open(storage.CacheDir, env.Config.CacheTTL.Duration, env.Log)
		if err != nil {
			return err
		}
		env.Cache = cache
	}
	return nil
}

type Handler struct {
	Env *botenv.BotEnv
}

func (h *Handler) ready(s *dg.Session, r *dg.Ready) {
	h.Env.Log.WithField("user", r.User.Username).Info("Connected.")

	created, err := s.ApplicationCommandBulkOverwrite(r.User.ID, h.Env.Config.GuildID, botcmds.ApplicationCommands())
	if err != nil {
		h.Env.Log.WithError(err).Error("Registering commands.")
		return
	}
	names := make([]string, len(created))
	for i, c := range created {
		names[i] = c.Name
	}
	h.Env.Log.WithField("commands", names).Info("Registered commands.")
}

// This function will be called (due to AddHandler above) every time a new
// message is created on any channel that the authenticated bot has access to.
func (h *Handler) messageCreate(s *dg.Session, m *dg.MessageCreate) {
	// Ignore all messages created by the bot itself.
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	// Ignore messages from other bots.
	if m.Author.Bot {
		return
	}
	// Ignore messages from webhooks.
	if m.WebhookID != "" {
		return
	}
	name, args, ok := botcmds.Parse(h.Env.Config.Prefix, m.Content)
	if !ok {
		return
	}
	h.Env.Log.WithFields(logrus.Fields{"command": name, "author": m.Author.ID}).Debug("Received command.")

	resp := botcmds.Dispatch(context.Background(), h.Env, name, botcmds.Request{
		AuthorID:  m.Author.ID,
		ChannelID: m.ChannelID,
		Args:      args,
	})
	send := &dg.MessageSend{Content: resp.Content}
	if resp.Embed != nil {
		send.Embeds = []*dg.MessageEmbed{resp.Embed}
	}
	if _, err := s.ChannelMessageSendComplex(m.ChannelID, send); err != nil {
		h.Env.Log.WithError(err).Error("Cannot send response.")
	}
}

// interactionCreate answers slash commands: acknowledge first so slow
// commands such as chat do not time out, then edit in the result.
func (h *Handler) interactionCreate(s *dg.Session, i *dg.InteractionCreate) {
	if i.Type != dg.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	req := botcmds.Request{ChannelID: i.ChannelID}
	if i.Member != nil && i.Member.User != nil {
		req.AuthorID = i.Member.User.ID
	} else if i.User != nil {
		req.AuthorID = i.User.ID
	}
	if len(data.Options) > 0 && data.Options[0].Type == dg.ApplicationCommandOptionString {
		req.Args = data.Options[0].StringValue()
	}
	log := h.Env.Log.WithFields(logrus.Fields{"command": data.Name, "author": req.AuthorID})
	log.Debug("Received command.")

	err := s.InteractionRespond(i.Interaction, &dg.InteractionResponse{
		Type: dg.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.WithError(err).Error("Cannot respond to application command.")
	}

	resp := botcmds.Dispatch(context.Background(), h.Env, data.Name, req)
	edit := &dg.WebhookEdit{Content: &resp.Content}
	if resp.Embed != nil {
		edit.Embeds = &[]*dg.MessageEmbed{resp.Embed}
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		log.WithError(err).Error("Cannot edit response.")
	}
}

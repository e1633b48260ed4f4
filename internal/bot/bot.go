package bot

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/templui/scoutbot/internal/handler"
)

type Bot struct {
	session  *discordgo.Session
	commands *handler.CommandHandler
	guildID  string
}

func New(token, guildID string, commands *handler.CommandHandler) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		session:  session,
		commands: commands,
		guildID:  guildID,
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)

	return b, nil
}

// Open connects to the gateway. Commands are synced once the session is ready.
func (b *Bot) Open() error {
	err := b.session.Open()
	if err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("bot connected", "user", r.User.Username, "guilds", len(r.Guilds))

	// Bulk overwrite replaces whatever an older deploy registered
	registered, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.guildID, applicationCommands)
	if err != nil {
		slog.Error("failed to sync commands", "error", err, "guild_id", b.guildID)
		return
	}
	slog.Info("commands synced", "count", len(registered), "guild_id", b.guildID)
}

// responder is the part of the session used to answer interactions
type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handle(s, i)
}

func (b *Bot) handle(s responder, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	who := caller(i)
	log := slog.With(
		"request_id", uuid.NewString(),
		"command", data.Name,
		"user_id", who.Owner.ID,
		"guild_id", i.GuildID,
	)
	start := time.Now()
	responded := false

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		log.Error("command panic", "panic", rec, "stack", string(debug.Stack()))
		if responded {
			return
		}
		err := s.InteractionRespond(i.Interaction, response(handler.Reply{Content: msgCommandFailed, Ephemeral: true}))
		if err != nil {
			log.Error("failed to respond to interaction", "error", err)
		}
	}()

	reply, ok := b.dispatch(data, who)
	if !ok {
		log.Warn("unknown command")
		return
	}

	err := s.InteractionRespond(i.Interaction, response(reply))
	responded = true
	if err != nil {
		log.Error("failed to respond to interaction", "error", err)
		return
	}
	for _, content := range reply.FollowUps {
		_, err := s.FollowupMessageCreate(i.Interaction, true, followUp(content, reply.Ephemeral))
		if err != nil {
			log.Error("failed to send follow-up", "error", err)
			return
		}
	}
	log.Info("command handled", "duration_ms", time.Since(start).Milliseconds(), "follow_ups", len(reply.FollowUps))
}

func (b *Bot) dispatch(data discordgo.ApplicationCommandInteractionData, who handler.Caller) (handler.Reply, bool) {
	switch data.Name {
	case commandScout:
		args := options(data)
		return b.commands.Scout(who, args[optionObjective], args[optionMap], args[optionDuration]), true
	case commandTracker:
		return b.commands.Tracker(), true
	case commandRank:
		return b.commands.Rank(), true
	case commandReset:
		return b.commands.ResetRank(who), true
	default:
		return handler.Reply{}, false
	}
}

package bot

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/templui/scoutbot/internal/handler"
	"github.com/templui/scoutbot/internal/model"
)

// caller snapshots the invoking user. Guild invocations carry a Member with
// resolved permissions; DMs only carry a User and are never admin.
func caller(i *discordgo.InteractionCreate) handler.Caller {
	if i.Member != nil && i.Member.User != nil {
		return handler.Caller{
			Owner: model.Owner{
				ID:   userID(i.Member.User),
				Name: displayName(i.Member.Nick, i.Member.User),
			},
			IsAdmin: i.Member.Permissions&discordgo.PermissionAdministrator != 0,
		}
	}
	if i.User != nil {
		return handler.Caller{
			Owner: model.Owner{
				ID:   userID(i.User),
				Name: displayName("", i.User),
			},
		}
	}
	return handler.Caller{}
}

// displayName prefers the guild nickname, then the global name, then the username
func displayName(nick string, user *discordgo.User) string {
	for _, name := range []string{nick, user.GlobalName, user.Username} {
		if strings.TrimSpace(name) != "" {
			return name
		}
	}
	return user.ID
}

func userID(user *discordgo.User) int64 {
	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// options flattens the top-level string options of a slash command
func options(data discordgo.ApplicationCommandInteractionData) map[string]string {
	values := make(map[string]string, len(data.Options))
	for _, option := range data.Options {
		if option.Type == discordgo.ApplicationCommandOptionString {
			values[option.Name] = option.StringValue()
		}
	}
	return values
}

const msgCommandFailed = "Algo deu errado. Tente novamente."

// noMentions lets leaderboard mentions render as names without pinging anyone
func noMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}

func response(reply handler.Reply) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{
		Content:         reply.Content,
		AllowedMentions: noMentions(),
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

func followUp(content string, ephemeral bool) *discordgo.WebhookParams {
	params := &discordgo.WebhookParams{
		Content:         content,
		AllowedMentions: noMentions(),
	}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	return params
}

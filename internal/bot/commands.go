package bot

import "github.com/bwmarrin/discordgo"

const (
	commandScout   = "scout"
	commandTracker = "tracker"
	commandRank    = "rank"
	commandReset   = "rr"

	optionObjective = "objetivo"
	optionMap       = "mapa"
	optionDuration  = "tempo"
)

var adminPermission int64 = discordgo.PermissionAdministrator

// applicationCommands are registered with Discord when the session is ready
var applicationCommands = []*discordgo.ApplicationCommand{
	{
		Name:        commandScout,
		Description: "Adicione um objetivo para ser conquistado",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionObjective,
				Description: "Nome do objetivo",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionMap,
				Description: "Nome do mapa",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionDuration,
				Description: "Tempo restante (hh:mm)",
				Required:    true,
			},
		},
	},
	{
		Name:        commandTracker,
		Description: "Lista todos os objetivos pendentes",
	},
	{
		Name:        commandRank,
		Description: "Ranking dos usuários que mais listaram objetivos",
	},
	{
		Name:                     commandReset,
		Description:              "Reseta o ranking dos usuários (admin apenas)",
		DefaultMemberPermissions: &adminPermission,
	},
}

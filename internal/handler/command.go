package handler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/templui/scoutbot/internal/model"
	"github.com/templui/scoutbot/internal/service"
	"github.com/templui/scoutbot/internal/validation"
)

var ErrPermissionDenied = errors.New("permission denied")

const (
	msgObjectiveAdded   = "Objetivo '%s' adicionado para o mapa '%s' e será liberado em %s."
	msgInvalidDuration  = "Formato inválido! Use o tempo como hh:mm"
	msgObjectiveFailed  = "Não foi possível salvar o objetivo. Tente novamente."
	msgNothingPending   = "Nenhum objetivo pendente."
	msgNothingRanked    = "Nenhum objetivo listado ainda."
	msgRankReset        = "Ranking resetado com sucesso."
	msgRankResetDenied  = "Você não tem permissão para resetar o ranking."
	msgRankResetFailed  = "Não foi possível resetar o ranking. Tente novamente."
	defaultRankingLimit = 10
)

// Reply is the message sent back for one command invocation.
// Ephemeral replies are shown only to the caller. FollowUps carries the
// overflow of listings too long for a single message.
type Reply struct {
	Content   string
	FollowUps []string
	Ephemeral bool
}

func listReply(lines []string) Reply {
	chunks := splitMessage(lines, maxMessageLength)
	return Reply{Content: chunks[0], FollowUps: chunks[1:]}
}

// Caller identifies who invoked a command. IsAdmin is resolved by the
// platform before the command runs.
type Caller struct {
	Owner   model.Owner
	IsAdmin bool
}

type CommandHandler struct {
	objectiveService   *service.ObjectiveService
	leaderboardService *service.LeaderboardService
	rankingLimit       int
}

func NewCommandHandler(
	objectiveService *service.ObjectiveService,
	leaderboardService *service.LeaderboardService,
	rankingLimit int,
) *CommandHandler {
	if rankingLimit <= 0 {
		rankingLimit = defaultRankingLimit
	}
	return &CommandHandler{
		objectiveService:   objectiveService,
		leaderboardService: leaderboardService,
		rankingLimit:       rankingLimit,
	}
}

// Scout registers an objective for the caller
func (h *CommandHandler) Scout(caller Caller, name, mapName, duration string) Reply {
	objective, err := h.objectiveService.Register(caller.Owner, name, mapName, duration)
	if errors.Is(err, validation.ErrInvalidDuration) {
		slog.Debug("scout rejected", "user_id", caller.Owner.ID, "duration", duration)
		return Reply{Content: msgInvalidDuration, Ephemeral: true}
	}
	if err != nil {
		slog.Error("failed to register objective", "error", err, "user_id", caller.Owner.ID)
		return Reply{Content: msgObjectiveFailed, Ephemeral: true}
	}

	return Reply{
		Content:   fmt.Sprintf(msgObjectiveAdded, objective.Name, objective.Map, duration),
		Ephemeral: true,
	}
}

// Tracker lists every objective that has not unlocked yet
func (h *CommandHandler) Tracker() Reply {
	pending := h.objectiveService.PendingNow()
	if len(pending) == 0 {
		return Reply{Content: msgNothingPending}
	}
	return listReply(renderPending(pending))
}

// Rank shows the top contributors
func (h *CommandHandler) Rank() Reply {
	top := h.leaderboardService.Top(h.rankingLimit)
	if len(top) == 0 {
		return Reply{Content: msgNothingRanked}
	}
	return listReply(renderRanking(top))
}

// ResetRank clears the leaderboard. Administrators only.
func (h *CommandHandler) ResetRank(caller Caller) Reply {
	err := requireAdmin(caller)
	if err != nil {
		slog.Warn("leaderboard reset denied", "user_id", caller.Owner.ID)
		return Reply{Content: msgRankResetDenied, Ephemeral: true}
	}

	err = h.leaderboardService.Reset()
	if err != nil {
		slog.Error("failed to reset leaderboard", "error", err, "user_id", caller.Owner.ID)
		return Reply{Content: msgRankResetFailed, Ephemeral: true}
	}

	slog.Info("leaderboard reset by admin", "user_id", caller.Owner.ID)
	return Reply{Content: msgRankReset}
}

func requireAdmin(caller Caller) error {
	if !caller.IsAdmin {
		return ErrPermissionDenied
	}
	return nil
}

package handler

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/templui/scoutbot/internal/model"
)

// maxMessageLength is Discord's content limit, counted in characters
const maxMessageLength = 2000

// relativeTimestamp renders a Discord timestamp that each client shows as "in 1 hour"
func relativeTimestamp(objective model.Objective) string {
	return fmt.Sprintf("<t:%d:R>", objective.UnlockAt.Unix())
}

func mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

func renderPending(objectives []model.Objective) []string {
	lines := make([]string, 0, len(objectives))
	for _, objective := range objectives {
		lines = append(lines, fmt.Sprintf("%s - %s - %s - %s - Timed by: %s",
			objective.Name,
			objective.Map,
			objective.UnlockAt.UTC().Format("15:04 UTC"),
			relativeTimestamp(objective),
			objective.Owner.Name,
		))
	}
	return lines
}

func renderRanking(top []model.UserCount) []string {
	lines := make([]string, 0, len(top))
	for i, entry := range top {
		lines = append(lines, fmt.Sprintf("top %d: %s (%d objetivos)", i+1, mention(entry.UserID), entry.Count))
	}
	return lines
}

// splitMessage packs newline-joined lines into messages of at most limit
// characters. Lines are never split across messages; a single line over the
// limit is cut short. Always returns at least one message.
func splitMessage(lines []string, limit int) []string {
	var (
		messages []string
		current  strings.Builder
		length   int
	)
	for _, line := range lines {
		line = truncate(line, limit)
		n := utf8.RuneCountInString(line)
		if length > 0 && length+1+n > limit {
			messages = append(messages, current.String())
			current.Reset()
			length = 0
		}
		if length > 0 {
			current.WriteByte('\n')
			length++
		}
		current.WriteString(line)
		length += n
	}
	return append(messages, current.String())
}

func truncate(line string, limit int) string {
	if utf8.RuneCountInString(line) <= limit {
		return line
	}
	runes := []rune(line)
	return string(runes[:limit-1]) + "…"
}

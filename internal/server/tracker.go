package server

import (
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"spylingo/internal/game"
)

type chatMessageRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// handleChatMessage classifies a free-text chat line into game signals:
// assigned-word usage and, when the sender is the player being questioned,
// an implicit turn pass. The engine itself never sees raw text.
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(r.PathValue("chatID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}
	var req chatMessageRequest
	if err := readJSON(r.Body, &req); err != nil || req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "user_id and text are required")
		return
	}
	signals := s.trackMessage(chatID, req.UserID, req.Text)
	writeJSON(w, http.StatusOK, map[string]any{"words_used": signals})
}

// trackMessage returns the assigned words first used by this message.
func (s *Server) trackMessage(chatID, userID int64, text string) []string {
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}
	snap, ok := s.engine.ActiveGameForChat(chatID)
	if !ok || snap.Status != game.StatusPlaying {
		return nil
	}
	// Only the asker and the player on the spot are mid-conversation;
	// bystander chatter earns no word credit.
	if userID != snap.AskerID && userID != snap.TargetID {
		return nil
	}
	var used []string
	lower := strings.ToLower(text)
	for _, word := range snap.Words[userID] {
		if word.Used {
			continue
		}
		if !matchWord(lower, word.Word) {
			continue
		}
		marked, err := s.engine.MarkWordUsed(snap.ID, userID, word.Word)
		if err != nil {
			log.Printf("mark word failed game_id=%s user_id=%d error=%v", snap.ID, userID, err)
			continue
		}
		if marked != nil {
			used = append(used, marked.Word)
			s.engine.CongratulateWordUse(chatID, *marked)
		}
	}
	// In the word-bonus variant the next message from the questioned
	// player counts as their answer.
	if userID == snap.TargetID {
		if err := s.engine.Answer(snap.ID, userID); err != nil {
			log.Printf("implicit answer failed game_id=%s user_id=%d error=%v", snap.ID, userID, err)
		}
	}
	return used
}

func matchWord(lowerText, word string) bool {
	pattern := `\b` + regexp.QuoteMeta(strings.ToLower(word)) + `\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(lowerText)
}

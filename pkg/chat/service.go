package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tablegrape/entities"
	"tablegrape/pkg/ai"
	chatrepo "tablegrape/pkg/chat/repository"
	farmrepo "tablegrape/pkg/farm/repository"
	logrepo "tablegrape/pkg/logbook/repository"
	statusrepo "tablegrape/pkg/status/repository"
	"tablegrape/pkg/weather"
)

// Service answers farmer chat messages. Scripted intents (greeting,
// acknowledgement, what's new) get canned replies without touching the
// model; everything else goes to the AI client with an optional farm
// context bundle, falling back to a canned unavailable reply.
type Service struct {
	chats    chatrepo.ChatRepository
	farms    farmrepo.FarmRepository
	statuses statusrepo.StatusRepository
	logs     logrepo.LogbookRepository
	weather  *weather.Service
	client   ai.Client
	phrases  *PhraseSet
	log      zerolog.Logger
}

func NewService(
	chats chatrepo.ChatRepository,
	farms farmrepo.FarmRepository,
	statuses statusrepo.StatusRepository,
	logs logrepo.LogbookRepository,
	w *weather.Service,
	client ai.Client,
	phrases *PhraseSet,
	log zerolog.Logger,
) *Service {
	if phrases == nil {
		phrases = DefaultPhrases()
	}
	return &Service{
		chats:    chats,
		farms:    farms,
		statuses: statuses,
		logs:     logs,
		weather:  w,
		client:   client,
		phrases:  phrases,
		log:      log,
	}
}

// SendMessage persists the user message, resolves a reply and persists it.
// The user message is saved before reply generation so history keeps its
// order even when generation fails midway.
func (s *Service) SendMessage(ctx context.Context, farm *entities.Farm, sessionID, message, lang string) (string, string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
		s.log.Info().Str("farm_id", farm.ID).Str("session_id", sessionID).Msg("chat: new session")
	}
	if err := s.chats.EnsureSession(sessionID, farm.ID); err != nil {
		return "", "", err
	}

	if lang == "" {
		lang = farm.PreferredLanguage
	}
	if lang == "" {
		lang = "en"
	}

	userMsg := &entities.ChatMessage{
		FarmID:    farm.ID,
		SessionID: sessionID,
		Role:      "user",
		Content:   message,
	}
	if err := s.chats.SaveMessage(userMsg); err != nil {
		return "", "", err
	}

	var reply string
	switch {
	case s.phrases.IsWhatsNew(message):
		reply = whatsNewReply(lang)
	case s.phrases.IsAcknowledgement(message):
		reply = ackReply(lang)
	case s.phrases.IsGreeting(message):
		reply = greetingReply(lang)
	default:
		reply = s.generateReply(ctx, farm, message, lang)
	}

	assistantMsg := &entities.ChatMessage{
		FarmID:    farm.ID,
		SessionID: sessionID,
		Role:      "assistant",
		Content:   reply,
	}
	if err := s.chats.SaveMessage(assistantMsg); err != nil {
		return "", "", err
	}
	return reply, sessionID, nil
}

func (s *Service) generateReply(ctx context.Context, farm *entities.Farm, message, lang string) string {
	if s.client == nil {
		return unavailableReply(lang)
	}

	language := ai.LanguageName(lang)
	user := fmt.Sprintf("User question: %s\n\nAnswer naturally and concisely in %s.", message, language)
	if s.phrases.NeedsContext(message) {
		fc := s.buildContext(ctx, farm)
		user = fmt.Sprintf("Farm context (use only if relevant):\n%s\n\n%s", fc.render(), user)
	}

	reply, err := s.client.GenerateText(ctx, systemPrompt(language), user)
	if err != nil {
		s.log.Warn().Err(err).Str("farm_id", farm.ID).Msg("chat: generation failed, using fallback")
		return unavailableReply(lang)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return unavailableReply(lang)
	}
	return reply
}

func systemPrompt(language string) string {
	return fmt.Sprintf(`You are TableGrape Agent, a friendly and helpful assistant for table grape farmers. Be warm, conversational, and human-like.

STYLE RULES:
- Keep answers 2-6 lines by default (unless user asks for detail)
- Use simple, farmer-friendly words. Avoid stiff phrases like "You are in..." repeatedly
- Write short sentences. Avoid long paragraphs
- Be conversational and natural, like talking to a friend
- Only reference farm context when it's directly relevant to the question
- If something is unclear or a next step is needed, ask one short follow-up question at the end
- If the user message is vague (e.g., "okay", "hmm", "what's new"), respond with a short clarifying question + 2 example options

FORMATTING:
- NO markdown (no **, no markdown bullets, no code blocks)
- Use plain text only
- For lists, use simple lines starting with "• " (bullet character only)

%s

Respond in %s language. Keep it friendly, concise, and practical.`, ai.SafetyRules, language)
}

// History returns the farm's messages oldest first, roles normalized to
// lowercase.
func (s *Service) History(farmID string, limit int) ([]entities.ChatMessage, error) {
	msgs, err := s.chats.History(farmID, limit)
	if err != nil {
		return nil, err
	}
	for i := range msgs {
		msgs[i].Role = strings.ToLower(msgs[i].Role)
	}
	return msgs, nil
}

// Clear deletes the farm's chat history and returns the number of deleted
// messages.
func (s *Service) Clear(farmID string) (int64, error) {
	deleted, err := s.chats.Clear(farmID)
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("farm_id", farmID).Int64("deleted", deleted).Msg("chat: cleared history")
	return deleted, nil
}

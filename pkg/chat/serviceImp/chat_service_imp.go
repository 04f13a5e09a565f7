package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"agrow/entities"
	"agrow/pkg/ai"
	"agrow/pkg/chat/repository"
	"agrow/pkg/chat/service"
	"agrow/pkg/logging"
	"agrow/pkg/session"
)

const (
	maxMessageRunes = 2000
	defaultHistory  = 50
	maxHistory      = 200
	articleLimit    = 3
)

// ArticleFinder looks up knowledge base titles related to a message.
type ArticleFinder interface {
	Titles(ctx context.Context, query string, k int) ([]string, error)
}

type Deps struct {
	Repo repository.ChatRepository
	// LLM is optional. Scripted answers whenever it is nil or fails.
	LLM      ai.Client
	Scripted ai.Client
	KB       ArticleFinder
}

type chatSvc struct {
	repo     repository.ChatRepository
	llm      ai.Client
	scripted ai.Client
	kb       ArticleFinder
}

func New(d Deps) service.ChatService {
	if d.Scripted == nil {
		d.Scripted = ai.NewScripted()
	}
	return &chatSvc{repo: d.Repo, llm: d.LLM, scripted: d.Scripted, kb: d.KB}
}

func (s *chatSvc) Send(ctx context.Context, sess session.Session, message string) (service.Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return service.Reply{}, fmt.Errorf("%w: message", service.ErrMissingField)
	}
	if utf8.RuneCountInString(message) > maxMessageRunes {
		return service.Reply{}, fmt.Errorf("%w: message is longer than %d characters", service.ErrInvalidField, maxMessageRunes)
	}
	log := logging.Log.WithFields(logrus.Fields{"uid": sess.UserID, "lang": sess.Language})

	p := ai.Prompt{Language: sess.Language, Message: message}
	if hist, err := s.repo.Recent(ctx, sess.UserID, ai.MaxHistory); err != nil {
		log.WithError(err).Warn("[chat] history unavailable")
	} else {
		for _, m := range hist {
			p.History = append(p.History, ai.Message{Role: m.Role, Content: m.Content})
		}
	}
	if s.kb != nil {
		if titles, err := s.kb.Titles(ctx, message, articleLimit); err != nil {
			log.WithError(err).Warn("[chat] article lookup failed")
		} else {
			p.Articles = titles
		}
	}

	out := service.Reply{Source: service.SourceScripted}
	if s.llm != nil {
		text, err := s.llm.Reply(ctx, p)
		if err == nil {
			out = service.Reply{Reply: text, Source: service.SourceLLM}
		} else {
			log.WithError(err).Warn("[chat] llm failed, using scripted reply")
		}
	}
	if out.Source == service.SourceScripted {
		text, err := s.scripted.Reply(ctx, p)
		if err != nil {
			return service.Reply{}, err
		}
		out.Reply = text
	}

	s.save(ctx, log, &entities.ChatMessage{UserID: sess.UserID, Role: ai.RoleUser, Content: message})
	s.save(ctx, log, &entities.ChatMessage{UserID: sess.UserID, Role: ai.RoleAssistant, Content: out.Reply, Source: out.Source})
	return out, nil
}

func (s *chatSvc) save(ctx context.Context, log *logrus.Entry, m *entities.ChatMessage) {
	if err := s.repo.Create(ctx, m); err != nil {
		log.WithError(err).WithField("role", m.Role).Warn("[chat] message not saved")
	}
}

func (s *chatSvc) History(ctx context.Context, uid string, limit int) ([]entities.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultHistory
	}
	return s.repo.Recent(ctx, uid, min(limit, maxHistory))
}

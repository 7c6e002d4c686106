package discord

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/ducksquaddd/discord-price-tickers/internal/application/port"
)

// Session adapts one discordgo bot session to port.PresenceSession. The ready
// flag is flipped exactly once by the gateway READY handler and never reset;
// gateway reconnects are discordgo's concern.
type Session struct {
	name  string
	dg    *discordgo.Session
	ready atomic.Bool
}

func NewSession(name, token string) (*Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session %s: %w", name, err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	s := &Session{name: name, dg: dg}
	dg.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		if s.ready.CompareAndSwap(false, true) {
			log.Info().Str("client", name).Msg("gateway ready")
		}
	})
	return s, nil
}

func (s *Session) Name() string { return s.name }

func (s *Session) Open() error { return s.dg.Open() }

func (s *Session) Close() error { return s.dg.Close() }

func (s *Session) Ready() bool { return s.ready.Load() }

func (s *Session) UpdatePresence(status port.Status, activity string) error {
	err := s.dg.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: string(status),
		Activities: []*discordgo.Activity{{
			Name: activity,
			Type: discordgo.ActivityTypeWatching,
		}},
	})
	if err != nil {
		return fmt.Errorf("update presence for %s: %w", s.name, err)
	}
	return nil
}

// Nickname resolves the guild (state cache first, REST as fallback) and
// returns the session's own current nickname within it.
func (s *Session) Nickname(guildID string) (string, error) {
	if _, err := s.guild(guildID); err != nil {
		return "", fmt.Errorf("resolve guild %s: %w: %v", guildID, port.ErrGuildNotFound, err)
	}
	member, err := s.dg.GuildMember(guildID, s.dg.State.User.ID)
	if err != nil {
		return "", fmt.Errorf("fetch member in guild %s: %w", guildID, err)
	}
	return member.Nick, nil
}

func (s *Session) SetNickname(guildID, nick string) error {
	if err := s.dg.GuildMemberNickname(guildID, "@me", nick); err != nil {
		if isMissingPermissions(err) {
			return fmt.Errorf("set nickname in guild %s: %w: %v", guildID, port.ErrPermissionDenied, err)
		}
		return fmt.Errorf("set nickname in guild %s: %w", guildID, err)
	}
	return nil
}

func (s *Session) guild(id string) (*discordgo.Guild, error) {
	if g, err := s.dg.State.Guild(id); err == nil {
		return g, nil
	}
	return s.dg.Guild(id)
}

// isMissingPermissions reports whether the REST API refused with the Missing
// Permissions error code (50013).
func isMissingPermissions(err error) bool {
	var rerr *discordgo.RESTError
	if !errors.As(err, &rerr) {
		return false
	}
	return rerr.Message != nil && rerr.Message.Code == discordgo.ErrCodeMissingPermissions
}

package tickers

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ducksquaddd/discord-price-tickers/internal/application/port"
	"github.com/ducksquaddd/discord-price-tickers/internal/domain"
)

// applyEntry refreshes one session's presence from one asset record. Every
// failure is logged and absorbed here; callers never handle an error from it,
// so one misbehaving session cannot disturb its siblings.
func applyEntry(e Entry, a domain.Asset, marketDown bool) {
	if !e.Session.Ready() {
		log.Info().Str("client", e.Label).Msg("session not ready, skipping update")
		return
	}

	status := port.StatusOnline
	if marketDown {
		status = port.StatusDoNotDisturb
	}
	activity := fmt.Sprintf("24h | %.2f%%", a.Change24h)
	if err := e.Session.UpdatePresence(status, activity); err != nil {
		log.Error().Err(err).Str("client", e.Label).Msg("presence update failed")
		return
	}

	nick := fmt.Sprintf("%s $%s", e.Label, domain.FormatPrice(a.Price))

	current, err := e.Session.Nickname(e.GuildID)
	if err != nil {
		ev := log.Error().Err(err).Str("client", e.Label).Str("guild", e.GuildID)
		if errors.Is(err, port.ErrGuildNotFound) {
			ev.Msg("guild not found")
		} else {
			ev.Msg("member lookup failed")
		}
		return
	}

	// Skip the write when nothing changed; identical renames every cycle
	// would burn rate limit for no visible effect.
	if current == nick {
		log.Info().Str("client", e.Label).Str("nick", nick).Msg("nickname already up to date")
		return
	}

	if err := e.Session.SetNickname(e.GuildID, nick); err != nil {
		log.Error().Err(err).Str("client", e.Label).Str("nick", nick).Msg("nickname update failed")
		if errors.Is(err, port.ErrPermissionDenied) {
			log.Warn().Str("client", e.Label).Str("guild", e.GuildID).Msg("missing change-nickname permission in guild")
		}
		return
	}
	log.Info().Str("client", e.Label).Str("nick", nick).Msg("nickname updated")
}

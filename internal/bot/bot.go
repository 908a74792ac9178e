// Package bot is the Discord front end: the gateway session, the prefix
// command router, and the notification delivery the scheduler drives.
package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Rate-JP/metal-rookie-bot/internal/config"
	"github.com/Rate-JP/metal-rookie-bot/internal/routes"
	"github.com/Rate-JP/metal-rookie-bot/internal/schedule"
	"github.com/Rate-JP/metal-rookie-bot/internal/store"
)

// Bot owns the Discord session and wires commands, notifications, and
// the readiness signal together.
type Bot struct {
	session   *discordgo.Session
	cfg       *config.Config
	settings  *store.Settings
	maps      *routes.Source
	scheduler *schedule.Scheduler
	log       *zap.Logger

	// onReady reports gateway readiness to the health endpoint.
	onReady func(bool)

	// readyOnce guards the startup messages: the gateway re-fires the
	// ready event on every resume.
	readyOnce sync.Once
}

// New builds the bot and its scheduler. onReady may be nil.
func New(cfg *config.Config, settings *store.Settings, maps *routes.Source, log *zap.Logger, onReady func(bool)) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	if onReady == nil {
		onReady = func(bool) {}
	}

	b := &Bot{
		session:  session,
		cfg:      cfg,
		settings: settings,
		maps:     maps,
		log:      log,
		onReady:  onReady,
	}
	b.scheduler = schedule.NewScheduler(settings, b, log)

	session.AddHandler(b.handleReady)
	session.AddHandler(b.handleDisconnect)
	session.AddHandler(b.handleMessage)
	return b, nil
}

// Scheduler returns the notification scheduler, run alongside the
// session by the caller.
func (b *Bot) Scheduler() *schedule.Scheduler {
	return b.scheduler
}

// Run opens the gateway session and holds it until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	defer func() {
		b.onReady(false)
		if err := b.session.Close(); err != nil {
			b.log.Warn("ゲートウェイ切断でエラーが発生しました", zap.Error(err))
		}
	}()

	<-ctx.Done()
	return ctx.Err()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("ログインに成功",
		zap.String("user", r.User.String()),
		zap.String("id", r.User.ID))
	b.onReady(true)

	b.readyOnce.Do(func() {
		lead := b.settings.LeadMinutes()
		b.send(b.cfg.ChannelID, HelpText(b.cfg.Prefix, lead), false)
		b.send(b.cfg.ChannelID, UpdateText(), false)
		if b.cfg.RouteChannelID != "" {
			b.send(b.cfg.RouteChannelID, RouteHelpText(b.cfg.Prefix), false)
		}
	})
}

func (b *Bot) handleDisconnect(s *discordgo.Session, d *discordgo.Disconnect) {
	b.log.Warn("ゲートウェイから切断されました")
	b.onReady(false)
}

// NotifyPre implements schedule.Notifier.
func (b *Bot) NotifyPre(ctx context.Context, leadMinutes int) {
	b.send(b.cfg.ChannelID, PreNoticeText(leadMinutes), false)
}

// NotifyMain implements schedule.Notifier.
func (b *Bot) NotifyMain(ctx context.Context) {
	b.send(b.cfg.ChannelID, b.cfg.MessageMain, false)
}

// send delivers content to a channel, chunked under the Discord length
// limit. Failures are logged and swallowed: a missed chat message must
// never take the process down.
func (b *Bot) send(channelID, content string, silent bool) {
	for _, part := range ChunkText(content, ChunkLimit) {
		msg := &discordgo.MessageSend{Content: part}
		if silent {
			msg.Flags = discordgo.MessageFlagsSuppressNotifications
		}
		if _, err := b.session.ChannelMessageSendComplex(channelID, msg); err != nil {
			b.log.Error("メッセージの送信に失敗しました",
				zap.String("channel_id", channelID), zap.Error(err))
			return
		}
	}
	b.log.Info("メッセージを送信しました", zap.String("channel_id", channelID))
}

// reply answers a command message without mentioning the author.
func (b *Bot) reply(m *discordgo.MessageCreate, content string, silent bool) {
	for _, part := range ChunkText(content, ChunkLimit) {
		msg := &discordgo.MessageSend{
			Content:         part,
			Reference:       m.Reference(),
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		}
		if silent {
			msg.Flags = discordgo.MessageFlagsSuppressNotifications
		}
		if _, err := b.session.ChannelMessageSendComplex(m.ChannelID, msg); err != nil {
			b.log.Error("返信に失敗しました",
				zap.String("channel_id", m.ChannelID), zap.Error(err))
			return
		}
	}
}

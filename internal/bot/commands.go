package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Rate-JP/metal-rookie-bot/internal/routes"
	"github.com/Rate-JP/metal-rookie-bot/internal/schedule"
)

// SilentMarker at the start of a message asks for a notification-
// suppressed reply.
const SilentMarker = "@silent"

// Command is one parsed prefix command.
type Command struct {
	// Name is the command word without the prefix.
	Name string

	// Arg is the remainder after the command word, trimmed.
	Arg string

	// Silent is true when the message carried the silent marker.
	Silent bool
}

// ParseCommand extracts a prefix command from raw message content.
// Returns false for anything that is not a command.
func ParseCommand(content, prefix string) (Command, bool) {
	var cmd Command

	content = strings.TrimSpace(content)
	if rest, ok := strings.CutPrefix(content, SilentMarker); ok {
		cmd.Silent = true
		content = strings.TrimSpace(rest)
	}

	rest, ok := strings.CutPrefix(content, prefix)
	if !ok || rest == "" {
		return Command{}, false
	}

	name, arg, _ := strings.Cut(rest, " ")
	if name == "" {
		return Command{}, false
	}
	cmd.Name = name
	cmd.Arg = strings.TrimSpace(arg)
	return cmd, true
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	cmd, ok := ParseCommand(m.Content, b.cfg.Prefix)
	if !ok {
		return
	}

	switch cmd.Name {
	case "notice_get":
		b.cmdNoticeGet(m, cmd)
	case "notice_set":
		b.cmdNoticeSet(m, cmd)
	case "next":
		b.cmdNext(m, cmd)
	case "help":
		b.cmdHelp(m, cmd)
	case "route", "ルート":
		b.cmdRoute(m, cmd)
	case "route_suggest", "ルート候補":
		b.cmdRouteSuggest(m, cmd)
	case "route_help":
		b.reply(m, RouteHelpText(b.cfg.Prefix), cmd.Silent)
	}
}

func (b *Bot) cmdNoticeGet(m *discordgo.MessageCreate, cmd Command) {
	lead := b.settings.LeadMinutes()
	b.reply(m, fmt.Sprintf("ℹ️ 現在の事前通知は **%d 分前**です。", lead), cmd.Silent)
}

func (b *Bot) cmdNoticeSet(m *discordgo.MessageCreate, cmd Command) {
	if cmd.Arg == "" {
		b.reply(m, fmt.Sprintf("使い方: `%snotice_set <分>` 例: `%snotice_set 10`",
			b.cfg.Prefix, b.cfg.Prefix), cmd.Silent)
		return
	}

	minutes, err := strconv.Atoi(cmd.Arg)
	if err != nil {
		b.reply(m, fmt.Sprintf("使い方: `%snotice_set <分>` 例: `%snotice_set 10`",
			b.cfg.Prefix, b.cfg.Prefix), cmd.Silent)
		return
	}

	if err := b.settings.SetLeadMinutes(minutes); err != nil {
		if minutes < 3 || minutes > 15 {
			b.reply(m, "⚠️ 通知時間は **3〜15分前** でのみ設定できます。", cmd.Silent)
			return
		}
		b.log.Error("事前通知の設定に失敗しました", zap.Error(err))
		b.reply(m, "❌ 設定に失敗しました。ログを確認してください。", cmd.Silent)
		return
	}

	b.reply(m, fmt.Sprintf("✅ 事前通知を **%d 分前**に設定しました。", minutes), cmd.Silent)
	b.scheduler.Updated()
}

func (b *Bot) cmdNext(m *discordgo.MessageCreate, cmd Command) {
	now := schedule.NowJST()
	lead := b.settings.LeadMinutes()

	ev := schedule.NextEvent(now, schedule.Anchor, schedule.Interval, lead)
	nextMain := ev.Boundary
	preTime := ev.Boundary.Add(-time.Duration(lead) * time.Minute)
	nextPre := preTime
	if !now.Before(preTime) {
		nextPre = ev.Boundary.Add(schedule.Interval - time.Duration(lead)*time.Minute)
	}

	text := strings.Join([]string{
		fmt.Sprintf("🗓 現在の設定: 事前通知 **%d 分前**", lead),
		fmt.Sprintf("⏳ 次の事前通知: %s JST（あと %s）",
			nextPre.Format("2006-01-02 15:04:05"), schedule.HumanDelta(nextPre.Sub(now))),
		fmt.Sprintf("⏰ 次の本通知:   %s JST（あと %s）",
			nextMain.Format("2006-01-02 15:04:05"), schedule.HumanDelta(nextMain.Sub(now))),
	}, "\n")
	b.reply(m, text, cmd.Silent)
}

func (b *Bot) cmdHelp(m *discordgo.MessageCreate, cmd Command) {
	b.reply(m, HelpText(b.cfg.Prefix, b.settings.LeadMinutes()), cmd.Silent)
}

func (b *Bot) cmdRoute(m *discordgo.MessageCreate, cmd Command) {
	if cmd.Arg == "" {
		b.reply(m, fmt.Sprintf("使い方: `%sroute <目的地>` 例: `%sroute ウルベア地下遺跡`",
			b.cfg.Prefix, b.cfg.Prefix), cmd.Silent)
		return
	}

	mapData, ok := b.maps.Map()
	if !ok {
		b.reply(m, fmt.Sprintf("❌ DB が見つかりません: `%s`。環境変数 `DQX_DB_PATH` を確認してください。",
			b.cfg.MapPath), cmd.Silent)
		return
	}

	plan, err := mapData.PlanRoute(cmd.Arg)
	if err != nil {
		if nf, isNotFound := err.(*routes.NotFoundError); isNotFound {
			b.reply(m, routes.NotFoundText(nf), cmd.Silent)
			return
		}
		b.log.Error("ルート計算でエラーが発生しました", zap.Error(err))
		b.reply(m, "❌ ルート計算でエラーが発生しました。ログを確認してください。", cmd.Silent)
		return
	}
	b.reply(m, plan.Text(), cmd.Silent)
}

func (b *Bot) cmdRouteSuggest(m *discordgo.MessageCreate, cmd Command) {
	if cmd.Arg == "" {
		b.reply(m, fmt.Sprintf("使い方: `%sroute_suggest <キーワード>` 例: `%sroute_suggest グレン`",
			b.cfg.Prefix, b.cfg.Prefix), cmd.Silent)
		return
	}

	mapData, ok := b.maps.Map()
	if !ok {
		b.reply(m, fmt.Sprintf("❌ DB が見つかりません: `%s`。環境変数 `DQX_DB_PATH` を確認してください。",
			b.cfg.MapPath), cmd.Silent)
		return
	}

	cands := mapData.Suggest(cmd.Arg, 10, 0.50)
	if len(cands) == 0 {
		b.reply(m, "🔎 候補なし", cmd.Silent)
		return
	}
	b.reply(m, "🔎 候補: "+strings.Join(cands, " / "), cmd.Silent)
}

package bot

import (
	"fmt"
	"strings"
)

// HelpText is the startup help and the `help` command answer.
func HelpText(prefix string, leadMinutes int) string {
	return strings.Join([]string{
		"**📣 BOT起動: 利用できる「" + prefix + "」コマンド**",
		fmt.Sprintf("現在の事前通知: **%d 分前**", leadMinutes),
		"",
		fmt.Sprintf("• `%snotice_get` — 現在の事前通知（分前）を表示", prefix),
		fmt.Sprintf("• `%snotice_set <3-15>` — 事前通知の分数を設定（3〜15 以外はエラー）", prefix),
		fmt.Sprintf("• `%snext` — 次に発生する 事前通知/本通知 の JST 時刻と残り時間を表示", prefix),
		fmt.Sprintf("• `%shelp` — このヘルプを表示", prefix),
	}, "\n")
}

// RouteHelpText is the route feature help, sent to the route channel at
// startup and by the `route_help` command.
func RouteHelpText(prefix string) string {
	return strings.Join([]string{
		"**【NEW】🧭 DQX ルート検索コマンド**",
		fmt.Sprintf("• `%sroute <目的地>` — ハブ→目的地の徒歩ルートと推奨ルーラ地点を表示", prefix),
		fmt.Sprintf("• `%sroute_suggest <キーワード>` — 曖昧な地名から候補を提案", prefix),
		fmt.Sprintf("• `%sroute_help` — このヘルプを表示", prefix),
		"",
	}, "\n")
}

// UpdateText is the one-shot release announcement sent at startup.
func UpdateText() string {
	return strings.Join([]string{
		"## === Metal Rookie Bot V1.1 === ##",
		"**📣 新機能: サイレント返信 (@silent) 対応**",
		"• メッセージを**サイレントで送受信**したいときは、**先頭に `@silent`** を付けて送信してください。",
		"  例: `@silent !next`, `@silent !route プクレットの村`",
		"",
	}, "\n")
}

// PreNoticeText is the advance notification message.
func PreNoticeText(leadMinutes int) string {
	return fmt.Sprintf("🪙 メタルーキーまであと%d分です！", leadMinutes)
}

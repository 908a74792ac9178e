package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    Command
		ok      bool
	}{
		{
			name:    "bare command",
			content: "!help",
			want:    Command{Name: "help"},
			ok:      true,
		},
		{
			name:    "command with argument",
			content: "!notice_set 10",
			want:    Command{Name: "notice_set", Arg: "10"},
			ok:      true,
		},
		{
			name:    "argument keeps inner spaces",
			content: "!route 岳都ガタラ 西",
			want:    Command{Name: "route", Arg: "岳都ガタラ 西"},
			ok:      true,
		},
		{
			name:    "silent marker before prefix",
			content: "@silent !next",
			want:    Command{Name: "next", Silent: true},
			ok:      true,
		},
		{
			name:    "surrounding whitespace",
			content: "  !help  ",
			want:    Command{Name: "help"},
			ok:      true,
		},
		{
			name:    "japanese command word",
			content: "!ルート ジュレット",
			want:    Command{Name: "ルート", Arg: "ジュレット"},
			ok:      true,
		},
		{
			name:    "plain chatter",
			content: "そろそろメタルーキーの時間？",
			ok:      false,
		},
		{
			name:    "prefix alone",
			content: "!",
			ok:      false,
		},
		{
			name:    "silent marker alone",
			content: "@silent",
			ok:      false,
		},
		{
			name:    "empty",
			content: "",
			ok:      false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCommand(tc.content, "!")
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseCommand_CustomPrefix(t *testing.T) {
	got, ok := ParseCommand("??next", "??")
	assert.True(t, ok)
	assert.Equal(t, "next", got.Name)

	_, ok = ParseCommand("!next", "??")
	assert.False(t, ok)
}

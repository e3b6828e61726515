package client

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWsURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://chat.example.com", "wss://chat.example.com/api/v4/websocket"},
		{"https://chat.example.com/", "wss://chat.example.com/api/v4/websocket"},
		{"http://localhost:8065", "ws://localhost:8065/api/v4/websocket"},
	}
	for _, tc := range cases {
		if got := wsURL(tc.in); got != tc.want {
			t.Errorf("wsURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPostPageFlattensOldestFirst(t *testing.T) {
	page := wirePostPage{
		Order: []string{"p2", "p1", "missing"},
		Posts: map[string]wirePost{
			"p1": {ID: "p1", ChannelID: "c1", Message: "older", CreateAt: 1000},
			"p2": {ID: "p2", ChannelID: "c1", Message: "newer", CreateAt: 2000},
		},
	}
	posts := page.toPosts()
	if len(posts) != 2 {
		t.Fatalf("expected ids missing from the map skipped, got %d posts", len(posts))
	}
	if posts[0].ID != "p1" || posts[1].ID != "p2" {
		t.Fatalf("expected oldest first, got %s then %s", posts[0].ID, posts[1].ID)
	}
}

func TestWirePostConvertsMillis(t *testing.T) {
	wp := wirePost{ID: "p1", CreateAt: 1700000000000}
	post := wp.toPost()
	if !post.CreateAt.Equal(time.UnixMilli(1700000000000)) {
		t.Fatalf("expected millisecond epoch converted, got %v", post.CreateAt)
	}
	if zero := (wirePost{}).toPost(); !zero.CreateAt.IsZero() {
		t.Fatalf("expected zero epoch to stay the zero time")
	}
}

func TestFrameDecodesDoubleEncodedPost(t *testing.T) {
	raw := `{
		"event": "posted",
		"data": {
			"post": "{\"id\":\"p1\",\"channel_id\":\"c1\",\"user_id\":\"u1\",\"message\":\"hello\",\"create_at\":1000}"
		}
	}`
	var frame wireFrame
	if err := json.Unmarshal([]byte(raw), &frame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	push := frame.decode()
	posted, ok := push.(PostedPush)
	if !ok {
		t.Fatalf("expected PostedPush, got %T", push)
	}
	if posted.Post.ID != "p1" || posted.Post.ChannelID != "c1" || posted.Post.Message != "hello" {
		t.Fatalf("unexpected post %+v", posted.Post)
	}
}

func TestFrameDecodeTable(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Push
	}{
		{
			name: "typing",
			raw:  `{"event":"typing","data":{"user_id":"u1"},"broadcast":{"channel_id":"c1"}}`,
			want: TypingPush{ChannelID: "c1", UserID: "u1"},
		},
		{
			name: "status change",
			raw:  `{"event":"status_change","data":{"user_id":"u1","status":"away"}}`,
			want: StatusPush{UserID: "u1", Status: "away"},
		},
		{
			name: "channel created",
			raw:  `{"event":"channel_created","data":{"channel_id":"c1","team_id":"t1"}}`,
			want: ChannelCreatedPush{ChannelID: "c1", TeamID: "t1"},
		},
		{
			name: "channel deleted",
			raw:  `{"event":"channel_deleted","data":{"channel_id":"c1"},"broadcast":{"team_id":"t1"}}`,
			want: ChannelDeletedPush{ChannelID: "c1", TeamID: "t1"},
		},
		{
			name: "added to team",
			raw:  `{"event":"added_to_team","data":{"team_id":"t1"}}`,
			want: TeamAddedPush{TeamID: "t1"},
		},
		{
			name: "leave team",
			raw:  `{"event":"leave_team","data":{"team_id":"t1"}}`,
			want: TeamRemovedPush{TeamID: "t1"},
		},
		{
			name: "update team",
			raw:  `{"event":"update_team","data":{"team_id":"t1"}}`,
			want: TeamUpdatedPush{TeamID: "t1"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var frame wireFrame
			if err := json.Unmarshal([]byte(tc.raw), &frame); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := frame.decode(); got != tc.want {
				t.Fatalf("decode = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestFrameDecodeDropsUnknownAndMalformed(t *testing.T) {
	cases := []string{
		`{"event":"reaction_added","data":{}}`,
		`{"event":"posted","data":{"post":"{not json"}}`,
		`{"event":"posted","data":{}}`,
	}
	for _, raw := range cases {
		var frame wireFrame
		if err := json.Unmarshal([]byte(raw), &frame); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if push := frame.decode(); push != nil {
			t.Fatalf("expected %s dropped, got %#v", raw, push)
		}
	}
}

func TestChannelKindSurvivesDecode(t *testing.T) {
	wc := wireChannel{ID: "c1", TeamID: "t1", Name: "town-square", Type: "O", UpdateAt: 5000}
	ch := wc.toChannel()
	if string(ch.Kind) != "O" {
		t.Fatalf("expected open kind, got %q", ch.Kind)
	}
	if ch.UpdateAt.IsZero() {
		t.Fatalf("expected update timestamp converted")
	}
}

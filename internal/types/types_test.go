package types

import "testing"

func TestDirectPartner(t *testing.T) {
	cases := []struct {
		name    string
		channel string
		me      UserID
		want    UserID
		ok      bool
	}{
		{"me on the left", "alice__bob", "alice", "bob", true},
		{"me on the right", "alice__bob", "bob", "alice", true},
		{"not a participant", "alice__bob", "carol", "", false},
		{"no separator", "general", "alice", "", false},
		{"empty side", "__bob", "bob", "", false},
		{"empty name", "", "alice", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DirectPartner(tc.channel, tc.me)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("expected partner %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDisplayNameFor(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"nickname wins", User{Username: "u", Nickname: "Nick", FirstName: "A", LastName: "B"}, "Nick"},
		{"full name next", User{Username: "u", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first name only", User{Username: "u", FirstName: "Ada"}, "Ada"},
		{"username fallback", User{Username: "u"}, "u"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayNameFor(tc.user); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

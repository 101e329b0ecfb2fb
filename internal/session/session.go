package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound is returned when no blob is stored under a key.
var ErrNotFound = errors.New("session not found")

// DefaultPrefix namespaces session keys in a shared store.
const DefaultPrefix = "docbot:session"

// Key identifies one user's session in one chat.
type Key struct {
	ChatID int64
	UserID int64
}

func (k Key) String() string {
	return strconv.FormatInt(k.ChatID, 10) + ":" + strconv.FormatInt(k.UserID, 10)
}

// ParseKey parses the "<chat>:<user>" form produced by Key.String.
func ParseKey(s string) (Key, error) {
	chat, user, ok := strings.Cut(s, ":")
	if !ok {
		return Key{}, fmt.Errorf("bad session key %q", s)
	}
	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("bad chat id in %q: %w", s, err)
	}
	userID, err := strconv.ParseInt(user, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("bad user id in %q: %w", s, err)
	}
	return Key{ChatID: chatID, UserID: userID}, nil
}

// Store keeps one opaque blob per key with last-write-wins semantics.
type Store interface {
	Load(ctx context.Context, key Key) ([]byte, error)
	Save(ctx context.Context, key Key, blob []byte) error
	Delete(ctx context.Context, key Key) error
	List(ctx context.Context) ([]Key, error)
}

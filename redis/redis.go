package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// Sessions live for 7 days, matching the login token lifetime.
const sessionTTL = 7 * 24 * time.Hour

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// Session is the record stored per logged-in user. The token is kept so a
// stolen-but-expired or superseded JWT cannot ride an old session.
type Session struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	LoginTime string `json:"loginTime"`
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

// SaveSession stores the user's session with the standard TTL, replacing
// any previous session for the same user.
func SaveSession(userID uint, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return Client.Set(Ctx, sessionKey(userID), data, sessionTTL).Err()
}

// GetSession returns the stored session, or nil when none exists.
func GetSession(userID uint) (*Session, error) {
	data, err := Client.Get(Ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes the user's session.
func DeleteSession(userID uint) error {
	return Client.Del(Ctx, sessionKey(userID)).Err()
}

// Package lock guards order submission so one user cannot have two
// submissions in flight at once.
package lock

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrHeld = errors.New("submission already in progress")

type SubmitLock interface {
	// Acquire returns ErrHeld when the user already holds the lock. The
	// returned release func is safe to call more than once.
	Acquire(ctx context.Context, userID uint) (release func(), err error)
}

// Local is an in-process lock. Entries expire after ttl so a hung call
// cannot block the user forever.
type Local struct {
	mu   sync.Mutex
	ttl  time.Duration
	held map[uint]time.Time
	now  func() time.Time
}

func NewLocal(ttl time.Duration) *Local {
	return &Local{ttl: ttl, held: make(map[uint]time.Time), now: time.Now}
}

func (l *Local) Acquire(_ context.Context, userID uint) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if exp, ok := l.held[userID]; ok && l.now().Before(exp) {
		return nil, ErrHeld
	}
	exp := l.now().Add(l.ttl)
	l.held[userID] = exp

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if l.held[userID].Equal(exp) {
				delete(l.held, userID)
			}
		})
	}, nil
}

// Redis holds the lock as a SET NX key with a TTL, shared by every instance.
// The value is a per-acquire token so a late release cannot drop a lock that
// expired and was taken by someone else.
type Redis struct {
	Client *redis.Client
	TTL    time.Duration
}

// deletes KEYS[1] only while it still holds ARGV[1]
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{Client: client, TTL: ttl}
}

func (r *Redis) Key(userID uint) string {
	return "checkout:submit:" + strconv.FormatUint(uint64(userID), 10)
}

func (r *Redis) Acquire(ctx context.Context, userID uint) (func(), error) {
	key := r.Key(userID)
	token := uuid.NewString()
	ok, err := r.Client.SetNX(ctx, key, token, r.TTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(ctx, r.Client, []string{key}, token).Err()
		})
	}, nil
}

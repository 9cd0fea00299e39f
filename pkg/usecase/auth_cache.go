package usecase

import (
	"sync"
	"time"

	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
)

const (
	authCacheTTL = 5 * time.Minute
)

type cachedSession struct {
	user      *model.User
	expiresAt time.Time
}

// authCache avoids a repository round trip on every authenticated
// request. Entries are keyed by session token and expire after a
// short TTL. Mutations that must take effect immediately (token
// rotation, role and department changes) purge their entries instead
// of waiting for the TTL.
type authCache struct {
	cache sync.Map
}

func newAuthCache() *authCache {
	return &authCache{}
}

func (c *authCache) get(token string) (*model.User, bool) {
	val, ok := c.cache.Load(token)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedSession)
	if time.Now().After(cached.expiresAt) {
		c.cache.Delete(token)
		return nil, false
	}

	return cached.user, true
}

func (c *authCache) set(token string, user *model.User) {
	if token == "" {
		return
	}
	c.cache.Store(token, &cachedSession{
		user:      user,
		expiresAt: time.Now().Add(authCacheTTL),
	})
}

func (c *authCache) remove(token string) {
	c.cache.Delete(token)
}

// removeUser drops every cached session for the given user, so role
// and department changes take effect on the next request instead of
// after the TTL.
func (c *authCache) removeUser(userID types.UserID) {
	c.cache.Range(func(key, val any) bool {
		if val.(*cachedSession).user.ID == userID {
			c.cache.Delete(key)
		}
		return true
	})
}

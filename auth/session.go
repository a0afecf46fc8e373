package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const memberIdKey = "id"

type Session struct {
	sessions.Session
}

// LoadSession returns nil when the session middleware isn't installed
func LoadSession(c *gin.Context) *Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginMember(memberID uint64) error {
	s.Set(memberIdKey, memberID)
	return s.Save()
}

func (s *Session) LogoutMember() error {
	s.Delete(memberIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// MemberID is 0 when nobody is logged in
func (s *Session) MemberID() uint64 {
	id, _ := s.Get(memberIdKey).(uint64)
	return id
}

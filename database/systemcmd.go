package database

import (
	"github.com/dawnzzz/simple-sets/config"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

// Auth validate client's password
func Auth(c wire.Connection, args [][]byte) wire.Reply {
	if len(args) != 1 {
		return reply.MakeErrReply("ERR wrong number of arguments for 'auth' command")
	}
	if config.Properties.Password == "" {
		return reply.MakeErrReply("ERR Client sent AUTH, but no password is set")
	}
	passwd := string(args[0])
	c.SetPassword(passwd)
	if config.Properties.Password != passwd {
		return reply.MakeErrReply("ERR invalid password")
	}
	return &reply.OkReply{}
}

func isAuthenticated(c wire.Connection) bool {
	if config.Properties.Password == "" {
		return true
	}
	return c.GetPassword() == config.Properties.Password
}

func BGRewriteJournal(s *Server, args [][]byte) wire.Reply {
	if s.JournalPersister == nil {
		return reply.MakeErrReply("ERR journal is disabled")
	}

	if s.rewriting.Load() {
		// 如果当前正在重写，直接返回
		return reply.MakeStatusReply("Background journal rewriting doing")
	}

	// 否则进行异步重写
	s.rewriteWait.Add(1)
	go s.JournalPersister.Rewrite(&s.rewriteWait, &s.rewriting)
	return reply.MakeStatusReply("Background journal rewriting started")
}

func RewriteJournal(s *Server, args [][]byte) wire.Reply {
	if s.JournalPersister == nil {
		return reply.MakeErrReply("ERR journal is disabled")
	}

	if s.rewriting.Load() {
		// 如果当前正在重写，等待重写结束返回
		s.rewriteWait.Wait()
		return reply.MakeOkReply()
	}

	// 否则进行重写
	s.rewriteWait.Add(1)
	err := s.JournalPersister.Rewrite(&s.rewriteWait, &s.rewriting)
	if err != nil {
		return reply.MakeErrReply(err.Error())
	}
	return reply.MakeOkReply()
}

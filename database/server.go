package database

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dawnzzz/simple-sets/config"
	_ "github.com/dawnzzz/simple-sets/database/commands"
	"github.com/dawnzzz/simple-sets/database/engine"
	"github.com/dawnzzz/simple-sets/database/journal"
	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/lib/utils"
	"github.com/dawnzzz/simple-sets/logger"
	"github.com/dawnzzz/simple-sets/wire/connection"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

// Server is a set algebra server
type Server struct {
	db               *engine.DB
	JournalPersister *journal.Persister // 命令日志持久化
	JournalFileSize  int64
	rewriteWait      sync.WaitGroup
	rewriting        atomic.Bool
	closed           chan struct{}
}

// NewStandaloneServer creates a standalone server
func NewStandaloneServer() *Server {
	server := &Server{
		db:     engine.MakeDB(),
		closed: make(chan struct{}, 1),
	}

	// 读取命令日志文件
	if config.Properties.Journal {
		if config.Properties.JournalFilename == "" { // default is sets.journal
			config.Properties.JournalFilename = "sets.journal"
		}

		// 获取初始日志文件大小
		server.JournalFileSize = utils.GetFileSizeByName(config.Properties.JournalFilename)

		// 开启命令日志持久化，启动时回放日志恢复所有集合
		journalPersister, err := journal.NewPersister(server, config.Properties.JournalFilename, true, config.Properties.JournalFsync, MakeAuxiliaryServer)
		if err != nil {
			logger.Fatalf("open journal failed: %v", err)
		}
		server.bindPersister(journalPersister)

		// 自动日志重写
		if config.Properties.AutoJournalRewrite {
			if config.Properties.AutoJournalRewritePercentage <= 0 {
				config.Properties.AutoJournalRewritePercentage = 100
			}
			if config.Properties.AutoJournalRewriteMinSize <= 0 {
				config.Properties.AutoJournalRewriteMinSize = 64
			}

			// 开启日志自动重写
			go server.autoJournalRewrite()
		}
	}

	return server
}

func (s *Server) Exec(client wire.Connection, cmdLine [][]byte) wire.Reply {
	cmdName := strings.ToLower(string(cmdLine[0]))

	if cmdName == "ping" {
		logger.Debugf("received heart beat from %v", client.Name())
		return reply.MakePongStatusReply()
	}

	if _, ok := client.(*connection.FakeConn); !ok { // fakeConn不做校验
		if cmdName == "auth" {
			return Auth(client, cmdLine[1:])
		}
		if !isAuthenticated(client) {
			return reply.MakeErrReply("NOAUTH Authentication required")
		}
	}

	switch cmdName {
	case "bgrewritejournal":
		return BGRewriteJournal(s, cmdLine[1:])
	case "rewritejournal":
		return RewriteJournal(s, cmdLine[1:])
	}

	// normal commands
	return s.db.Exec(client, cmdLine)
}

func (s *Server) AfterClientClose(c wire.Connection) {
	logger.Debugf("client %v closed", c.Name())
}

func (s *Server) Close() {
	s.closed <- struct{}{}
	if config.Properties.Journal {
		s.JournalPersister.Close() // 关闭命令日志持久化
	}
}

// ForEach traverses all the sets in the registry in registration order
func (s *Server) ForEach(consumer func(name string, set *dataset.DataSet[int64]) bool) {
	s.db.ForEach(consumer)
}

func (s *Server) autoJournalRewrite() {
	ticker := time.NewTicker(10 * time.Second)
	for {
		select {
		case <-ticker.C:
			if s.rewriting.Load() {
				// 当前正在重写，跳过这个周期
				continue
			}
			// 开始重写
			s.rewriteWait.Add(1)
			// 检查日志文件大小
			journalFileSize := utils.GetFileSizeByName(config.Properties.JournalFilename)
			// 检查是否需要重写
			if journalFileSize > s.JournalFileSize*config.Properties.AutoJournalRewritePercentage/100 && journalFileSize > config.Properties.AutoJournalRewriteMinSize*1024*1024 {
				// 开启重写
				go s.JournalPersister.Rewrite(&s.rewriteWait, &s.rewriting)
				// 等待结束重写
				s.rewriteWait.Wait()
				// 更新日志文件大小
				s.JournalFileSize = utils.GetFileSizeByName(config.Properties.JournalFilename)
			} else {
				s.rewriteWait.Done()
			}

		case <-s.closed:
			ticker.Stop()
			return
		}
	}
}

package journal

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dawnzzz/simple-sets/interface/database"
	"github.com/dawnzzz/simple-sets/lib/utils"
	"github.com/dawnzzz/simple-sets/logger"
	"github.com/dawnzzz/simple-sets/wire/connection"
	"github.com/dawnzzz/simple-sets/wire/parser"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

const (
	FsyncAlways   = iota // 每一条命令都会进行刷盘操作
	FsyncEverySec        // 每秒进行一次刷盘操作
	FsyncNo              // 不主动进行刷盘操作，交给操作系统去决定
)

// CmdLine is alias for [][]byte, represents a command line
type CmdLine = [][]byte

const (
	journalQueueSize = 1 << 16
)

// Persister 将修改注册表的命令以纯文本形式追加到日志文件中，
// 一条命令一行，重启时按行回放即可恢复所有集合。
type Persister struct {
	ctx             context.Context
	cancel          context.CancelFunc
	db              database.DBEngine
	tmpDBMaker      func() database.DBEngine
	journalChan     chan CmdLine
	journalFile     *os.File
	journalFilename string
	journalFsync    int // 刷盘策略
	// journal goroutine will send msg to main goroutine through this channel when journal tasks finished and ready to shut down
	journalFinished chan struct{}
	// pause journal for start/finish rewrite progress
	pausingJournal sync.Mutex
	// 表示正在日志重写，同时只有一个日志重写
	journalRewriting sync.WaitGroup
}

func NewPersister(db database.DBEngine, filename string, load bool, fsync int, tmpDBMaker func() database.DBEngine) (*Persister, error) {
	if fsync < FsyncAlways || fsync > FsyncNo {
		return nil, errors.New("load journal failed, journal fsync must be: 0: always, 1: every sec, 2: no")
	}
	persister := &Persister{}
	persister.db = db
	persister.tmpDBMaker = tmpDBMaker
	persister.journalFilename = filename
	persister.journalFsync = fsync

	if load {
		persister.LoadJournal(0) // 加载全部数据
	}

	journalFile, err := os.OpenFile(persister.journalFilename, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		return nil, err
	}
	persister.journalFile = journalFile
	persister.journalChan = make(chan CmdLine, journalQueueSize)
	persister.journalFinished = make(chan struct{})

	go func() {
		// 监听journalChan，写入日志文件
		persister.listenCmd()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	persister.ctx = ctx
	persister.cancel = cancel
	if persister.journalFsync == FsyncEverySec { // 每秒钟进行刷盘同步
		persister.fsyncEverySecond()
	}

	return persister, nil
}

func (persister *Persister) fsyncEverySecond() {
	ticker := time.NewTicker(time.Second)
	go func() {
		for {
			select {
			case <-ticker.C:
				persister.pausingJournal.Lock()
				if err := persister.journalFile.Sync(); err != nil {
					logger.Errorf("fsync failed: %v", err)
				}
				persister.pausingJournal.Unlock()
			case <-persister.ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()
}

// Close 关闭命令日志持久化
func (persister *Persister) Close() {
	// 等待日志重写完成
	persister.journalRewriting.Wait()

	if persister.journalFile != nil {
		// 先关闭 journalChan 通道，等待落盘完成后再关闭日志文件句柄
		close(persister.journalChan)
		<-persister.journalFinished // wait for journal finished
		err := persister.journalFile.Close()
		if err != nil {
			logger.Warn(err)
		}
	}

	persister.cancel()
}

// LoadJournal 读取并回放日志文件，这个方法在监听 journalChan 之前使用
func (persister *Persister) LoadJournal(maxBytes int64) {
	// 回放时 persister.db.Exec 会再次产生写命令，这些命令不能重新进入日志，
	// 先将 journalChan 置空，回放结束后再恢复。
	journalChan := persister.journalChan
	persister.journalChan = nil
	defer func(journalChan chan CmdLine) {
		persister.journalChan = journalChan
	}(journalChan)

	file, err := os.Open(persister.journalFilename)
	if err != nil {
		if _, ok := err.(*os.PathError); ok {
			return
		}
		logger.Warn(err)
		return
	}
	defer file.Close()

	var reader io.Reader
	if maxBytes > 0 {
		reader = io.LimitReader(file, maxBytes)
	} else {
		reader = file
	}

	// 日志文件与客户端命令同为按行的纯文本，复用命令解析器，
	// fakeConn 表示一个虚拟的客户端连接，仅仅用于执行日志中的命令。
	ch := parser.ParseCommandStream(reader)
	for p := range ch {
		if p.Err != nil {
			if p.Err == io.EOF {
				// journal file read finish
				break
			}
			logger.Error("parse error: " + p.Err.Error())
			continue
		}

		if p.Data == nil {
			logger.Error("empty payload")
			continue
		}

		r, ok := p.Data.(*reply.MultiBulkStringReply)
		if !ok {
			logger.Error("require multi bulk protocol")
			continue
		}

		// 执行
		fakeConn := connection.NewFakeConn()
		ret := persister.db.Exec(fakeConn, r.Args)
		if reply.IsErrorReply(ret) {
			logger.Error("exec err ", string(ret.ToBytes()))
		}
	}
}

// 监听journalChan，写入日志文件
func (persister *Persister) listenCmd() {
	for cmdLine := range persister.journalChan {
		persister.writeJournal(cmdLine)
	}
	persister.journalFinished <- struct{}{}
}

// 将一条命令写入到日志文件中
func (persister *Persister) writeJournal(cmdLine CmdLine) {
	persister.pausingJournal.Lock()
	defer persister.pausingJournal.Unlock()

	_, err := persister.journalFile.Write(utils.CmdLineToLine(cmdLine))
	if err != nil {
		logger.Warn(err)
	}

	// 如果刷盘策略为 FsyncAlways（每一条命令都刷盘），则立即刷盘
	if persister.journalFsync == FsyncAlways {
		_ = persister.journalFile.Sync()
	}
}

// SaveCmdLine 向 journalChan 通道中发送一条命令
func (persister *Persister) SaveCmdLine(cmdLine CmdLine) {
	// 如果 journalChan 为空，则说明正在 LoadJournal 过程中，直接返回即可
	if persister.journalChan == nil {
		return
	}

	// 如果刷盘策略为 FsyncAlways，不经过通道，直接落盘
	if persister.journalFsync == FsyncAlways {
		persister.writeJournal(cmdLine)
		return
	}

	persister.journalChan <- cmdLine
}

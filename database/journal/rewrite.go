package journal

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/lib/utils"
	"github.com/dawnzzz/simple-sets/logger"
)

// RewriteCtx 保存一次日志重写的上下文
type RewriteCtx struct {
	tmpFile  *os.File // 重写时用到的临时文件
	fileSize int64    // 重写开始时的日志文件大小
}

func (persister *Persister) newRewritePersister() *Persister {
	tmpDB := persister.tmpDBMaker()
	return &Persister{
		db:              tmpDB,
		journalFilename: persister.journalFilename,
	}
}

// Rewrite 压缩命令日志：回放后的注册表中每个集合只需要一条 define 命令，
// 历史上的 insert、store、clear 等命令都被吸收掉。
func (persister *Persister) Rewrite(rewriteWait *sync.WaitGroup, rewriting *atomic.Bool) error {
	logger.Info("journal rewrite start...")
	persister.journalRewriting.Add(1)
	rewriting.Store(true)
	defer persister.journalRewriting.Done()
	defer func() {
		if rewriteWait != nil {
			rewriteWait.Done() // 通知 server 重写结束
		}
		rewriting.Store(false)
		logger.Info("journal rewrite finished...")
	}()

	rewriteCtx, err := persister.StartRewrite()
	if err != nil {
		return err
	}

	err = persister.DoRewrite(rewriteCtx)
	if err != nil {
		return err
	}

	err = persister.FinishRewrite(rewriteCtx)
	if err != nil {
		return err
	}

	return nil
}

// StartRewrite 暂停日志写入 -> 准备重写 -> 恢复日志写入
func (persister *Persister) StartRewrite() (*RewriteCtx, error) {
	// 首先暂停日志写入
	persister.pausingJournal.Lock()
	defer persister.pausingJournal.Unlock()

	// 调用 fsync 将缓冲区数据落盘，防止日志文件不完整造成错误
	err := persister.journalFile.Sync()
	if err != nil {
		logger.Warn("fsync failed")
		return nil, err
	}

	// 获取当前日志文件大小
	fileStat, _ := os.Stat(persister.journalFilename)
	fileSize := fileStat.Size()

	// 创建临时文件
	tmpFile, err := os.CreateTemp("./", "*.journal")
	if err != nil {
		logger.Warn("tmp file create failed")
		return nil, err
	}

	return &RewriteCtx{
		tmpFile:  tmpFile,
		fileSize: fileSize,
	}, nil
}

// DoRewrite 读取日志文件的前一部分（重写开始前的数据，不包括重写过程中写入的新命令），
// 回放进临时注册表，再按注册顺序为每个集合写一条 define 命令到临时文件中。
func (persister *Persister) DoRewrite(rewriteCtx *RewriteCtx) error {
	tmpFile := rewriteCtx.tmpFile

	rewritePersister := persister.newRewritePersister()
	rewritePersister.LoadJournal(rewriteCtx.fileSize)

	var err error
	rewritePersister.db.ForEach(func(name string, set *dataset.DataSet[int64]) bool {
		line := utils.SetToLine(set)
		if line == nil {
			return true
		}
		if _, err = tmpFile.Write(line); err != nil {
			return false
		}
		return true
	})

	return err
}

// FinishRewrite 暂停日志写入 -> 将重写过程中产生的新命令写入临时文件中 ->
// 使用临时文件覆盖日志文件（使用文件系统的 mv 保证安全） -> 恢复日志写入
func (persister *Persister) FinishRewrite(rewriteCtx *RewriteCtx) error {
	// 暂停日志写入
	persister.pausingJournal.Lock()
	defer persister.pausingJournal.Unlock()

	// 打开日志文件，并 seek 到重写开始的位置
	src, err := os.Open(persister.journalFilename)
	if err != nil {
		logger.Error("open journalFilename failed: " + err.Error())
		return err
	}

	_, err = src.Seek(rewriteCtx.fileSize, 0)
	if err != nil {
		logger.Error("seek failed: " + err.Error())
		return err
	}

	// 把重写过程中产生的新命令复制到临时文件中
	tmpFile := rewriteCtx.tmpFile
	_, err = io.Copy(tmpFile, src)
	if err != nil {
		logger.Error("copy journal file failed: " + err.Error())
		return err
	}

	// 使用 mv，令临时文件代替日志文件
	_ = persister.journalFile.Close()
	_ = src.Close()
	_ = tmpFile.Close()
	_ = os.Rename(tmpFile.Name(), persister.journalFilename)

	// 重新打开日志文件，保证后续写入正常
	journalFile, err := os.OpenFile(persister.journalFilename, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		panic(err)
	}
	persister.journalFile = journalFile

	return nil
}

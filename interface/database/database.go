package database

import (
	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/interface/wire"
)

// CmdLine is alias for [][]byte, represents a command line
type CmdLine = [][]byte

// DB is the interface for a set algebra engine
type DB interface {
	Exec(client wire.Connection, cmdLine CmdLine) wire.Reply
	AfterClientClose(c wire.Connection)
	Close()
}

// DBEngine 暴露引擎内部能力，供日志重写等组件使用
type DBEngine interface {
	DB
	ForEach(consumer func(name string, set *dataset.DataSet[int64]) bool)
}

package engine

import (
	"strings"
	"sync"

	"github.com/dawnzzz/simple-sets/database/collection"
	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

// DB 是集合代数的执行引擎，持有命名集合的注册表。
// 注册表不是并发安全的结构，读写命令通过一把引擎级读写锁隔离。
type DB struct {
	sets       *collection.Collection[int64]
	mu         sync.RWMutex
	addJournal func(line CmdLine)
}

// CmdLine is alias for [][]byte, represents a command line
type CmdLine = [][]byte

func MakeDB() *DB {
	return &DB{
		sets:       collection.MakeCollection[int64](),
		addJournal: func(line CmdLine) {},
	}
}

// Sets returns the set registry, for command executors.
func (db *DB) Sets() *collection.Collection[int64] {
	return db.sets
}

// Flush Warning! clean all db data
func (db *DB) Flush() {
	db.sets.Clear()
}

// Exec executes a command on the engine
func (db *DB) Exec(c wire.Connection, cmdLine [][]byte) wire.Reply {
	cmdName := strings.ToLower(string(cmdLine[0]))
	// 获取命令
	cmd, ok := cmdTable[cmdName]
	if !ok {
		return reply.MakeErrReply("ERR unknown command '" + cmdName + "'")
	}
	if !validateArity(cmd.arity, cmdLine) {
		return reply.MakeArgNumErrReply(cmdName)
	}

	// 只读命令共享引擎锁，写命令独占
	if cmd.flags&FlagReadOnly > 0 {
		db.mu.RLock()
		defer db.mu.RUnlock()
	} else {
		db.mu.Lock()
		defer db.mu.Unlock()
	}

	// 执行
	fun := cmd.executor
	r, needJournal := fun(db, cmdLine[1:])
	if needJournal {
		// 修改成功的写命令才追加到命令日志
		db.addJournal(cmdLine)
	}

	return r
}

// 验证参数数量是否正确
func validateArity(arity int, cmdArgs [][]byte) bool {
	argNum := len(cmdArgs)
	if arity >= 0 {
		return argNum == arity
	}
	return argNum >= -arity
}

func (db *DB) SetAddJournal(addJournal func(line CmdLine)) {
	db.addJournal = addJournal
}

func (db *DB) AddJournal(line CmdLine) {
	db.addJournal(line)
}

// ForEach traverses all the sets in the registry in registration order
func (db *DB) ForEach(consumer func(name string, set *dataset.DataSet[int64]) bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	db.sets.ForEach(consumer)
}

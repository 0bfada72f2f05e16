package engine

import (
	"strings"

	"github.com/dawnzzz/simple-sets/interface/wire"
)

// ExecFunc is interface for command executor
// args don't include cmd name,
// needJournal 表明这条命令修改了数据，需要写入命令日志
type ExecFunc func(db *DB, args [][]byte) (r wire.Reply, needJournal bool)

var cmdTable = make(map[string]*command)

type command struct {
	executor ExecFunc
	arity    int // allow number of args, arity < 0 means len(args) >= -arity
	flags    int // FlagWrite or FlagReadOnly
}

const (
	FlagWrite    = 0
	FlagReadOnly = 1
)

// RegisterCommand registers a new command
// arity means allowed number of cmdArgs, arity < 0 means len(args) >= -arity.
// for example: the arity of `print` is 2, `define` is -2
func RegisterCommand(name string, executor ExecFunc, arity int, flags int) {
	name = strings.ToLower(name)
	cmdTable[name] = &command{
		executor: executor,
		arity:    arity,
		flags:    flags,
	}
}

func IsReadOnlyCommand(name string) bool {
	name = strings.ToLower(name)
	if cmd, ok := cmdTable[name]; ok && (cmd.flags&FlagReadOnly > 0) {
		return true
	}

	return false
}

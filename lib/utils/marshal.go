package utils

import (
	"bytes"
	"strconv"

	"github.com/dawnzzz/simple-sets/datastruct/dataset"
)

var defineCmd = []byte("define")

// StringsToCmdLine 将字符串参数打包为一条命令
func StringsToCmdLine(args ...string) [][]byte {
	cmdLine := make([][]byte, 0, len(args))
	for _, arg := range args {
		cmdLine = append(cmdLine, []byte(arg))
	}

	return cmdLine
}

// CmdLineToLine 将一条命令序列化为一行文本，参数之间以单个空格分隔
func CmdLineToLine(cmdLine [][]byte) []byte {
	line := bytes.Join(cmdLine, []byte{' '})
	return append(line, '\n')
}

// SetToCmdLine serializes a set into the define command that recreates it,
// members in insertion order.
func SetToCmdLine(set *dataset.DataSet[int64]) [][]byte {
	if set == nil {
		return nil
	}

	cmdLine := make([][]byte, 0, set.Len()+2)
	cmdLine = append(cmdLine, defineCmd, []byte(set.Name()))
	set.ForEach(func(member int64) bool {
		cmdLine = append(cmdLine, []byte(strconv.FormatInt(member, 10)))
		return true
	})

	return cmdLine
}

// SetToLine serializes a set into one journal line.
func SetToLine(set *dataset.DataSet[int64]) []byte {
	if set == nil {
		return nil
	}

	return CmdLineToLine(SetToCmdLine(set))
}

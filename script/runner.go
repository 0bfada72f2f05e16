package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dawnzzz/simple-sets/interface/database"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/lib/utils"
	"github.com/dawnzzz/simple-sets/wire/connection"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

// Runner 执行两段式集合脚本：
// 第一段逐行定义集合（<name> <count> 后跟一行元素），直到读到 Q；
// 第二段逐行执行算子命令并打印结果。
// 空行和 # 开头的注释行被跳过，单条命令失败不会中断脚本。
type Runner struct {
	db   database.DB
	conn *connection.FakeConn
	out  io.Writer
}

func MakeRunner(db database.DB, out io.Writer) *Runner {
	return &Runner{
		db:   db,
		conn: connection.NewFakeConn(),
		out:  out,
	}
}

// RunFile executes the script in the named file.
func (runner *Runner) RunFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	return runner.Run(file)
}

// Run executes a script from reader, definitions first, then queries.
func (runner *Runner) Run(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)

	runner.runDefinitions(scanner)
	runner.runQueries(scanner)

	return scanner.Err()
}

// runDefinitions 读取集合定义，成功的定义不产生输出
func (runner *Runner) runDefinitions(scanner *bufio.Scanner) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "Q" {
			return // 定义结束，进入查询段
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			runner.print(reply.MakeErrReply("ERR invalid set definition '" + line + "'"))
			continue
		}

		name := fields[0]
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			runner.print(reply.MakeErrReply("ERR invalid element count '" + fields[1] + "'"))
			continue
		}

		cmdLine := utils.StringsToCmdLine("define", name)
		if count > 0 && scanner.Scan() {
			// 元素在紧随其后的一行中，空格分隔
			for _, value := range strings.Fields(scanner.Text()) {
				cmdLine = append(cmdLine, []byte(value))
			}
		}

		if r := runner.db.Exec(runner.conn, cmdLine); reply.IsErrorReply(r) {
			runner.print(r)
		}
	}
}

// runQueries 执行查询命令，每条命令的结果占一块输出
func (runner *Runner) runQueries(scanner *bufio.Scanner) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "Q" {
			return
		}

		r := runner.db.Exec(runner.conn, utils.StringsToCmdLine(strings.Fields(line)...))
		runner.print(r)
	}
}

func (runner *Runner) print(r wire.Reply) {
	_, _ = fmt.Fprintln(runner.out, r.DataString())
}

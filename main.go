package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dawnzzz/simple-sets/config"
	"github.com/dawnzzz/simple-sets/database"
	"github.com/dawnzzz/simple-sets/logger"
	"github.com/dawnzzz/simple-sets/script"
	"github.com/dawnzzz/simple-sets/tcp"
	"github.com/dawnzzz/simple-sets/wire/server"
)

// 配置文件
var configFilename string
var defaultConfigFileName = "config.yaml"

// 脚本文件，非空时执行脚本后退出，不启动 TCP 服务
var scriptFilename string

const banner = `
 ____  _                 _        ____       _
/ ___|(_)_ __ ___  _ __ | | ___  / ___|  ___| |_ ___
\___ \| | '_ ` + "`" + ` _ \| '_ \| |/ _ \ \___ \ / _ \ __/ __|
 ___) | | | | | | | |_) | |  __/  ___) |  __/ |_\__ \
|____/|_|_| |_| |_| .__/|_|\___| |____/ \___|\__|___/
                  |_|

powered by https://github.com/dawnzzz/simple-sets

`

func main() {
	flag.StringVar(&configFilename, "f", defaultConfigFileName, "the config file")
	flag.StringVar(&scriptFilename, "s", "", "run a set algebra script file and exit")
	flag.Parse()

	// 加载配置文件
	config.SetupConfig(configFilename)

	// 加载日志
	logger.SetupLogger(config.Properties.Debug)

	if scriptFilename != "" {
		// 脚本模式，结果输出到stdout
		if err := runScript(scriptFilename); err != nil {
			logger.Error(err)
		}
		return
	}

	fmt.Print(banner)

	if err := tcp.ListenAndServeWithSignal(server.MakeHandler()); err != nil {
		logger.Error(err)
	}
}

func runScript(filename string) error {
	db := database.NewStandaloneServer()
	defer db.Close()

	return script.MakeRunner(db, os.Stdout).RunFile(filename)
}

package config

import (
	"os"

	"github.com/dawnzzz/simple-sets/logger"
	"github.com/spf13/viper"
)

// ServerProperties 服务器配置
type ServerProperties struct {
	Debug     bool   `mapstructure:"debug"`     // 是否是debug
	Bind      string `mapstructure:"bind"`      // 服务器绑定地址
	Port      int    `mapstructure:"port"`      // 监听端口
	Password  string `mapstructure:"password"`  // 密码
	Keepalive int    `mapstructure:"keepalive"` // 心跳超时时间（秒），0 表示不检查心跳

	/* 命令日志持久化配置 */
	Journal                      bool   `mapstructure:"journal"`                         // 是否开启命令日志持久化
	JournalFilename              string `mapstructure:"journal_filename"`                // 命令日志文件名
	JournalFsync                 int    `mapstructure:"journal_fsync"`                   // 命令日志刷盘策略
	AutoJournalRewrite           bool   `mapstructure:"auto_journal_rewrite"`            // 是否开启日志自动重写
	AutoJournalRewritePercentage int64  `mapstructure:"auto_journal_rewrite_percentage"` // 触发重写所需要的日志文件体积百分比，增量大于这个值时才进行重写
	AutoJournalRewriteMinSize    int64  `mapstructure:"auto_journal_rewrite_min_size"`   // 表示触发日志重写的最小文件体积，单位mb
}

var Properties *ServerProperties

func init() {
	// 默认配置
	Properties = &ServerProperties{
		Debug:     os.Getenv("ENV") == "DEBUG",
		Bind:      "127.0.0.1",
		Port:      6479,
		Password:  "",
		Keepalive: 0,

		Journal:                      false,
		JournalFilename:              "sets.journal",
		JournalFsync:                 0,
		AutoJournalRewrite:           false,
		AutoJournalRewritePercentage: 100,
		AutoJournalRewriteMinSize:    64,
	}
}

// SetupConfig 读配置文件，加载配置文件
func SetupConfig(configFilename string) {
	if !fileExists(configFilename) {
		// 文件不存在，直接用默认配置
		return
	}

	viper.SetConfigFile(configFilename)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		logger.Fatalf("setup config err, %v", err)
	}

	if err := viper.Unmarshal(Properties); err != nil {
		logger.Fatalf("setup config unmarshal err, %v", err)
	}

	if Properties.Debug == true { // debug 没有密码
		Properties.Password = ""
	}
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

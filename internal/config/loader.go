package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// GlobalConfig 全局配置单例
// LoadConfig 成功后被填充，后续模块直接读取即可
var (
	GlobalConfig *AppConfig
	loadOnce     sync.Once
)

// LoadConfig 加载配置
// configPath: 配置文件路径，传入空字符串时在默认路径搜索；
// 一次性 CLI 工具允许无配置文件运行，全部取默认值
func LoadConfig(configPath string) error {
	var err error

	loadOnce.Do(func() {
		v := viper.New()

		// 1. 设置默认值 (兜底策略)
		setDefaults(v)

		// 2. 配置读取规则
		if configPath != "" {
			v.SetConfigFile(configPath)
		} else {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath("/etc/sensitive-scanner/")
			v.AddConfigPath(".")
		}

		// 3. 环境变量覆盖: SDD_SCANNER_BATCH_SIZE 覆盖 scanner.batch_size
		v.SetEnvPrefix("SDD")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		// 4. 读取配置文件；未显式指定路径时缺失不算错误
		if readErr := v.ReadInConfig(); readErr != nil {
			if _, notFound := readErr.(viper.ConfigFileNotFoundError); !notFound || configPath != "" {
				err = fmt.Errorf("failed to read config file: %v", readErr)
				return
			}
		}

		// 5. 反序列化到结构体
		var config AppConfig
		if err = v.Unmarshal(&config); err != nil {
			err = fmt.Errorf("failed to unmarshal config: %v", err)
			return
		}

		GlobalConfig = &config
	})

	return err
}

// setDefaults 定义配置的默认行为
func setDefaults(v *viper.Viper) {
	// Agent 基础
	v.SetDefault("agent.log_level", "info")
	v.SetDefault("agent.log_file", "detector.log")
	v.SetDefault("agent.data_dir", ".")
	v.SetDefault("agent.log_max_size", 100)
	v.SetDefault("agent.log_max_backups", 5)
	v.SetDefault("agent.log_max_age", 30)
	v.SetDefault("agent.log_compress", true)
	v.SetDefault("agent.log_stdout", false)

	// Scanner 扫描策略
	v.SetDefault("scanner.batch_size", 20)
	v.SetDefault("scanner.max_workers", 0) // 0 = min(32, 2×CPU)
	v.SetDefault("scanner.progress_every", 100)
	v.SetDefault("scanner.head_size", 4096)
	v.SetDefault("scanner.sensitive_marker", "敏感文件")

	// Rules 规则持久化
	v.SetDefault("rules.file", "learned_rules.json")

	// Database 结果入库
	v.SetDefault("database.enable", true)
	v.SetDefault("database.file_name", "scanner.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.journal_mode", "WAL")
	v.SetDefault("database.synchronous", "NORMAL")
	v.SetDefault("database.temp_store", "MEMORY")
}

// Get 获取配置的安全访问器
func Get() *AppConfig {
	if GlobalConfig == nil {
		panic("Config not initialized! Call LoadConfig() first.")
	}
	return GlobalConfig
}

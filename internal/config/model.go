// Package config
package config

import "time"

// ==========================================
// 顶层配置结构
// ==========================================

type AppConfig struct {
	Agent    AgentConfig    `mapstructure:"agent" yaml:"agent"`
	Scanner  ScannerConfig  `mapstructure:"scanner" yaml:"scanner"`
	Rules    RulesConfig    `mapstructure:"rules" yaml:"rules"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
}

// ==========================================
// 1. 基础配置
// ==========================================

type AgentConfig struct {
	// 日志级别: debug, info, warn, error
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// 日志文件路径，为空只打控制台
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
	// 数据存储目录
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	// 日志轮转配置
	LogMaxSize    int  `mapstructure:"log_max_size" yaml:"log_max_size"`       // MB
	LogMaxBackups int  `mapstructure:"log_max_backups" yaml:"log_max_backups"` // 个数
	LogMaxAge     int  `mapstructure:"log_max_age" yaml:"log_max_age"`         // 天数
	LogCompress   bool `mapstructure:"log_compress" yaml:"log_compress"`       // 是否压缩
	LogStdout     bool `mapstructure:"log_stdout" yaml:"log_stdout"`           // 是否打印到控制台
}

// ==========================================
// 2. 扫描策略
// ==========================================

type ScannerConfig struct {
	// 每批文件数
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
	// 并发 Worker 上限，0 表示 min(32, 2×CPU)
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"`
	// 进度与检查点间隔（文件数）
	ProgressEvery int `mapstructure:"progress_every" yaml:"progress_every"`
	// 内容分析读取的文件头字节数
	HeadSize int `mapstructure:"head_size" yaml:"head_size"`
	// 敏感样例目录的路径标记段
	SensitiveMarker string `mapstructure:"sensitive_marker" yaml:"sensitive_marker"`
}

// ==========================================
// 3. 规则配置
// ==========================================

type RulesConfig struct {
	// 学习规则持久化文件路径
	File string `mapstructure:"file" yaml:"file"`
}

// ==========================================
// 4. 数据库配置
// ==========================================

type DatabaseConfig struct {
	// 是否启用结果入库
	Enable bool `mapstructure:"enable" yaml:"enable"`
	// 数据库文件名
	FileName string `mapstructure:"file_name" yaml:"file_name"`
	// GORM 日志级别: silent, error, warn, info
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// 最大打开连接数 (SQLite 建议 1)
	MaxOpenConns int `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	// 最大空闲连接数 (SQLite 建议 1)
	MaxIdleConns int `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	// 连接最大生命周期
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	// SQLite Journal 模式: WAL, DELETE, TRUNCATE, PERSIST, MEMORY
	JournalMode string `mapstructure:"journal_mode" yaml:"journal_mode"`
	// SQLite 同步模式: FULL, NORMAL, OFF
	Synchronous string `mapstructure:"synchronous" yaml:"synchronous"`
	// SQLite 临时存储: MEMORY, FILE
	TempStore string `mapstructure:"temp_store" yaml:"temp_store"`
}

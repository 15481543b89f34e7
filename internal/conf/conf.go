package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BenedictKing/jina-sum/internal/biz/usecase"
)

// Config represents application configuration
type Config struct {
	// Feishu configuration
	Feishu FeishuConfig

	// Jina reader configuration
	Jina JinaConfig

	// OpenAI configuration
	OpenAI OpenAIConfig

	// Summarization behavior
	Summary SummaryConfig

	// Summary history database path, empty disables history
	HistoryDBPath string

	// Debug mode
	Debug bool
}

// FeishuConfig contains Feishu configuration
type FeishuConfig struct {
	AppID     string
	AppSecret string
}

// JinaConfig contains content-extraction proxy configuration
type JinaConfig struct {
	ReaderBase string
}

// OpenAIConfig contains language-model configuration
type OpenAIConfig struct {
	APIBase string
	APIKey  string
	Model   string
}

// SummaryConfig contains trigger, prompt, and cache configuration
type SummaryConfig struct {
	Enabled             bool
	Group               bool // handle group chats
	AutoSum             bool
	MaxWords            int
	Prompt              string
	QAPrompt            string
	SumTrigger          string
	QATrigger           string
	WhiteURLList        []string
	BlackURLList        []string
	BlackGroupList      []string
	SummaryCacheTimeout time.Duration
	ContentCacheTimeout time.Duration
	SendNotice          bool
}

// fileConfig is the YAML schema; pointers distinguish "absent" from "false"
type fileConfig struct {
	JinaReaderBase      string   `yaml:"jina_reader_base"`
	OpenAIAPIBase       string   `yaml:"open_ai_api_base"`
	OpenAIAPIKey        string   `yaml:"open_ai_api_key"`
	OpenAIModel         string   `yaml:"open_ai_model"`
	MaxWords            int      `yaml:"max_words"`
	WhiteURLList        []string `yaml:"white_url_list"`
	BlackURLList        []string `yaml:"black_url_list"`
	Prompt              string   `yaml:"prompt"`
	QAPrompt            string   `yaml:"qa_prompt"`
	Enabled             *bool    `yaml:"enabled"`
	Group               *bool    `yaml:"group"`
	AutoSum             *bool    `yaml:"auto_sum"`
	SumTrigger          string   `yaml:"sum_trigger"`
	QATrigger           string   `yaml:"qa_trigger"`
	BlackGroupList      []string `yaml:"black_group_list"`
	SummaryCacheTimeout int      `yaml:"summary_cache_timeout"`
	ContentCacheTimeout int      `yaml:"content_cache_timeout"`
	SendNotice          *bool    `yaml:"send_notice"`
	HistoryDBPath       string   `yaml:"history_db_path"`
}

// DefaultPrompt is the summarization prompt
const DefaultPrompt = "我需要对下面引号内文档进行总结，总结输出包括以下三个部分：\n📖 一句话总结\n🔑 关键要点,用数字序号列出3-5个文章的核心内容\n🏷 标签: #xx #xx\n请使用emoji让你的表达更生动\n\n"

// DefaultQAPrompt is the follow-up template; {content} and {question} are substituted
const DefaultQAPrompt = "根据以下文章内容回答问题：\n'''{content}'''\n\n问题：{question}\n要求：答案需准确简洁，引用原文内容需用引号标注"

// DefaultBlackURLList covers link types the reader proxy cannot extract
var DefaultBlackURLList = []string{
	"https://support.weixin.qq.com",
	"https://channels-aladin.wxqcloud.qq.com",
	"https://www.wechat.com",
	"https://channels.weixin.qq.com",
	"https://docs.qq.com",
	"https://work.weixin.qq.com",
	"https://map.baidu.com",
	"https://map.qq.com",
	"https://y.qq.com",
	"https://music.163.com",
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Jina: JinaConfig{
			ReaderBase: "https://r.jina.ai",
		},
		OpenAI: OpenAIConfig{
			APIBase: "https://api.openai.com/v1",
			Model:   "gpt-4o-2024-08-06",
		},
		Summary: SummaryConfig{
			Enabled:             true,
			Group:               true,
			AutoSum:             true,
			MaxWords:            8000,
			Prompt:              DefaultPrompt,
			QAPrompt:            DefaultQAPrompt,
			SumTrigger:          "总结",
			QATrigger:           "问",
			BlackURLList:        DefaultBlackURLList,
			SummaryCacheTimeout: 900 * time.Second,
			ContentCacheTimeout: 900 * time.Second,
			SendNotice:          true,
		},
		HistoryDBPath: filepath.Join(homeDir, ".jina-sum", "history.db"),
	}
}

// Load loads configuration: defaults, then the YAML config file (if any),
// then environment variable overrides
func Load() *Config {
	cfg := defaultConfig()

	if fc := loadConfigFile(os.Getenv("CONFIG_PATH")); fc != nil {
		applyFileConfig(cfg, fc)
	}
	applyEnv(cfg)

	return cfg
}

// loadConfigFile reads the first config.yaml found, nil if none
func loadConfigFile(configPath string) *fileConfig {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"config.yaml",
			"configs/config.yaml",
			"/etc/jina-sum/config.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "config.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if b, err := os.ReadFile(p); err == nil {
			data = b
			loadedPath = p
			break
		}
	}
	if data == nil {
		fmt.Println("[Config] No config.yaml found, using defaults")
		return nil
	}

	fmt.Printf("[Config] Loading config from: %s\n", loadedPath)

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		fmt.Printf("[Config] Failed to parse %s: %v, using defaults\n", loadedPath, err)
		return nil
	}
	return &fc
}

func applyFileConfig(cfg *Config, fc *fileConfig) {
	if fc.JinaReaderBase != "" {
		cfg.Jina.ReaderBase = fc.JinaReaderBase
	}
	if fc.OpenAIAPIBase != "" {
		cfg.OpenAI.APIBase = fc.OpenAIAPIBase
	}
	if fc.OpenAIAPIKey != "" {
		cfg.OpenAI.APIKey = fc.OpenAIAPIKey
	}
	if fc.OpenAIModel != "" {
		cfg.OpenAI.Model = fc.OpenAIModel
	}
	if fc.MaxWords > 0 {
		cfg.Summary.MaxWords = fc.MaxWords
	}
	if fc.WhiteURLList != nil {
		cfg.Summary.WhiteURLList = fc.WhiteURLList
	}
	if fc.BlackURLList != nil {
		cfg.Summary.BlackURLList = fc.BlackURLList
	}
	if fc.Prompt != "" {
		cfg.Summary.Prompt = fc.Prompt
	}
	if fc.QAPrompt != "" {
		cfg.Summary.QAPrompt = fc.QAPrompt
	}
	if fc.Enabled != nil {
		cfg.Summary.Enabled = *fc.Enabled
	}
	if fc.Group != nil {
		cfg.Summary.Group = *fc.Group
	}
	if fc.AutoSum != nil {
		cfg.Summary.AutoSum = *fc.AutoSum
	}
	if fc.SumTrigger != "" {
		cfg.Summary.SumTrigger = fc.SumTrigger
	}
	if fc.QATrigger != "" {
		cfg.Summary.QATrigger = fc.QATrigger
	}
	if fc.BlackGroupList != nil {
		cfg.Summary.BlackGroupList = fc.BlackGroupList
	}
	if fc.SummaryCacheTimeout > 0 {
		cfg.Summary.SummaryCacheTimeout = time.Duration(fc.SummaryCacheTimeout) * time.Second
	}
	if fc.ContentCacheTimeout > 0 {
		cfg.Summary.ContentCacheTimeout = time.Duration(fc.ContentCacheTimeout) * time.Second
	}
	if fc.SendNotice != nil {
		cfg.Summary.SendNotice = *fc.SendNotice
	}
	if fc.HistoryDBPath != "" {
		cfg.HistoryDBPath = fc.HistoryDBPath
	}
}

func applyEnv(cfg *Config) {
	cfg.Feishu.AppID = os.Getenv("FEISHU_APP_ID")
	cfg.Feishu.AppSecret = os.Getenv("FEISHU_APP_SECRET")

	if val := os.Getenv("JINA_READER_BASE"); val != "" {
		cfg.Jina.ReaderBase = val
	}
	if val := os.Getenv("OPEN_AI_API_BASE"); val != "" {
		cfg.OpenAI.APIBase = val
	}
	if val := os.Getenv("OPEN_AI_API_KEY"); val != "" {
		cfg.OpenAI.APIKey = val
	}
	if val := os.Getenv("OPEN_AI_MODEL"); val != "" {
		cfg.OpenAI.Model = val
	}
	if val := os.Getenv("MAX_WORDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			cfg.Summary.MaxWords = parsed
		}
	}
	if val := os.Getenv("HISTORY_DB_PATH"); val != "" {
		cfg.HistoryDBPath = val
	}
	cfg.Debug = os.Getenv("DEBUG") == "true"
}

// ToClassifierConfig converts to the classifier's trigger policy
func (c *Config) ToClassifierConfig() usecase.ClassifierConfig {
	return usecase.ClassifierConfig{
		AutoSum:        c.Summary.AutoSum,
		Group:          c.Summary.Group,
		SumTrigger:     c.Summary.SumTrigger,
		QATrigger:      c.Summary.QATrigger,
		WhiteURLList:   c.Summary.WhiteURLList,
		BlackURLList:   c.Summary.BlackURLList,
		BlackGroupList: c.Summary.BlackGroupList,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Feishu.AppID == "" || c.Feishu.AppSecret == "" {
		return &ConfigError{Field: "FEISHU_APP_ID/FEISHU_APP_SECRET", Message: "required"}
	}
	if c.OpenAI.APIKey == "" {
		return &ConfigError{Field: "OPEN_AI_API_KEY", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Jina.ReaderBase != "https://r.jina.ai" {
		t.Errorf("Unexpected reader base: %s", cfg.Jina.ReaderBase)
	}
	if !cfg.Summary.Enabled || !cfg.Summary.Group || !cfg.Summary.AutoSum {
		t.Error("Expected enabled/group/auto_sum on by default")
	}
	if cfg.Summary.MaxWords != 8000 {
		t.Errorf("Unexpected max words: %d", cfg.Summary.MaxWords)
	}
	if cfg.Summary.SumTrigger != "总结" || cfg.Summary.QATrigger != "问" {
		t.Errorf("Unexpected triggers: %q %q", cfg.Summary.SumTrigger, cfg.Summary.QATrigger)
	}
	if cfg.Summary.SummaryCacheTimeout != 900*time.Second {
		t.Errorf("Unexpected summary cache timeout: %v", cfg.Summary.SummaryCacheTimeout)
	}
	if len(cfg.Summary.BlackURLList) == 0 {
		t.Error("Expected default black url list")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
jina_reader_base: "https://reader.internal"
max_words: 5000
auto_sum: false
sum_trigger: "summarize"
black_group_list:
  - "oc_blocked"
summary_cache_timeout: 300
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg := defaultConfig()
	fc := loadConfigFile(path)
	if fc == nil {
		t.Fatal("Expected config file to load")
	}
	applyFileConfig(cfg, fc)

	if cfg.Jina.ReaderBase != "https://reader.internal" {
		t.Errorf("Unexpected reader base: %s", cfg.Jina.ReaderBase)
	}
	if cfg.Summary.MaxWords != 5000 {
		t.Errorf("Unexpected max words: %d", cfg.Summary.MaxWords)
	}
	if cfg.Summary.AutoSum {
		t.Error("Expected auto_sum off")
	}
	if cfg.Summary.SumTrigger != "summarize" {
		t.Errorf("Unexpected trigger: %s", cfg.Summary.SumTrigger)
	}
	if len(cfg.Summary.BlackGroupList) != 1 || cfg.Summary.BlackGroupList[0] != "oc_blocked" {
		t.Errorf("Unexpected black group list: %v", cfg.Summary.BlackGroupList)
	}
	if cfg.Summary.SummaryCacheTimeout != 300*time.Second {
		t.Errorf("Unexpected timeout: %v", cfg.Summary.SummaryCacheTimeout)
	}
	// Untouched fields keep defaults
	if cfg.Summary.QATrigger != "问" {
		t.Errorf("Expected default qa trigger, got %s", cfg.Summary.QATrigger)
	}
	if !cfg.Summary.Enabled {
		t.Error("Expected enabled untouched")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FEISHU_APP_ID", "cli_test")
	t.Setenv("FEISHU_APP_SECRET", "secret")
	t.Setenv("OPEN_AI_API_KEY", "sk-test")
	t.Setenv("JINA_READER_BASE", "https://reader.env")
	t.Setenv("MAX_WORDS", "4000")
	t.Setenv("DEBUG", "true")

	cfg := defaultConfig()
	applyEnv(cfg)

	if cfg.Feishu.AppID != "cli_test" || cfg.Feishu.AppSecret != "secret" {
		t.Error("Expected Feishu credentials from env")
	}
	if cfg.Jina.ReaderBase != "https://reader.env" {
		t.Errorf("Unexpected reader base: %s", cfg.Jina.ReaderBase)
	}
	if cfg.Summary.MaxWords != 4000 {
		t.Errorf("Unexpected max words: %d", cfg.Summary.MaxWords)
	}
	if !cfg.Debug {
		t.Error("Expected debug mode on")
	}
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error without credentials")
	}

	cfg.Feishu.AppID = "cli_test"
	cfg.Feishu.AppSecret = "secret"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error without API key")
	}

	cfg.OpenAI.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestToClassifierConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Summary.WhiteURLList = []string{"https://allowed.com"}
	cfg.Summary.BlackGroupList = []string{"oc_x"}

	cc := cfg.ToClassifierConfig()
	if !cc.AutoSum || !cc.Group {
		t.Error("Expected auto_sum and group carried over")
	}
	if cc.SumTrigger != "总结" || cc.QATrigger != "问" {
		t.Errorf("Unexpected triggers: %q %q", cc.SumTrigger, cc.QATrigger)
	}
	if len(cc.WhiteURLList) != 1 || len(cc.BlackGroupList) != 1 {
		t.Error("Expected lists carried over")
	}
}

package config

import "time"

type Config struct {
	Server HTTPServerConfig `json:"server"`
	LLM    LLMConfig        `json:"llm"`
	Mongo  MongoConfig
}

type HTTPServerConfig struct {
	Host         string        `json:"host" default:"0.0.0.0"`
	Port         int           `json:"port" default:"8080"`
	ReadTimeout  time.Duration `json:"read_timeout" default:"120s"`
	WriteTimeout time.Duration `json:"write_timeout" default:"120s"`
}

type LLMConfig struct {
	APIKey  string        `json:"api_key" required:"true"`
	BaseURL string        `json:"base_url" default:"https://api.openai.com/v1"`
	Model   string        `json:"model" default:"gpt-5-nano"`
	Timeout time.Duration `json:"timeout" default:"60s"`
}

// MongoConfig is optional: an empty URI disables the history store.
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

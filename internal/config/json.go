package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		PasswordCost   int      `json:"password_cost"`
		TokenDigestKey string   `json:"token_digest_key"`
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		ResetTokenTTL  Duration `json:"reset_token_ttl"`
		FeedPageSize   int      `json:"feed_page_size"`
		Version        string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver"`
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
			MaxRetries   uint64 `json:"max_retries"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		Mail struct {
			RelayURL       string   `json:"relay_url"`
			Sender         string   `json:"sender"`
			LinkBaseURL    string   `json:"link_base_url"`
			RequestTimeout Duration `json:"request_timeout"`
			QueueSize      int      `json:"queue_size"`
			MaxRetries     uint64   `json:"max_retries"`
		} `json:"mail,omitempty"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordCost:   jsonCfg.App.PasswordCost,
			TokenDigestKey: jsonCfg.App.TokenDigestKey,
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			ResetTokenTTL:  time.Duration(jsonCfg.App.ResetTokenTTL),
			FeedPageSize:   jsonCfg.App.FeedPageSize,
			Version:        jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver:       jsonCfg.Storage.DB.Driver,
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
				MaxRetries:   jsonCfg.Storage.DB.MaxRetries,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			Mail: Mail{
				RelayURL:       jsonCfg.Adapter.Mail.RelayURL,
				Sender:         jsonCfg.Adapter.Mail.Sender,
				LinkBaseURL:    jsonCfg.Adapter.Mail.LinkBaseURL,
				RequestTimeout: time.Duration(jsonCfg.Adapter.Mail.RequestTimeout),
				QueueSize:      jsonCfg.Adapter.Mail.QueueSize,
				MaxRetries:     jsonCfg.Adapter.Mail.MaxRetries,
			},
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

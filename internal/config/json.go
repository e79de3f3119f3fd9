package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config file.
type StructuredJSONConfig struct {
	Server struct {
		Port           string   `json:"port"`
		Host           string   `json:"host"`
		HTTPSMode      bool     `json:"https_mode"`
		Mode           string   `json:"mode"`
		RequestTimeout Duration `json:"request_timeout"`

		TLS struct {
			KeyFile       string `json:"key_file"`
			CertFile      string `json:"cert_file"`
			KeyPassphrase string `json:"key_passphrase"`
		} `json:"tls,omitempty"`

		CORS struct {
			AllowedOrigins []string `json:"allowed_origins"`
		} `json:"cors,omitempty"`
	} `json:"server,omitempty"`

	App struct {
		Version          string   `json:"version"`
		MaxBorrowedBooks int      `json:"max_borrowed_books"`
		BorrowPeriod     Duration `json:"borrow_period"`
		PenaltyDuration  Duration `json:"penalty_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		PenaltySweepInterval Duration `json:"penalty_sweep_interval"`
	} `json:"workers,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
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
		Server: Server{
			Port:           jsonCfg.Server.Port,
			Host:           jsonCfg.Server.Host,
			HTTPSMode:      NumericBool(jsonCfg.Server.HTTPSMode),
			Mode:           jsonCfg.Server.Mode,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			TLS: TLS{
				KeyFile:       jsonCfg.Server.TLS.KeyFile,
				CertFile:      jsonCfg.Server.TLS.CertFile,
				KeyPassphrase: jsonCfg.Server.TLS.KeyPassphrase,
			},
			CORS: CORS{
				AllowedOrigins: jsonCfg.Server.CORS.AllowedOrigins,
			},
		},
		App: App{
			Version:          jsonCfg.App.Version,
			MaxBorrowedBooks: jsonCfg.App.MaxBorrowedBooks,
			BorrowPeriod:     time.Duration(jsonCfg.App.BorrowPeriod),
			PenaltyDuration:  time.Duration(jsonCfg.App.PenaltyDuration),
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Workers: Workers{
			PenaltySweepInterval: time.Duration(jsonCfg.Workers.PenaltySweepInterval),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Package model defines the data structures used throughout the Traveline client.
package model

// Config holds the client settings. Values come from the JSON config file and
// may be overridden by TRAVELINE_* environment variables.
type Config struct {
	APIBaseURL            string `json:"api_base_url" env:"TRAVELINE_API_URL" env-default:"http://localhost:8000/api"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" env:"TRAVELINE_REQUEST_TIMEOUT" env-default:"15"`
	StorageType           string `json:"storage_type" env:"TRAVELINE_STORAGE_TYPE" env-default:"sqlite"`
	StorageDir            string `json:"storage_dir" env:"TRAVELINE_STORAGE_DIR" env-default:"./data"`
	StorageFile           string `json:"storage_file" env:"TRAVELINE_STORAGE_FILE" env-default:"traveline.db"`
	LogFolder             string `json:"log_folder" env:"TRAVELINE_LOG_FOLDER" env-default:"./logs"`
	CommandLog            string `json:"command_log" env-default:"commands.log"`
	ErrorLog              string `json:"error_log" env-default:"errors.log"`
	InfoLog               string `json:"info_log" env-default:"info.log"`
	LogLevel              string `json:"log_level" env:"TRAVELINE_LOG_LEVEL" env-default:"info"`
	HistoryFile           string `json:"history_file" env-default:"./data/history.txt"`
	NoColor               bool   `json:"no_color" env:"TRAVELINE_NO_COLOR"`
}

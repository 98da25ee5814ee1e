// Package config handles configuration file parsing and validation for md5.
//
// The configuration file is optional. When present it is TOML and is read on
// top of DefaultConfig, so only the keys a user wants to change need to be
// written down.
//
// # Configuration Structure
//
//	[general]
//	max_input_bytes = 1073741824  # 0 = unlimited
//	stop_at_nul = true
//	output_template = "{{digest}}"
//
//	[server]
//	listen_addr = "127.0.0.1"
//	listen_port = 8089
//	max_body_bytes = 16777216
//
// # Example Usage
//
//	cfg, err := config.LoadAndValidate(path)
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	engine := digest.NewEngine(cfg.General.MaxInputBytes)
//
// Validation uses go-playground/validator with field names taken from the
// toml tags, and collects every problem into ValidationErrors.
package config

package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8501
	}
	if cfg.Convert.PreviewRows == 0 {
		cfg.Convert.PreviewRows = 100
	}
	if cfg.Convert.MaxPreviewRows == 0 {
		cfg.Convert.MaxPreviewRows = 1000
	}
	if cfg.Convert.MaxUploadBytes == 0 {
		cfg.Convert.MaxUploadBytes = 32 << 20
	}
	if cfg.Convert.DownloadName == "" {
		cfg.Convert.DownloadName = "compress_result.xlsx"
	}
}

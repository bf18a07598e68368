package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"clinicd/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "CLINICD_LOG_LEVEL")
	v.BindEnv("storage.backend", "CLINICD_STORAGE_BACKEND")
	v.BindEnv("storage.filePath", "CLINICD_STORAGE_PATH")
	v.BindEnv("backup.dir", "CLINICD_BACKUP_DIR")
	v.BindEnv("cache.enabled", "CLINICD_CACHE_ENABLED")
	v.BindEnv("cache.size", "CLINICD_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ClinicRecordDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

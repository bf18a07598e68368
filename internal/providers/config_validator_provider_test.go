package providers

import (
	"testing"

	"clinicd/internal/structures"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *structures.Config {
	return &structures.Config{
		Storage: structures.StorageConfig{Backend: "file", FilePath: "/var/lib/clinicd/records.db"},
		Backup: structures.BackupConfig{
			Dir:        "/var/lib/clinicd/backups",
			StatePath:  "/var/lib/clinicd/backup-state.json",
			Interval:   60,
			MaxBackups: 10,
		},
		WebServer: structures.Server{Host: "127.0.0.1", Port: 8745},
		Logger:    structures.LoggerConfig{Level: "info", Mode: 0644, Dir: "/var/log/clinicd"},
	}
}

func TestCnfValidator_ValidConfig(t *testing.T) {
	assert.NoError(t, NewCnfValidator(validTestConfig()).Validate())
}

func TestCnfValidator_RejectsUnknownBackend(t *testing.T) {
	conf := validTestConfig()
	conf.Storage.Backend = "postgres"
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_RejectsUnknownLogLevel(t *testing.T) {
	conf := validTestConfig()
	conf.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_RejectsMissingPort(t *testing.T) {
	conf := validTestConfig()
	conf.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_RejectsZeroInterval(t *testing.T) {
	conf := validTestConfig()
	conf.Backup.Interval = 0
	assert.Error(t, NewCnfValidator(conf).Validate())
}

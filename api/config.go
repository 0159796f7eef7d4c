package api

import (
	"sync"

	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	VotingConfig
}

type StorageConfig struct {
	Driver              string
	TableNamePolls      string
	TableNameCandidates string
	TableNameVotes      string
	PostgresDSN         string
}

type ServerConfig struct {
	Port       int
	AllowReset bool
}

type VotingConfig struct {
	AllowPollOverwrite     bool
	AcceptUnknownCandidate bool
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:              getStringOrDefault("storage.driver", "dynamo"),
			TableNamePolls:      getStringOrDefault("storage.TableNamePolls", "Polls"),
			TableNameCandidates: getStringOrDefault("storage.TableNameCandidates", "Candidates"),
			TableNameVotes:      getStringOrDefault("storage.TableNameVotes", "VoteRecords"),
			PostgresDSN:         getStringOrDefault("storage.postgresDSN", ""),
		},
		ServerConfig: ServerConfig{
			Port:       getIntOrDefault("server.port", 8080),
			AllowReset: getBoolOrDefault("server.allowReset", false),
		},
		VotingConfig: VotingConfig{
			AllowPollOverwrite:     getBoolOrDefault("voting.allowPollOverwrite", false),
			AcceptUnknownCandidate: getBoolOrDefault("voting.acceptUnknownCandidate", false),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

package botenv

import (
	"calcbot/internal/calccache"
	"calcbot/internal/calcdb"
	"calcbot/internal/chat"

	logrus "github.com/sirupsen/logrus"
)

// BotEnv is everything a command needs. History, Index, Cache and Chat are
// optional; commands skip what is nil.
type BotEnv struct {
	Config  *Configuration
	Log     *logrus.Logger
	History *calcdb.Repo
	Index   *calcdb.Index
	Cache   *calccache.Cache
	Chat    chat.Chatter
}

// Close releases the storages that are set.
func (env *BotEnv) Close() {
	if env.Cache != nil {
		if err := env.Cache.Close(); err != nil {
			env.Log.WithError(err).Error("Closing cache.")
		}
	}
	if env.Index != nil {
		if err := env.Index.Close(); err != nil {
			env.Log.WithError(err).Error("Closing index.")
		}
	}
	if env.History != nil {
		if err := env.History.Close(); err != nil {
			env.Log.WithError(err).Error("Closing history.")
		}
	}
}

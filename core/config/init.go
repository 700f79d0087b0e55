package config

import (
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/imdario/mergo"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
	"github.com/subosito/gotenv"
)

var log = logging.MustGetLogger("config")

// Config holds the runtime configuration loaded from a json file, with
// environment variables overriding keys present in the file
// (mongo.url -> MONGO_URL).
type Config struct {
	Reload chan bool

	file    string
	mu      sync.RWMutex
	raw     *config.Config
	runtime Artworked
}

// Bootstrap loads .env (when present) and the given config file.
func Bootstrap(file string) (*Config, error) {
	if err := gotenv.Load(); err == nil {
		log.Info("Loaded environment from .env")
	}

	c := &Config{Reload: make(chan bool, 1), file: file}
	if err := c.Merge(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse builds a config from a json document, used by tests and tools.
func Parse(doc string) (*Config, error) {
	raw, err := config.ParseJson(doc)
	if err != nil {
		return nil, err
	}
	c := &Config{Reload: make(chan bool, 1)}
	if err := c.swap(raw); err != nil {
		return nil, err
	}
	return c, nil
}

// Copy returns the current typed config.
func (c *Config) Copy() Artworked {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runtime
}

// Raw exposes the underlying config tree.
func (c *Config) Raw() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.raw
}

// Merge re-reads the config file.
func (c *Config) Merge() error {
	raw, err := config.ParseJsonFile(c.file)
	if os.IsNotExist(err) {
		log.Warningf("Config file %s not found, running with defaults", c.file)
		raw, err = config.ParseJson("{}")
	}
	if err != nil {
		return err
	}
	if err := c.swap(raw.Env()); err != nil {
		return err
	}

	// Reload signal if anyone is listening...
	select {
	case c.Reload <- true:
	default:
	}
	return nil
}

func (c *Config) swap(raw *config.Config) error {
	runtime := Artworked{
		Environment: raw.UString("environment"),
		Secret:      raw.UString("application.secret"),
		RouteSecret: raw.UString("application.route_secret"),
		LogLevel:    raw.UString("log.level"),
		SentryDSN:   raw.UString("sentry.dsn"),
		Recount:     raw.UInt("jobs.recount_minutes"),
		Store: artworkedStore{
			Driver:   raw.UString("store.driver"),
			MongoURL: raw.UString("mongo.url"),
			MongoDB:  raw.UString("mongo.name"),
		},
		Broker: artworkedBroker{
			Driver: raw.UString("broker.driver"),
			Redis:  raw.UString("cache.redis"),
		},
		Media: artworkedMedia{
			Driver:       raw.UString("media.driver"),
			BaseURL:      raw.UString("media.base_url"),
			APISecret:    raw.UString("media.api_secret"),
			UploadPreset: raw.UString("media.upload_preset"),
			AccessKey:    raw.UString("amazon.access_key"),
			SecretKey:    raw.UString("amazon.secret"),
			Bucket:       raw.UString("amazon.s3.bucket"),
		},
		Mail: artworkedMail{
			Server:   raw.UString("mail.server"),
			Port:     raw.UInt("mail.port"),
			User:     raw.UString("mail.user"),
			Password: raw.UString("mail.password"),
			From:     raw.UString("mail.from"),
		},
	}
	if err := mergo.Merge(&runtime, defaults); err != nil {
		return err
	}
	if runtime.Environment != "development" && c.file != "" && runtime.Secret == "" {
		log.Warning("application.secret is empty, sessions are not safe")
	}

	c.mu.Lock()
	c.raw = raw
	c.runtime = runtime
	c.mu.Unlock()
	return nil
}

// WatchFile merges the config file again whenever it is written.
func (c *Config) WatchFile() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error(err)
		return
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case event, alive := <-watcher.Events:
				if !alive {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					log.Infof("Modified config file: %s", event.Name)
					if err := c.Merge(); err != nil {
						log.Errorf("Could not reload config: %v", err)
					}
				}
			case err, alive := <-watcher.Errors:
				if !alive {
					return
				}
				log.Error(err)
			}
		}
	}()

	if err := watcher.Add(c.file); err != nil {
		log.Error(err)
	}
}

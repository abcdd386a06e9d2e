package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// TTLPolicy maps cache key families to their time-to-live. Values are seconds
// in the config file, durations in memory.
type TTLPolicy struct {
	User         time.Duration `mapstructure:"-"`
	Customer     time.Duration `mapstructure:"-"`
	Sim          time.Duration `mapstructure:"-"`
	Transactions time.Duration `mapstructure:"-"`
	Tickets      time.Duration `mapstructure:"-"`
	Reports      time.Duration `mapstructure:"-"`
	SystemStats  time.Duration `mapstructure:"-"`
	Session      time.Duration `mapstructure:"-"`
}

type ttlPolicyFile struct {
	User         int `mapstructure:"user"`
	Customer     int `mapstructure:"customer"`
	Sim          int `mapstructure:"sim"`
	Transactions int `mapstructure:"transactions"`
	Tickets      int `mapstructure:"tickets"`
	Reports      int `mapstructure:"reports"`
	SystemStats  int `mapstructure:"systemStats"`
	Session      int `mapstructure:"session"`
}

// TTL defaults mirror the per-family lifetimes the dashboard has always used.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		User:         time.Hour,
		Customer:     30 * time.Minute,
		Sim:          30 * time.Minute,
		Transactions: 15 * time.Minute,
		Tickets:      30 * time.Minute,
		Reports:      30 * time.Minute,
		SystemStats:  5 * time.Minute,
		Session:      8 * time.Hour,
	}
}

// TTLPolicyHolder serves the current policy and hot-reloads it when the
// cache.yml file changes.
type TTLPolicyHolder struct {
	current atomic.Value // holds TTLPolicy
}

func NewTTLPolicyHolder() (*TTLPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("cache")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/omvadmin")
	v.AddConfigPath(".")

	v.SetEnvPrefix("OMVADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &TTLPolicyHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultTTLPolicy())
		return holder, nil
	}

	policy, err := unmarshalTTLPolicy(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalTTLPolicy(v)
		if err != nil {
			log.Printf("[cache-config] reload failed: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[cache-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *TTLPolicyHolder) Get() TTLPolicy {
	return h.current.Load().(TTLPolicy)
}

func unmarshalTTLPolicy(v *viper.Viper) (TTLPolicy, error) {
	var file ttlPolicyFile
	if err := v.UnmarshalKey("ttl", &file); err != nil {
		return TTLPolicy{}, err
	}

	policy := DefaultTTLPolicy()
	apply := func(dst *time.Duration, seconds int) error {
		if seconds == 0 {
			return nil
		}
		if seconds < 0 {
			return errors.New("cache ttl values must be positive")
		}
		*dst = time.Duration(seconds) * time.Second
		return nil
	}

	for _, entry := range []struct {
		dst     *time.Duration
		seconds int
	}{
		{&policy.User, file.User},
		{&policy.Customer, file.Customer},
		{&policy.Sim, file.Sim},
		{&policy.Transactions, file.Transactions},
		{&policy.Tickets, file.Tickets},
		{&policy.Reports, file.Reports},
		{&policy.SystemStats, file.SystemStats},
		{&policy.Session, file.Session},
	} {
		if err := apply(entry.dst, entry.seconds); err != nil {
			return TTLPolicy{}, err
		}
	}

	return policy, nil
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTTLPolicy(t *testing.T) {
	policy := DefaultTTLPolicy()
	assert.Equal(t, time.Hour, policy.User)
	assert.Equal(t, 30*time.Minute, policy.Customer)
	assert.Equal(t, 5*time.Minute, policy.SystemStats)
	assert.Equal(t, 8*time.Hour, policy.Session)
}

func TestUnmarshalTTLPolicyOverrides(t *testing.T) {
	v := viper.New()
	v.Set("ttl.customer", 60)
	v.Set("ttl.systemStats", 10)

	policy, err := unmarshalTTLPolicy(v)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, policy.Customer)
	assert.Equal(t, 10*time.Second, policy.SystemStats)
	assert.Equal(t, time.Hour, policy.User, "unset families keep their defaults")
}

func TestUnmarshalTTLPolicyRejectsNegative(t *testing.T) {
	v := viper.New()
	v.Set("ttl.sim", -5)

	_, err := unmarshalTTLPolicy(v)
	assert.Error(t, err)
}

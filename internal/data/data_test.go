package data

import (
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/news_locator/internal/conf"
)

func TestNewData_RedisUnreachable(t *testing.T) {
	_, _, err := NewData(&conf.Data{Redis: &conf.Redis{Addr: "127.0.0.1:1"}}, log.DefaultLogger)
	assert.Error(t, err)
}

func TestNewData_NothingConfigured(t *testing.T) {
	d, cleanup, err := NewData(&conf.Data{}, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()
	assert.Nil(t, d.db)
	assert.Nil(t, d.rdb)
}

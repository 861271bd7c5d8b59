package cassandra

import (
	"errors"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
)

func TestIsNoHostError(t *testing.T) {
	assert.True(t, IsNoHostError(gocql.ErrNoConnections))
	assert.True(t, IsNoHostError(errors.New("gocql: unable to connect to initial hosts: dial tcp: timeout")))
	assert.True(t, IsNoHostError(errors.New("gocql: no hosts available in the pool")))

	assert.False(t, IsNoHostError(nil))
	assert.False(t, IsNoHostError(errors.New("keyspace data_docs does not exist")))
	assert.False(t, IsNoHostError(errors.New("authentication failed")))
}

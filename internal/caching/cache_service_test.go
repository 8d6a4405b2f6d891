package caching

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"plastwarehouse/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRedis speaks enough RESP2 for GET, SET, DEL and PING. HELLO is
// rejected so clients fall back to RESP2.
type fakeRedis struct {
	ln   net.Listener
	mu   sync.Mutex
	data map[string]string
}

func startFakeRedis(t *testing.T) *fakeRedis {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	f := &fakeRedis{ln: ln, data: map[string]string{}}
	go f.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return f
}

func (f *fakeRedis) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeRedis) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		_, _ = conn.Write([]byte(f.exec(args)))
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil {
		return nil, err
	}
	args := make([]string, n)
	for i := range args {
		if _, err := r.ReadString('\n'); err != nil {
			return nil, err
		}
		arg, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		args[i] = strings.TrimSuffix(arg, "\r\n")
	}
	return args, nil
}

func (f *fakeRedis) exec(args []string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch strings.ToUpper(args[0]) {
	case "PING":
		return "+PONG\r\n"
	case "CLIENT", "SELECT":
		return "+OK\r\n"
	case "SET":
		f.data[args[1]] = args[2]
		return "+OK\r\n"
	case "GET":
		v, ok := f.data[args[1]]
		if !ok {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(v), v)
	case "DEL":
		_, ok := f.data[args[1]]
		delete(f.data, args[1])
		if ok {
			return ":1\r\n"
		}
		return ":0\r\n"
	default:
		return "-ERR unknown command\r\n"
	}
}

func newTestClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            addr,
		Protocol:        2,
		DisableIdentity: true,
		DialTimeout:     time.Second,
		MaxRetries:      -1,
	})
}

func TestCacheService_MaterialsRoundTrip(t *testing.T) {
	srv := startFakeRedis(t)
	client := newTestClient(srv.ln.Addr().String())
	defer client.Close()
	cache := NewCacheService(client)
	ctx := context.Background()

	got, err := cache.GetMaterials(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "miss")

	materials := []*models.MaterialType{{ID: 1, Name: "ABS", Thicknesses: []float64{2, 3}, Colors: []string{"white"}}}
	require.NoError(t, cache.SetMaterials(ctx, materials, time.Minute))

	got, err = cache.GetMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ABS", got[0].Name)
	assert.Equal(t, []float64{2, 3}, got[0].Thicknesses)

	require.NoError(t, cache.InvalidateMaterials(ctx))
	got, err = cache.GetMaterials(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheService_CorruptEntry(t *testing.T) {
	srv := startFakeRedis(t)
	srv.mu.Lock()
	srv.data[materialsKey] = "not json"
	srv.mu.Unlock()
	client := newTestClient(srv.ln.Addr().String())
	defer client.Close()

	_, err := NewCacheService(client).GetMaterials(context.Background())

	assert.Error(t, err)
}

func TestCacheService_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := newTestClient(addr)
	defer client.Close()
	cache := NewCacheService(client)

	_, err = cache.GetMaterials(context.Background())
	assert.Error(t, err)
	assert.Error(t, cache.Ping(context.Background()))
}

func TestNewRedisCacheService_StripsScheme(t *testing.T) {
	srv := startFakeRedis(t)

	cache := NewRedisCacheService("redis://"+srv.ln.Addr().String(), "", 0, zap.NewNop())

	assert.NoError(t, cache.Ping(context.Background()))
}

package hibp

import (
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/schoolbooks/internal/httpx"
)

func TestCheckPassword(t *testing.T) {
	const breached = "password123"
	sum := sha1.Sum([]byte(breached))
	hash := strings.ToUpper(fmt.Sprintf("%x", sum))

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		// HIBP 返回 "后缀:次数" 行
		fmt.Fprintf(w, "0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n%s:2654310\r\n00D4F6E8FA6EECAD2A3AA415EEC418D38EC:2\r\n", hash[5:])
	}))
	defer srv.Close()

	svc := NewService(httpx.NewClient(srv.URL, nil))
	ctx := context.Background()

	safe, err := svc.CheckPassword(ctx, breached)
	require.NoError(t, err)
	assert.False(t, safe)
	// k-匿名：只上送前 5 位
	assert.Equal(t, "/range/"+hash[:5], gotPath)

	safe, err = svc.CheckPassword(ctx, "e2ZpbGU6Ly9ldGMvcGFzc3dk")
	require.NoError(t, err)
	assert.True(t, safe)
}

func TestCheckPasswordAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewService(httpx.NewClient(srv.URL, nil))
	_, err := svc.CheckPassword(context.Background(), "anything")
	assert.Error(t, err)
}

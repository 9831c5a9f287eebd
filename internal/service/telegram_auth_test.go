package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"
)

// signInitData assembles an init_data query string signed the way the
// Telegram client does it.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	pairs := make([]string, 0, len(fields))
	for k, v := range fields {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	mac := hmac.New(sha256.New, initDataSecret(botToken))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	vals := url.Values{}
	for k, v := range fields {
		vals.Set(k, v)
	}
	vals.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return vals.Encode()
}

func TestValidateTelegramInitData(t *testing.T) {
	const botToken = "12345:test-bot-token"

	initData := signInitData(t, botToken, map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":7,"username":"breeder","first_name":"B"}`,
	})

	vals, ok := ValidateTelegramInitData(initData, botToken)
	if !ok {
		t.Fatal("expected valid init data")
	}
	if vals.Get("user") == "" {
		t.Fatal("expected user field in parsed values")
	}
	if vals.Get("hash") != "" {
		t.Fatal("hash should be stripped from returned values")
	}
}

func TestValidateTelegramInitData_Tampered(t *testing.T) {
	const botToken = "12345:test-bot-token"

	initData := signInitData(t, botToken, map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":7,"username":"breeder"}`,
	})

	if _, ok := ValidateTelegramInitData(initData+"&start_param=ref_x", botToken); ok {
		t.Fatal("expected tampered init data to be rejected")
	}
	if _, ok := ValidateTelegramInitData(initData, "12345:other-token"); ok {
		t.Fatal("expected wrong bot token to be rejected")
	}
}

func TestValidateTelegramInitData_Stale(t *testing.T) {
	const botToken = "12345:test-bot-token"

	initData := signInitData(t, botToken, map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Add(-2*time.Hour).Unix(), 10),
		"user":      `{"id":7}`,
	})

	if _, ok := ValidateTelegramInitData(initData, botToken); ok {
		t.Fatal("expected stale init data to be rejected")
	}
}

func TestValidateTelegramInitData_Garbage(t *testing.T) {
	for _, in := range []string{"", "hash=zz", "%%%", "auth_date=1&hash=00"} {
		if _, ok := ValidateTelegramInitData(in, "12345:test-bot-token"); ok {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}

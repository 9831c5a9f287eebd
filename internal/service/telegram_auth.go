package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// maxInitDataAge rejects init_data older than this to limit replay.
	maxInitDataAge = time.Hour
	// maxClockSkew tolerates clients slightly ahead of server time.
	maxClockSkew = 5 * time.Minute
)

// initDataCheckString builds the sorted key=value data-check-string from the
// init_data fields, excluding "hash".
func initDataCheckString(values url.Values) string {
	pairs := make([]string, 0, len(values))
	for k, v := range values {
		if k == "hash" {
			continue
		}
		pairs = append(pairs, k+"="+strings.Join(v, ""))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\n")
}

// initDataSecret derives the HMAC key for a bot token:
// HMAC-SHA256(key="WebAppData", message=botToken).
func initDataSecret(botToken string) []byte {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return mac.Sum(nil)
}

// ValidateTelegramInitData verifies the Telegram Mini App init_data signature
// and freshness. On success it returns the parsed fields (without "hash").
func ValidateTelegramInitData(initData, botToken string) (url.Values, bool) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, false
	}

	provided, err := hex.DecodeString(values.Get("hash"))
	if err != nil || len(provided) == 0 {
		return nil, false
	}

	mac := hmac.New(sha256.New, initDataSecret(botToken))
	mac.Write([]byte(initDataCheckString(values)))
	if !hmac.Equal(mac.Sum(nil), provided) {
		return nil, false
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, false
	}
	age := time.Since(time.Unix(authDate, 0))
	if age > maxInitDataAge || age < -maxClockSkew {
		return nil, false
	}

	values.Del("hash")
	return values, true
}

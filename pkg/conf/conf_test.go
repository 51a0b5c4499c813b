package conf

import (
	"testing"
	"time"
)

func TestDefaultFile(t *testing.T) {
	if File(DefaultName) == nil {
		t.Fatal("default conf must not be nil")
	}

	Set("PREVIEW_LIMIT", "20")
	if GetInt("PREVIEW_LIMIT") != 20 {
		t.Fatal("invalid PREVIEW_LIMIT", GetInt("PREVIEW_LIMIT"))
	}

	Set("PREVIEW_TIMEOUT", "3s")
	if GetDuration("PREVIEW_TIMEOUT") != 3*time.Second {
		t.Fatal("invalid PREVIEW_TIMEOUT", GetDuration("PREVIEW_TIMEOUT"))
	}
}

func TestGetStrings(t *testing.T) {
	Set("FOO_NAMES", "a, b,c")
	s := GetStrings("FOO_NAMES")
	if len(s) != 3 || s[0] != "a" || s[1] != "b" || s[2] != "c" {
		t.Fatal("invalid strings", s)
	}

	Set("FOO_IDS", "1,2,3")
	ids, err := GetInt64s("FOO_IDS")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 || ids[2] != 3 {
		t.Fatal("invalid ids", ids)
	}

	Set("FOO_IDS", "1,x")
	if _, err := GetInt64s("FOO_IDS"); err == nil {
		t.Fatal("expected parse error")
	}

	if GetStrings("FOO_MISSING") != nil {
		t.Fatal("missing key should be nil")
	}
}

func TestFileFallback(t *testing.T) {
	c := File("no-such-file")
	if c == nil {
		t.Fatal("fallback conf must not be nil")
	}
	if c != File("no-such-file") {
		t.Fatal("fallback conf should be cached")
	}

	c.Set("BAR", "baz")
	if c.Get("BAR") != "baz" {
		t.Fatal("invalid BAR", c.Get("BAR"))
	}
	if Get("BAR") == "baz" {
		t.Fatal("files must not share keys")
	}
}

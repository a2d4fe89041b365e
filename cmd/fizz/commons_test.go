package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const config = `<fizz>
	<engine>xml</engine>
	<limit>10</limit>
	<depth>2</depth>
	<strict-ns>true</strict-ns>
	<namespace prefix="atom">http://www.w3.org/2005/Atom</namespace>
	<namespace>ignored</namespace>
</fizz>`

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<entry><title>one</title></entry>
	<entry><title>two</title></entry>
</feed>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestConfigLoad(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Load(writeFile(t, "fizz.xml", config)))

	assert.Equal(t, "xml", cfg.Engine)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, 2, cfg.Depth)
	assert.True(t, cfg.StrictNS)
	assert.Equal(t, map[string]string{"atom": "http://www.w3.org/2005/Atom"}, cfg.Namespaces)
}

func TestConfigLoadInvalid(t *testing.T) {
	var cfg Config
	err := cfg.Load(writeFile(t, "fizz.xml", `<fizz><limit>ten</limit></fizz>`))
	assert.Error(t, err)
}

func TestLoadDocument(t *testing.T) {
	cfg := Config{
		Namespaces: map[string]string{"a": "http://www.w3.org/2005/Atom"},
	}
	doc, err := loadDocument(writeFile(t, "feed.atom", feed), "", cfg, 0)
	require.NoError(t, err)

	list, err := doc.Select("a|entry > a|title")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "two", list[1].Text)

	_, err = loadDocument(writeFile(t, "feed.atom", feed), "json", cfg, 0)
	assert.Error(t, err)
}

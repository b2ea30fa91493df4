package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrp/restappender/pkg/log"
)

type collector struct {
	mutex     sync.Mutex
	status    int
	documents []map[string]string
	auth      []string
}

func (c *collector) handler(rw http.ResponseWriter, req *http.Request) {
	var document map[string]string
	json.NewDecoder(req.Body).Decode(&document)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.documents = append(c.documents, document)
	c.auth = append(c.auth, req.Header.Get("Authorization"))
	if c.status != 0 {
		rw.WriteHeader(c.status)
	}
}

func (c *collector) textLogs() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	var texts []string
	for _, document := range c.documents {
		texts = append(texts, document["textLog"])
	}
	return texts
}

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	GeneralConfig = GeneralConfigOptions{}
	rootCmd := NewRootCommand()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restappender.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.yml")
}

func TestVersionCommand(t *testing.T) {
	testCmd := VersionCommand()
	assert.Equal(t, "version", testCmd.Use, "command name incorrect")

	t.Run("prints version", func(t *testing.T) {
		commitBak, tagBak := GitCommit, GitTag
		defer func() { GitCommit, GitTag = commitBak, tagBak }()
		GitCommit = "abc123"
		GitTag = ""

		out, err := runCommand(t, "", "version")
		require.NoError(t, err)
		assert.Equal(t, "restappender-version:\n    commit: \"abc123\"\n    tag: \"<n/a>\"\n", out)
	})
}

func TestConfigCommand(t *testing.T) {
	configFile := writeConfig(t, "appender:\n  restURL: https://collector/api/logs\n  credBasicAuth: user:password\n  projectName: demo\ntimeout: 3s\n")

	out, err := runCommand(t, "", "config", "--config", configFile, "--moduleName", "billing", "--projectName", "override")
	require.NoError(t, err)

	var printed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &printed))
	assert.Equal(t, map[string]interface{}{
		"appender": map[string]interface{}{
			"restURL":       "https://collector/api/logs",
			"credBasicAuth": "****",
			"projectName":   "override",
			"moduleName":    "billing",
		},
		"timeout": "3s",
	}, printed)
}

func TestSendCommand(t *testing.T) {
	logBuffer := &bytes.Buffer{}
	log.SetOutput(logBuffer)
	defer log.SetOutput(os.Stderr)

	t.Run("messages as arguments", func(t *testing.T) {
		c := &collector{}
		server := httptest.NewServer(http.HandlerFunc(c.handler))
		defer server.Close()

		_, err := runCommand(t, "", "send", "--config", missingConfig(t),
			"--restURL", server.URL, "--credBasicAuth", "user:password",
			"--projectName", "demo", "--moduleName", "billing", "--level", "warning",
			"first event", "second event")
		require.NoError(t, err)

		texts := c.textLogs()
		require.Len(t, texts, 2)
		assert.Contains(t, texts[0], `msg="first event"`)
		assert.Contains(t, texts[0], "level=warning")
		assert.Contains(t, texts[1], `msg="second event"`)
		assert.Equal(t, "demo", c.documents[0]["projectName"])
		assert.Equal(t, "billing", c.documents[0]["moduleName"])
		assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("user:password")), c.auth[0])
	})

	t.Run("lines from stdin", func(t *testing.T) {
		c := &collector{}
		server := httptest.NewServer(http.HandlerFunc(c.handler))
		defer server.Close()
		configFile := writeConfig(t, "appender:\n  restURL: "+server.URL+"\n  credBasicAuth: user:password\n  projectName: demo\n  moduleName: billing\n")

		_, err := runCommand(t, "started\n\n   \nERROR disk full\nno trailing linebreak", "send", "--config", configFile)
		require.NoError(t, err)

		texts := c.textLogs()
		require.Len(t, texts, 3)
		assert.Contains(t, texts[0], "level=info")
		assert.Contains(t, texts[0], "msg=started")
		assert.Contains(t, texts[1], "level=error")
		assert.Contains(t, texts[1], `msg="ERROR disk full"`)
		assert.Contains(t, texts[2], `msg="no trailing linebreak"`)
	})

	t.Run("via hook", func(t *testing.T) {
		c := &collector{}
		server := httptest.NewServer(http.HandlerFunc(c.handler))
		defer server.Close()
		configFile := writeConfig(t, "appender:\n  restURL: "+server.URL+"\n  credBasicAuth: user:password\n  projectName: demo\n  moduleName: billing\n")

		_, err := runCommand(t, "", "send", "--config", configFile, "--viaHook", "--level", "debug", "hooked event")
		require.NoError(t, err)

		texts := c.textLogs()
		require.Len(t, texts, 1)
		assert.Contains(t, texts[0], `msg="hooked event"`)
		assert.Contains(t, texts[0], "level=debug")
	})

	t.Run("rejected delivery", func(t *testing.T) {
		defer log.SetErrorCategory(log.ErrorUndefined)
		logBuffer.Reset()
		c := &collector{status: http.StatusUnauthorized}
		server := httptest.NewServer(http.HandlerFunc(c.handler))
		defer server.Close()
		configFile := writeConfig(t, "appender:\n  restURL: "+server.URL+"\n  credBasicAuth: user:wrong\n  projectName: demo\n  moduleName: billing\n")

		_, err := runCommand(t, "", "send", "--config", configFile, "one", "two")

		assert.EqualError(t, err, "2 of 2 log events could not be delivered")
		assert.Equal(t, log.ErrorConfiguration, log.GetErrorCategory())
		assert.Contains(t, logBuffer.String(), "Status 401. Unauthorized")
		assert.Contains(t, logBuffer.String(), "category=configuration")
		assert.NotContains(t, logBuffer.String(), "user:wrong")
	})

	t.Run("rejected delivery via hook", func(t *testing.T) {
		defer log.SetErrorCategory(log.ErrorUndefined)
		c := &collector{status: http.StatusInternalServerError}
		server := httptest.NewServer(http.HandlerFunc(c.handler))
		defer server.Close()
		configFile := writeConfig(t, "appender:\n  restURL: "+server.URL+"\n  credBasicAuth: user:password\n  projectName: demo\n  moduleName: billing\n")

		_, err := runCommand(t, "", "send", "--config", configFile, "--viaHook", "one")

		assert.EqualError(t, err, "1 of 1 log events could not be delivered")
		assert.Equal(t, log.ErrorService, log.GetErrorCategory())
	})

	t.Run("missing configuration", func(t *testing.T) {
		defer log.SetErrorCategory(log.ErrorUndefined)
		logBuffer.Reset()

		_, err := runCommand(t, "", "send", "--config", missingConfig(t), "--projectName", "demo", "event")

		assert.EqualError(t, err, "1 of 1 log events could not be delivered")
		assert.Contains(t, logBuffer.String(), "missing endpoint URL")
		assert.Equal(t, log.ErrorConfiguration, log.GetErrorCategory())
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := runCommand(t, "", "send", "--config", missingConfig(t), "--level", "loud", "event")
		assert.Contains(t, err.Error(), "invalid value for flag --level")
	})

	t.Run("panic level via hook", func(t *testing.T) {
		_, err := runCommand(t, "", "send", "--config", missingConfig(t), "--level", "panic", "--viaHook", "event")
		assert.EqualError(t, err, "level panic cannot be used together with --viaHook")
	})

	t.Run("invalid timeout", func(t *testing.T) {
		_, err := runCommand(t, "", "send", "--config", missingConfig(t), "--timeout", "soon", "event")
		assert.Contains(t, err.Error(), "invalid timeout 'soon'")
	})
}

type recordingSink struct {
	levels   []logrus.Level
	messages []string
}

func (s *recordingSink) Log(level logrus.Level, args ...interface{}) {
	s.levels = append(s.levels, level)
	s.messages = append(s.messages, fmt.Sprint(args...))
}

func TestForwardLine(t *testing.T) {
	sink := &recordingSink{}
	forward := forwardLine(sink)

	for _, line := range []string{"[ERROR] failed", "", "  \t", "[WARN] careful", "npm ERR! broken", "all good"} {
		forward(line)
	}

	assert.Equal(t, []string{"[ERROR] failed", "[WARN] careful", "npm ERR! broken", "all good"}, sink.messages)
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel, logrus.InfoLevel}, sink.levels)
}

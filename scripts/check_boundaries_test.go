package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextsRespectLayering(t *testing.T) {
	assert.Empty(t, collectViolations(filepath.Join("..", "contexts")))
}

func TestCollectViolationsFlagsLeaks(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	write := func(rel string, content string) {
		path := filepath.Join(root, rel)
		assert.NoError(os.MkdirAll(filepath.Dir(path), 0o755))
		assert.NoError(os.WriteFile(path, []byte(content), 0o600))
	}

	write("election/election-service/domain/entities/bad.go", `package entities
import (
	"time"
	_ "ballotbox/contexts/election/election-service/adapters/memory"
)
var _ = time.Now
`)
	write("election/election-service/application/bad.go", `package application
import _ "ballotbox/internal/platform/config"
`)
	write("election/election-service/ports/bad.go", `package ports
import _ "ballotbox/contexts/other/other-service/domain"
`)
	write("election/election-service/transport/console/ok.go", `package console
import _ "time"
`)

	violations := collectViolations(root)
	rules := map[string]bool{}
	for _, v := range violations {
		rules[v.Rule] = true
	}
	assert.True(rules["domain must not import adapters"])
	assert.True(rules["application must not import runtime infrastructure"])
	assert.True(rules["cross-module imports are forbidden"])
	for _, v := range violations {
		assert.NotContains(v.File, "transport")
	}
}

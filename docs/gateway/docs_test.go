package gateway

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type docParam struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

type docOperation struct {
	Summary    string     `json:"summary"`
	Parameters []docParam `json:"parameters"`
}

var (
	routerRe  = regexp.MustCompile(`^// @Router\s+(\S+)\s+\[(\w+)\]`)
	paramRe   = regexp.MustCompile(`^// @Param\s+(\S+)\s+(\S+)\s+\S+\s+(true|false)\s+"(.*)"`)
	summaryRe = regexp.MustCompile(`^// @Summary\s+(.*)$`)
)

// TestDocMatchesAnnotations checks every annotated handler against the registered document.
func TestDocMatchesAnnotations(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]docOperation `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	files, err := filepath.Glob("../../internal/gateway/*.go")
	require.NoError(t, err)

	var routes int
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		raw, err := os.ReadFile(f)
		require.NoError(t, err)

		var summary string
		var params []docParam
		for _, line := range strings.Split(string(raw), "\n") {
			if m := summaryRe.FindStringSubmatch(line); m != nil {
				summary, params = m[1], nil
			}
			if m := paramRe.FindStringSubmatch(line); m != nil {
				params = append(params, docParam{Name: m[1], In: m[2], Required: m[3] == "true", Description: m[4]})
			}
			m := routerRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			routes++
			op, ok := doc.Paths[m[1]][m[2]]
			if !assert.True(t, ok, "%s %s missing from doc", m[2], m[1]) {
				continue
			}
			assert.Equal(t, summary, op.Summary, m[1])
			assert.ElementsMatch(t, params, op.Parameters, "%s %s", m[2], m[1])
		}
	}
	assert.NotZero(t, routes)

	var documented int
	for _, ops := range doc.Paths {
		documented += len(ops)
	}
	assert.Equal(t, routes, documented)
}

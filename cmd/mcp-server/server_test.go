package main

import (
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ynab-mcp-go/internal/store"
	"github.com/eshaffer321/ynab-mcp-go/pkg/ynab"
)

// Registration walks every tool and resource schema, so a bad handler
// signature or schema tag fails here rather than at runtime.
func TestRegisterToolsAndResources(t *testing.T) {
	client, err := ynab.NewClientWithToken("test-token")
	require.NoError(t, err)

	dir := t.TempDir()
	prefs, err := store.NewPreferenceStore(filepath.Join(dir, "preferred_budget_id"))
	require.NoError(t, err)

	tools := &ynabTools{
		client: client,
		prefs:  prefs,
		cache:  store.NewCategoryCache(filepath.Join(dir, "category_cache.json"), nil),
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "ynab", Version: "test"}, nil)

	require.NotPanics(t, func() {
		registerTools(server, tools)
		registerResources(server, tools)
	})
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukex/hrflow/pkg/designer"
	"github.com/dukex/hrflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v3"
)

func writeGraph(t *testing.T, kinds ...models.NodeType) string {
	t.Helper()

	store := designer.New()

	var prev *models.WorkflowNode

	for _, kind := range kinds {
		node, err := store.CreateNode(kind, models.Position{})
		require.NoError(t, err)
		store.AddNode(node)

		if prev != nil {
			_, err := store.Connect(prev.ID, node.ID)
			require.NoError(t, err)
		}

		prev = node
	}

	text, err := store.Export()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := newRootCommand()
	root.Writer = &out
	root.ErrWriter = &errOut
	root.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := root.Run(context.Background(), append([]string{"hrflow"}, args...))

	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	path := writeGraph(t, models.NodeTypeStart, models.NodeTypeTask, models.NodeTypeEnd)

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "Workflow is valid\n", out)
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := writeGraph(t, models.NodeTypeTask)

	out, err := run(t, "validate", "--json", path)
	require.Error(t, err)

	var result models.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Workflow must have a Start Node"}, result.Errors)
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := run(t, "validate")
	require.ErrorIs(t, err, errMissingFile)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nodes":[]}`), 0o600))

	_, err = run(t, "validate", bad)
	assert.True(t, designer.IsMalformedGraph(err))
}

func TestSimulateCommand(t *testing.T) {
	path := writeGraph(t, models.NodeTypeStart, models.NodeTypeTask, models.NodeTypeEnd)

	out, err := run(t, "simulate", "--seed", "1", path)
	require.NoError(t, err)
	assert.Equal(t, "1. [completed] Start (start): Workflow started: Start\n"+
		"2. [completed] New Task (task): Task \"New Task\" assigned to Unassigned\n"+
		"3. [completed] End (end): Workflow Complete\n"+
		"Simulation succeeded with 3 step(s)\n", out)
}

func TestSimulateCommand_JSON(t *testing.T) {
	path := writeGraph(t, models.NodeTypeStart)

	out, err := run(t, "simulate", "--json", path)
	require.NoError(t, err)

	var result models.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Success)
	assert.Len(t, result.Steps, 1)
	assert.Equal(t, []string{"No End Node found in workflow"}, result.Errors)
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog", "--json")
	require.NoError(t, err)

	var actions []models.AutomationAction
	require.NoError(t, json.Unmarshal([]byte(out), &actions))
	assert.Len(t, actions, 6)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("automations:\n  - id: badge\n    label: Print Badge\n"), 0o600))

	out, err = run(t, "catalog", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "badge")
	assert.Contains(t, out, "Print Badge")
}

package designer

import (
	"testing"

	"github.com/dukex/hrflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_EditingSession(t *testing.T) {
	s := New()

	addStart := &AddNodeCommand{Kind: models.NodeTypeStart, Position: models.Position{X: 0, Y: 0}}
	addTask := &AddNodeCommand{Kind: models.NodeTypeTask, Position: models.Position{X: 0, Y: 100}}
	addEnd := &AddNodeCommand{Kind: models.NodeTypeEnd, Position: models.Position{X: 0, Y: 200}}

	for _, cmd := range []Command{addStart, addTask, addEnd} {
		require.NoError(t, s.Apply(cmd))
	}

	require.NotNil(t, addTask.Node)
	assert.Equal(t, "node-2", addTask.Node.ID)

	first := &ConnectCommand{Source: addStart.Node.ID, Target: addTask.Node.ID}
	second := &ConnectCommand{Source: addTask.Node.ID, Target: addEnd.Node.ID}

	require.NoError(t, s.Apply(first))
	require.NoError(t, s.Apply(second))
	require.NotNil(t, first.Edge)

	assignee := "hr-team"
	require.NoError(t, s.Apply(UpdateNodeCommand{NodeID: addTask.Node.ID, Patch: models.TaskPatch{Assignee: &assignee}}))
	require.NoError(t, s.Apply(MoveNodeCommand{NodeID: addEnd.Node.ID, Position: models.Position{X: 50, Y: 250}}))

	task, ok := s.Node(addTask.Node.ID)
	require.True(t, ok)
	assert.Equal(t, "hr-team", task.Data.(*models.TaskData).Assignee)

	end, ok := s.Node(addEnd.Node.ID)
	require.True(t, ok)
	assert.Equal(t, models.Position{X: 50, Y: 250}, end.Position)

	require.NoError(t, s.Apply(DeleteEdgeCommand{EdgeID: first.Edge.ID}))
	assert.Len(t, s.Graph().Edges, 1)

	require.NoError(t, s.Apply(DeleteNodeCommand{NodeID: addTask.Node.ID}))
	assert.Empty(t, s.Graph().Edges)

	exported, err := s.Export()
	require.NoError(t, err)

	require.NoError(t, s.Apply(ClearCommand{}))
	assert.Empty(t, s.Graph().Nodes)

	require.NoError(t, s.Apply(ImportCommand{Text: exported}))
	assert.Len(t, s.Graph().Nodes, 2)
	assert.Equal(t, "node-4", s.NextID())
}

func TestCommands_Errors(t *testing.T) {
	s := New()

	add := &AddNodeCommand{Kind: "webhook"}
	require.ErrorIs(t, s.Apply(add), models.ErrUnknownNodeType)
	assert.Nil(t, add.Node)

	conn := &ConnectCommand{Source: "a", Target: "b"}
	require.ErrorIs(t, s.Apply(conn), ErrNodeNotFound)
	assert.Nil(t, conn.Edge)

	assert.True(t, IsMalformedGraph(s.Apply(ImportCommand{Text: "nope"})))
}

func TestCommand_AddNodeReturnsCopy(t *testing.T) {
	s := New()

	add := &AddNodeCommand{Kind: models.NodeTypeTask}
	require.NoError(t, s.Apply(add))

	add.Node.Data.(*models.TaskData).Title = "mutated"

	stored, ok := s.Node(add.Node.ID)
	require.True(t, ok)
	assert.Equal(t, "New Task", stored.Data.(*models.TaskData).Title)
}

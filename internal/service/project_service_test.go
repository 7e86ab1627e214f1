package service

import (
	"context"
	"devcollab_backend/internal/util"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitIsIdempotent(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	p := f.project(t, "search engine", "go", true)

	admitted, err := f.projects.Admit(ctx, p.ID, 12, "a-1")
	require.NoError(t, err)
	assert.True(t, admitted)

	admitted, err = f.projects.Admit(ctx, p.ID, 12, "a-2")
	require.NoError(t, err)
	assert.False(t, admitted)

	members, err := f.projects.ListMembers(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "a-1", members[0].AttemptID)
}

func TestAdmitConcurrentDuplicates(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	p := f.project(t, "kv store", "go", true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.projects.Admit(ctx, p.ID, 4, "dup")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := f.projectRepo.CountMembers(ctx, p.ID, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGetProjectNotFound(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.projects.GetProject(context.Background(), 404)
	assert.ErrorIs(t, err, util.ErrProjectNotFound)
}

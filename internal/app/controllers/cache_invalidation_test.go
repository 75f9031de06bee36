package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanaktas/campushub/internal/pkg/cache"
)

func TestAssignmentMutationDropsNestedCourseList(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(time.Minute)

	seed := []string{
		"/api/v1/assignments?page=1&limit=10",
		"/api/v1/assignments/3",
		"/api/v1/courses/7/assignments",
		"/api/v1/courses/7/assignments?page=2",
		"/api/v1/courses/8/assignments",
	}
	for _, key := range seed {
		require.NoError(t, store.Set(ctx, key, []byte("cached"), time.Minute))
	}

	// The prefixes an assignment create/update/delete in course 7 drops.
	invalidate(ctx, store, assignmentsPath, courseAssignmentsPath(7))

	for _, key := range seed[:4] {
		_, found := store.Get(ctx, key)
		assert.False(t, found, key)
	}

	// Another course's nested list is untouched.
	_, found := store.Get(ctx, "/api/v1/courses/8/assignments")
	assert.True(t, found)
}

func TestCourseAssignmentsPath(t *testing.T) {
	assert.Equal(t, "/api/v1/courses/42/assignments", courseAssignmentsPath(42))
}
